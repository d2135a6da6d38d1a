// Package datefmt renders note timestamps for display. It never fails: bad
// input degrades to a marker or to the raw string, and the problem is logged.
package datefmt

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Layout selects how a parsed date is rendered.
type Layout int

const (
	LongForm Layout = iota
	ShortForm
)

const (
	longLayout  = "January 2, 2006 3:04 PM"
	shortLayout = "Jan 2, 2006 3:04 PM"
)

const (
	Unknown     = "Unknown"
	UnknownDate = "Unknown date"
)

// SentinelPrefix marks timestamps the sync job failed to convert.
const SentinelPrefix = "1970-01-01T"

// ParseLayout accepts "long" and "short".
func ParseLayout(s string) (Layout, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long":
		return LongForm, true
	case "short":
		return ShortForm, true
	default:
		return LongForm, false
	}
}

func (l Layout) String() string {
	if l == ShortForm {
		return "short"
	}
	return "long"
}

func (l Layout) layout() string {
	if l == ShortForm {
		return shortLayout
	}
	return longLayout
}

// Formatter holds the logger and display zone. The zero value is not usable; use New.
type Formatter struct {
	log *slog.Logger
	loc *time.Location
}

// New returns a Formatter. A nil logger uses slog.Default(); a nil location uses time.Local.
func New(log *slog.Logger, loc *time.Location) *Formatter {
	if log == nil {
		log = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{log: log, loc: loc}
}

// Format renders raw with the given layout.
func (f *Formatter) Format(raw string, layout Layout) string {
	if raw == "" {
		return Unknown
	}
	if IsSentinel(raw) {
		f.log.Warn("likely incorrect epoch date", "raw", raw)
		return UnknownDate
	}
	if !looksISO(raw) {
		return raw
	}
	t, err := Parse(raw)
	if err != nil {
		f.log.Error("date formatting failed", "raw", raw, "err", err)
		return raw
	}
	return t.In(f.loc).Format(layout.layout())
}

// Long is Format with LongForm.
func (f *Formatter) Long(raw string) string { return f.Format(raw, LongForm) }

// Short is Format with ShortForm.
func (f *Formatter) Short(raw string) string { return f.Format(raw, ShortForm) }

// IsSentinel reports whether raw carries the epoch placeholder.
func IsSentinel(raw string) bool { return strings.HasPrefix(raw, SentinelPrefix) }

// looksISO requires a time separator and a Z or + zone marker.
func looksISO(raw string) bool {
	return strings.Contains(raw, "T") && (strings.Contains(raw, "Z") || strings.Contains(raw, "+"))
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
}

// Parse accepts the ISO-8601 shapes the sync job and the database emit:
// optional fractional seconds, and Z, +hh:mm, +hhmm or +hh offsets.
func Parse(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp: %q", raw)
}
