package datefmt

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFormatter(buf *bytes.Buffer) *Formatter {
	return New(slog.New(slog.NewTextHandler(buf, nil)), time.UTC)
}

func TestFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := newTestFormatter(&buf)
	require.Equal(t, Unknown, f.Format("", LongForm))
	require.Equal(t, Unknown, f.Format("", ShortForm))
	require.Empty(t, buf.String())
}

func TestFormatSentinelIsMaskedAndLogged(t *testing.T) {
	for _, raw := range []string{"1970-01-01T00:00:00Z", "1970-01-01T12:34:56+00:00", "1970-01-01Tgarbage"} {
		var buf bytes.Buffer
		f := newTestFormatter(&buf)
		require.Equal(t, UnknownDate, f.Format(raw, LongForm))
		require.Contains(t, buf.String(), "level=WARN")
		require.Contains(t, buf.String(), "likely incorrect epoch date")
	}
}

func TestFormatISO(t *testing.T) {
	var buf bytes.Buffer
	f := newTestFormatter(&buf)
	cases := []struct {
		raw   string
		long  string
		short string
	}{
		{"2024-03-05T14:07:00Z", "March 5, 2024 2:07 PM", "Mar 5, 2024 2:07 PM"},
		{"2024-03-05T14:07:00.123456Z", "March 5, 2024 2:07 PM", "Mar 5, 2024 2:07 PM"},
		{"2024-03-05T19:37:00+05:30", "March 5, 2024 2:07 PM", "Mar 5, 2024 2:07 PM"},
		{"2024-03-05T19:37:00+0530", "March 5, 2024 2:07 PM", "Mar 5, 2024 2:07 PM"},
		{"2024-12-31T23:05Z", "December 31, 2024 11:05 PM", "Dec 31, 2024 11:05 PM"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.long, f.Long(tc.raw), tc.raw)
		assert.Equal(t, tc.short, f.Short(tc.raw), tc.raw)
	}
	require.Empty(t, buf.String())
}

func TestFormatUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	f := New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), loc)
	require.Equal(t, "March 5, 2024 9:07 AM", f.Long("2024-03-05T14:07:00Z"))
}

func TestFormatNonISOReturnedVerbatim(t *testing.T) {
	var buf bytes.Buffer
	f := newTestFormatter(&buf)
	for _, raw := range []string{"unknown", "2024-03-05 14:07:00", "2024-03-05T09:07:00-05:00", "yesterday"} {
		require.Equal(t, raw, f.Format(raw, LongForm))
	}
	require.Empty(t, buf.String())
}

func TestFormatBadISOReturnsRawAndLogs(t *testing.T) {
	var buf bytes.Buffer
	f := newTestFormatter(&buf)
	for _, raw := range []string{"2024-13-45T99:00:00Z", "2024-01-01T00:00:00+00:00Z", "T+Z"} {
		require.Equal(t, raw, f.Format(raw, ShortForm))
	}
	require.Contains(t, buf.String(), "level=ERROR")
	require.Contains(t, buf.String(), "date formatting failed")
}

func TestNewDefaults(t *testing.T) {
	f := New(nil, nil)
	require.NotNil(t, f.log)
	require.Equal(t, time.Local, f.loc)
}

func TestParseLayout(t *testing.T) {
	l, ok := ParseLayout("Short")
	require.True(t, ok)
	require.Equal(t, ShortForm, l)
	require.Equal(t, "short", l.String())

	l, ok = ParseLayout("medium")
	require.False(t, ok)
	require.Equal(t, LongForm, l)
}
