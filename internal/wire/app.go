package wire

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/mithrel/notedeck/internal/config"
	"github.com/mithrel/notedeck/internal/datefmt"
	"github.com/mithrel/notedeck/internal/normalize"
	"github.com/mithrel/notedeck/internal/notes"
	"github.com/mithrel/notedeck/internal/snapshot"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg    *viper.Viper
	Log    *slog.Logger
	Dates  *datefmt.Formatter
	Source snapshot.Source
	Notes  *notes.Service
}

// BuildApp wires dependencies from a loaded config. Log output goes to logOut.
func BuildApp(ctx context.Context, v *viper.Viper, logOut io.Writer) (*App, error) {
	if err := config.CheckConfigValidity(v); err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: parseLogLevel(v.GetString("log.level"))}))

	loc, err := config.Location(v)
	if err != nil {
		return nil, err
	}
	dates := datefmt.New(logger, loc)

	src, err := snapshot.Open(v.GetString("source"), v.GetString("auth.token"), config.HTTPTimeout(v))
	if err != nil {
		return nil, err
	}

	list, detail := config.Layouts(v)
	svc := notes.New(src, dates, logger, notes.Options{
		Policy:       normalize.Policy{StripTitle: v.GetBool("normalize.strip_title")},
		ListLayout:   list,
		DetailLayout: detail,
	})
	return &App{
		Cfg:    v,
		Log:    logger,
		Dates:  dates,
		Source: src,
		Notes:  svc,
	}, nil
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
