package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mithrel/notedeck/internal/datefmt"
	"github.com/mithrel/notedeck/pkg/api"
)

const appName = "notedeck"

// ConfigOption is one known key, its default and the comment written by `config generate`.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the known options. Dotted keys become TOML sections.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "source", Default: "", Comment: "Snapshot location: file path, \"-\" for stdin, or https://<db>.firebaseio.com"},

		{Key: "auth.token", Default: "", Comment: "Token sent as ?auth= on HTTP snapshot requests"},
		{Key: "http.timeout", Default: "10s", Comment: "Timeout for HTTP snapshot requests"},

		{Key: "sort.field", Default: string(api.SortUpdated), Comment: "Default sort field: updated_date|created_date|title"},
		{Key: "sort.order", Default: string(api.Desc), Comment: "Default sort order: asc|desc"},

		{Key: "normalize.strip_title", Default: true, Comment: "Remove a title restated at the top of the body"},

		{Key: "dates.timezone", Default: "Local", Comment: "IANA time zone used to display dates"},
		{Key: "dates.list_layout", Default: "short", Comment: "Date layout in lists: short|long"},
		{Key: "dates.detail_layout", Default: "long", Comment: "Date layout in note detail: short|long"},

		{Key: "render.style", Default: "dracula", Comment: "glamour style for pretty output (auto, dark, light, dracula, notty, ...)"},
		{Key: "render.width", Default: 80, Comment: "Word-wrap width for pretty output"},

		{Key: "log.level", Default: "warn", Comment: "Log level: debug|info|warn|error"},
	}
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated.
func Load(ctx context.Context, v *viper.Viper) error {
	// If SetConfigFile was called upstream it wins; these are fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; an explicit or unreadable one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	// NOTEDECK_SORT_FIELD etc.
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "config.toml")
}

// QueryState returns the configured default sort. Invalid values fall back to
// the defaults; CheckConfigValidity reports them.
func QueryState(v *viper.Viper) api.QueryState {
	st := api.DefaultQueryState()
	if f, ok := api.ParseSortField(v.GetString("sort.field")); ok {
		st.Field = f
	}
	if o, ok := api.ParseSortOrder(v.GetString("sort.order")); ok {
		st.Order = o
	}
	return st
}

// Location resolves dates.timezone.
func Location(v *viper.Viper) (*time.Location, error) {
	name := strings.TrimSpace(v.GetString("dates.timezone"))
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// Layouts resolves the list and detail date layouts.
func Layouts(v *viper.Viper) (list, detail datefmt.Layout) {
	list, ok := datefmt.ParseLayout(v.GetString("dates.list_layout"))
	if !ok {
		list = datefmt.ShortForm
	}
	detail, _ = datefmt.ParseLayout(v.GetString("dates.detail_layout"))
	return list, detail
}

// HTTPTimeout parses http.timeout, defaulting to 10s.
func HTTPTimeout(v *viper.Viper) time.Duration {
	d, err := time.ParseDuration(v.GetString("http.timeout"))
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}
