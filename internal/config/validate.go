package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mithrel/notedeck/internal/datefmt"
	"github.com/mithrel/notedeck/pkg/api"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// CheckConfigValidity reports every invalid setting at once.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string
	add := func(format string, args ...any) { problems = append(problems, fmt.Sprintf(format, args...)) }

	if src := strings.TrimSpace(v.GetString("source")); strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		if u, err := url.Parse(src); err != nil || u.Host == "" {
			add("source has invalid url")
		}
	}
	if d, err := time.ParseDuration(v.GetString("http.timeout")); err != nil || d <= 0 {
		add("http.timeout must be a positive duration")
	}
	if _, ok := api.ParseSortField(v.GetString("sort.field")); !ok {
		add("sort.field must be one of updated_date, created_date, title")
	}
	if _, ok := api.ParseSortOrder(v.GetString("sort.order")); !ok {
		add("sort.order must be asc or desc")
	}
	if _, err := Location(v); err != nil {
		add("dates.timezone is not a known zone")
	}
	for _, key := range []string{"dates.list_layout", "dates.detail_layout"} {
		if _, ok := datefmt.ParseLayout(v.GetString(key)); !ok {
			add("%s must be short or long", key)
		}
	}
	if v.GetInt("render.width") <= 0 {
		add("render.width must be greater than 0")
	}
	if !logLevels[strings.ToLower(strings.TrimSpace(v.GetString("log.level")))] {
		add("log.level must be debug, info, warn or error")
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid config: " + strings.Join(problems, "; "))
}
