package config

import (
	"fmt"
	"strings"
)

// RenderDefaultTOML renders a commented TOML config from GetConfigOptions.
func RenderDefaultTOML() string {
	var b strings.Builder
	b.WriteString("# notedeck configuration (TOML)\n\n")

	sections := make(map[string][]ConfigOption)
	var order []string
	for _, o := range GetConfigOptions() {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			writeTOMLOption(&b, o.Key, o.Default, o.Comment)
			continue
		}
		if _, seen := sections[section]; !seen {
			order = append(order, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	for _, section := range order {
		b.WriteString("[" + section + "]\n")
		for _, o := range sections[section] {
			writeTOMLOption(&b, o.Key, o.Default, o.Comment)
		}
	}
	return b.String()
}

func writeTOMLOption(b *strings.Builder, key string, value any, comment string) {
	if comment != "" {
		b.WriteString("# " + comment + "\n")
	}
	switch v := value.(type) {
	case string:
		fmt.Fprintf(b, "%s = %q\n\n", key, v)
	default:
		fmt.Fprintf(b, "%s = %v\n\n", key, v)
	}
}

// UpdateTOML adds missing options to an existing config and comments out keys
// that are no longer known. Missing keys are placed in their own section so the
// result stays valid TOML. It reports whether anything changed.
func UpdateTOML(existing string) (string, bool) {
	opts := GetConfigOptions()
	known := make(map[string]bool, len(opts))
	for _, o := range opts {
		known[o.Key] = true
	}

	lines := strings.Split(strings.TrimRight(existing, "\n"), "\n")
	present := make(map[string]bool)
	sectionEnd := make(map[string]int) // section -> index after its last line
	var sectionOrder []string
	firstHeader, seenHeader := 0, false
	current := ""
	changed := false

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trim := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]"):
			current = strings.TrimSpace(trim[1 : len(trim)-1])
			if !seenHeader {
				firstHeader, seenHeader = len(out), true
			}
			sectionOrder = append(sectionOrder, current)
		case trim == "" || strings.HasPrefix(trim, "#"):
		default:
			if key, ok := parseTOMLKey(line); ok {
				full := key
				if current != "" {
					full = current + "." + key
				}
				present[full] = true
				if !known[full] {
					out = append(out, "# OUTDATED: option removed from config schema", "# "+trim)
					changed = true
					sectionEnd[current] = len(out)
					continue
				}
			}
		}
		out = append(out, line)
		if current != "" && trim != "" {
			sectionEnd[current] = len(out)
		}
	}
	if !seenHeader {
		firstHeader = len(out)
	}

	inserts := make(map[int][]string)
	var appended []string
	for _, o := range opts {
		if present[o.Key] {
			continue
		}
		changed = true
		section, key, dotted := strings.Cut(o.Key, ".")
		if !dotted {
			inserts[firstHeader] = appendOptionLines(inserts[firstHeader], o.Key, o.Default, o.Comment)
			continue
		}
		if end, ok := sectionEnd[section]; ok {
			inserts[end] = appendOptionLines(inserts[end], key, o.Default, o.Comment)
			continue
		}
		if !containsSection(sectionOrder, section) {
			sectionOrder = append(sectionOrder, section)
			appended = append(appended, "", "["+section+"]")
		}
		appended = appendOptionLines(appended, key, o.Default, o.Comment)
	}
	if !changed {
		return existing, false
	}

	result := make([]string, 0, len(out)+len(appended))
	for i := 0; i <= len(out); i++ {
		if add, ok := inserts[i]; ok {
			result = append(result, add...)
		}
		if i < len(out) {
			result = append(result, out[i])
		}
	}
	result = append(result, appended...)
	return strings.Join(result, "\n") + "\n", true
}

func appendOptionLines(lines []string, key string, value any, comment string) []string {
	var b strings.Builder
	writeTOMLOption(&b, key, value, comment)
	return append(lines, strings.Split(strings.TrimRight(b.String(), "\n"), "\n")...)
}

func containsSection(sections []string, name string) bool {
	for _, s := range sections {
		if s == name {
			return true
		}
	}
	return false
}

func parseTOMLKey(line string) (string, bool) {
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" || strings.HasPrefix(key, "[") || strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}
