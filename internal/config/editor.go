package config

import "strings"

// Set replaces the line holding key, or appends one. An inline comment on the
// replaced line is kept. Reports whether an existing line was replaced.
func Set(lines []string, key, value string) ([]string, bool) {
	value = quote(value)

	for i, line := range lines {
		k, rest, ok := splitEntry(line)
		if !ok || k != key {
			continue
		}

		if idx := strings.Index(rest, " #"); idx >= 0 {
			lines[i] = key + "=" + value + " " + strings.TrimSpace(rest[idx:])
		} else {
			lines[i] = key + "=" + value
		}
		return lines, true
	}

	return append(lines, key+"="+value), false
}

// Unset drops every line holding key. Reports whether anything was removed.
func Unset(lines []string, key string) ([]string, bool) {
	var out []string
	removed := false

	for _, line := range lines {
		if k, _, ok := splitEntry(line); ok && k == key {
			removed = true
			continue
		}
		out = append(out, line)
	}

	return out, removed
}

// splitEntry returns the key and raw value of a key=value line.
func splitEntry(line string) (string, string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	key, rest, ok := strings.Cut(trimmed, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), rest, true
}

func quote(value string) string {
	if strings.Contains(value, " ") && !strings.HasPrefix(value, "\"") {
		return "\"" + value + "\""
	}
	return value
}
