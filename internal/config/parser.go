package config

import (
	"fmt"
	"strings"
)

const bom = "\uFEFF"

// Parse turns config lines into a key/value map. Blank lines and lines
// starting with '#' are skipped, as is a trailing " # comment". Values may
// contain '='; a value wrapped in double quotes is unquoted. The last
// occurrence of a key wins.
func Parse(lines []string) (map[string]string, error) {
	cfg := make(map[string]string)

	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, bom)
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			return nil, fmt.Errorf("config: line %d: missing '='", i+1)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("config: line %d: empty key", i+1)
		}

		cfg[key] = unquote(stripComment(strings.TrimSpace(value)))
	}

	return cfg, nil
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

func stripComment(v string) string {
	if strings.HasPrefix(v, "\"") {
		if end := strings.IndexByte(v[1:], '"'); end >= 0 {
			return v[:end+2]
		}
		return v
	}
	for i := 1; i < len(v); i++ {
		if v[i] == '#' && (v[i-1] == ' ' || v[i-1] == '\t') {
			return strings.TrimSpace(v[:i])
		}
	}
	return v
}
