package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/log"
)

// ReadLines returns the raw lines of the config file at path. A missing or
// empty file is created and seeded with the visible defaults.
func ReadLines(path string) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("config: create directory: %w", err)
	}

	info, err := os.Stat(path)
	isNew := os.IsNotExist(err) || (err == nil && info.Size() == 0)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	if err := os.Chmod(path, 0600); err != nil {
		log.Warn("config: could not set permissions on config file: %v", err)
	}

	var lines []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if isNew && len(lines) == 0 {
		lines = initializeDefaults()
		if err := WriteLines(path, lines); err != nil {
			log.Warn("config: could not write default config: %v", err)
		}
	}

	return lines, nil
}

// initializeDefaults creates config lines with default values for visible keys.
func initializeDefaults() []string {
	lines := []string{
		"# srcdsrm configuration",
		"# Edit values below or use: configure set <key> <value>",
		"",
	}

	section := ""
	for _, key := range domain.ConfigKeys {
		if key.Hidden {
			continue
		}

		if key.Section != section {
			if section != "" {
				lines = append(lines, "")
			}
			section = key.Section
			lines = append(lines, "# "+section)
		}

		value := key.Default
		if fn, ok := Defaults[key.Name]; ok {
			value = fn()
		}

		if strings.Contains(value, " ") {
			value = "\"" + value + "\""
		}

		// optional overrides stay commented out
		if key.HideIfEmpty {
			lines = append(lines, "# "+key.Name+"=")
		} else {
			lines = append(lines, key.Name+"="+value)
		}
	}

	return lines
}
