package config

import (
	"runtime"

	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/paths"
)

// dynamicDefaults are computed when asked for; they depend on the host.
var dynamicDefaults = map[string]func() string{
	"appinfo":      paths.DefaultManifestPath,
	"platform":     func() string { return runtime.GOOS },
	"download_dir": paths.DownloadDir,
}

// Defaults maps every known key to its default value (in code, not persisted).
var Defaults = buildDefaults()

func buildDefaults() map[string]func() string {
	out := make(map[string]func() string, len(domain.ConfigKeys))
	for _, key := range domain.ConfigKeys {
		if fn, ok := dynamicDefaults[key.Name]; ok {
			out[key.Name] = fn
			continue
		}
		value := key.Default
		out[key.Name] = func() string { return value }
	}
	return out
}

// Get returns the value for a config key in the file at path.
// Environment overrides win over the file, which wins over the default.
// Returns the value and whether it was found anywhere.
func Get(path, key string) (string, bool) {
	if value, ok := envOverrides()[key]; ok {
		return value, true
	}

	if cfg, err := readConfig(path); err == nil {
		if value, exists := cfg[key]; exists {
			return value, true
		}
	}

	if defaultFn, ok := Defaults[key]; ok {
		return defaultFn(), true
	}

	return "", false
}

// GetAll returns all config values: defaults, then the file, then the
// environment.
func GetAll(path string) (map[string]string, error) {
	result := make(map[string]string, len(Defaults))

	for key, valueFn := range Defaults {
		result[key] = valueFn()
	}

	// a broken file still yields defaults
	if cfg, err := readConfig(path); err == nil {
		for key, value := range cfg {
			result[key] = value
		}
	}

	for key, value := range envOverrides() {
		result[key] = value
	}

	return result, nil
}

func readConfig(path string) (map[string]string, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}
