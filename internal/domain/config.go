package domain

// ConfigKey defines a configuration key with its metadata.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     string // Section for grouping in `configure show`
	Hidden      bool   // Hidden keys are not shown in `configure show`
	HideIfEmpty bool   // Only show in `configure show` if explicitly set
}

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/102.0.0.0 Safari/537.36"

const DefaultWorkshopAPI = "https://db.steamworkshopdownloader.io/prod/api/details/file"

// ConfigKeys defines all available configuration keys.
// Order determines display order in `configure show`.
var ConfigKeys = []ConfigKey{
	// Manifest
	{
		Name:        "appinfo",
		Default:     "", // Set dynamically to paths.DefaultManifestPath()
		Description: "Path to the manifest (.json) file",
		Section:     "Manifest",
	},
	{
		Name:        "platform",
		Default:     "", // Set dynamically to runtime.GOOS
		Description: "Target platform for resources: windows, linux, darwin",
		Section:     "Manifest",
	},
	{
		Name:        "target_dir",
		Default:     "",
		Description: "Install target directory, overrides the manifest baseDir",
		Section:     "Manifest",
		HideIfEmpty: true,
	},
	{
		Name:        "download_dir",
		Default:     "", // Set dynamically to paths.DownloadDir()
		Description: "Directory for downloaded files",
		Section:     "Manifest",
	},
	// Network
	{
		Name:        "rate_limit",
		Default:     "2",
		Description: "Maximum HTTP requests per second",
		Section:     "Network",
	},
	{
		Name:        "max_retries",
		Default:     "3",
		Description: "Retries for a failed request",
		Section:     "Network",
	},
	{
		Name:        "timeout",
		Default:     "30s",
		Description: "Timeout for a single HTTP request (Go duration)",
		Section:     "Network",
	},
	{
		Name:        "user_agent",
		Default:     DefaultUserAgent,
		Description: "User-Agent header sent with downloads",
		Section:     "Network",
		Hidden:      true,
	},
	{
		Name:        "workshop_api",
		Default:     DefaultWorkshopAPI,
		Description: "Workshop details endpoint",
		Section:     "Network",
		Hidden:      true,
	},
	// Display
	{
		Name:        "pager",
		Default:     "less -FRSX",
		Description: "Pager command for long output",
		Section:     "Display",
	},
	{
		Name:        "color",
		Default:     "auto",
		Description: "Colored output: auto, always, never",
		Section:     "Display",
	},
	// Logging
	{
		Name:        "enable_log",
		Default:     "true",
		Description: "Enable logging to file (true/false)",
		Section:     "Logging",
	},
	{
		Name:        "log_level",
		Default:     "info",
		Description: "Minimum log level: debug, info, warn, error",
		Section:     "Logging",
	},
}

// configKeyMap is a lookup map for configuration keys.
var configKeyMap map[string]ConfigKey

func init() {
	configKeyMap = make(map[string]ConfigKey, len(ConfigKeys))
	for _, key := range ConfigKeys {
		configKeyMap[key.Name] = key
	}
}

// GetConfigKey returns the ConfigKey for a given name.
func GetConfigKey(name string) (ConfigKey, bool) {
	key, ok := configKeyMap[name]
	return key, ok
}

// IsValidConfigKey checks if a key name is valid.
func IsValidConfigKey(name string) bool {
	_, ok := configKeyMap[name]
	return ok
}

// GetDefaultValue returns the default value for a config key.
func GetDefaultValue(name string) (string, bool) {
	if key, ok := configKeyMap[name]; ok {
		return key.Default, true
	}
	return "", false
}

// VisibleConfigKeys returns all non-hidden configuration keys.
func VisibleConfigKeys() []ConfigKey {
	var visible []ConfigKey
	for _, key := range ConfigKeys {
		if !key.Hidden {
			visible = append(visible, key)
		}
	}
	return visible
}

// ConfigSections returns the ordered list of section names.
func ConfigSections() []string {
	return []string{"Manifest", "Network", "Display", "Logging"}
}

// ConfigKeysBySection returns visible config keys grouped by section.
func ConfigKeysBySection() map[string][]ConfigKey {
	result := make(map[string][]ConfigKey)
	for _, key := range ConfigKeys {
		if !key.Hidden {
			result[key.Section] = append(result[key.Section], key)
		}
	}
	return result
}
