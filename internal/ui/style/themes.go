package style

import (
	"os"

	"github.com/muesli/termenv"
)

// ColorConfig holds the colors for each semantic style.
// Values can be ANSI color numbers (0-255) or "bold" for bold styling.
type ColorConfig struct {
	Success string
	Warning string
	Error   string
	Info    string
	Muted   string
	Header  string
}

// Dark themes use bright colors, light themes use dark ones.
var Themes = map[string]ColorConfig{
	"dark": {
		Success: "10",
		Warning: "11",
		Error:   "9",
		Info:    "14",
		Muted:   "245",
		Header:  "bold",
	},
	"light": {
		Success: "28",
		Warning: "130",
		Error:   "124",
		Info:    "25",
		Muted:   "242",
		Header:  "bold",
	},
}

// IsDarkBackground returns true if the terminal has a dark background.
// Returns true if detection fails.
func IsDarkBackground() bool {
	return termenv.HasDarkBackground()
}

// LoadColorConfig picks the palette. SRCDSRM_THEME ("dark" or "light")
// overrides background detection.
func LoadColorConfig() ColorConfig {
	if theme, ok := Themes[os.Getenv("SRCDSRM_THEME")]; ok {
		return theme
	}
	if IsDarkBackground() {
		return Themes["dark"]
	}
	return Themes["light"]
}
