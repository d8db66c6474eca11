package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
)

const appDirName = "srcdsrm"

type dirEnv struct {
	DataDir    string `env:"SRCDSRM_DATA_DIR"`
	ConfigFile string `env:"SRCDSRM_CONFIG"`
}

func readEnv() dirEnv {
	var e dirEnv
	_ = env.Parse(&e)
	return e
}

// AppDataDir returns the application data directory for config, logs,
// history and the install ledger. SRCDSRM_DATA_DIR overrides it; otherwise
// os.UserConfigDir() is used:
//   - macOS: ~/Library/Application Support/srcdsrm
//   - Linux: $XDG_CONFIG_HOME/srcdsrm or ~/.config/srcdsrm
//   - Windows: %AppData%\srcdsrm
func AppDataDir() string {
	path := readEnv().DataDir
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "."
		}
		path = filepath.Join(dir, appDirName)
	}

	_ = os.MkdirAll(path, 0700)
	return path
}

// AppLocalDataDir returns the OS-appropriate local data directory, used for
// downloaded files.
//   - macOS: ~/Library/Application Support/srcdsrm
//   - Linux: $XDG_DATA_HOME/srcdsrm or ~/.local/share/srcdsrm
//   - Windows: %LOCALAPPDATA%\srcdsrm
func AppLocalDataDir() string {
	if dir := readEnv().DataDir; dir != "" {
		return dir
	}

	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// DownloadDir is where fetched archives and workshop files land before
// they are installed.
func DownloadDir() string {
	return filepath.Join(AppLocalDataDir(), "downloads")
}

// ConfigFilePath returns the config file path. SRCDSRM_CONFIG overrides it.
func ConfigFilePath() (string, error) {
	if p := readEnv().ConfigFile; p != "" {
		return p, nil
	}
	return filepath.Join(AppDataDir(), "srcdsrm.conf"), nil
}

// DefaultManifestPath is the manifest used until `configure appinfo` picks another.
func DefaultManifestPath() string {
	return filepath.Join(AppDataDir(), "appinfo.json")
}

// LogFilePath returns the path to the application log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "srcdsrm.log")
}

// HistoryFilePath returns the path of the shell's line history.
func HistoryFilePath() string {
	return filepath.Join(AppDataDir(), "history")
}

// LedgerPath returns the path of the install ledger database.
func LedgerPath() string {
	return filepath.Join(AppDataDir(), "ledger.db")
}
