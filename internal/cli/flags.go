package cli

import "github.com/spf13/cobra"

// Flags are the process-wide options, shared by the shell and every
// subcommand.
type Flags struct {
	ConfigPath string
	Appinfo    string
	NoColor    bool
	NoPager    bool
	LogLevel   string
}

// Bind registers f as persistent flags of cmd.
func (f *Flags) Bind(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&f.ConfigPath, "config", "", "Path to the configuration file")
	fs.StringVar(&f.Appinfo, "appinfo", "", "Manifest to open instead of the configured one")
	fs.BoolVar(&f.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&f.NoPager, "no-pager", false, "Do not use pager for output")
	fs.StringVar(&f.LogLevel, "log-level", "", "Minimum log level: debug, info, warn, error")
}
