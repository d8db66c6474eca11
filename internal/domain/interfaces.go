package domain

import (
	"context"
	"io"
)

// ConfigProvider defines operations for reading and writing configuration.
type ConfigProvider interface {
	// Get returns the value for a configuration key.
	Get(key string) (string, bool)

	// GetAll returns all configuration values.
	GetAll() (map[string]string, error)

	// Set sets a configuration value.
	Set(key, value string) error

	// Unset removes a configuration value.
	Unset(key string) error
}

// Logger defines logging operations.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Close() error
}

// OutputWriter defines output operations.
type OutputWriter interface {
	io.Writer

	// Printf formats and prints to the output.
	Printf(format string, args ...any) (int, error)

	// Println prints a line to the output.
	Println(args ...any) (int, error)

	// Pager displays content through a pager if appropriate.
	Pager(content string)
}

// Styler defines text styling operations.
type Styler interface {
	Enabled() bool
	Success(text string) string
	Warning(text string) string
	Error(text string) string
	Info(text string) string
	Muted(text string) string
	Header(text string) string
}

// Prompter asks the user for input from inside a running command.
type Prompter interface {
	// Prompt shows label and returns the entered line. An empty line keeps current.
	Prompt(label, current string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(question string) (bool, error)
}

// Fetcher downloads remote files.
type Fetcher interface {
	// Download fetches url into dir and reports where the file ended up.
	Download(ctx context.Context, url, dir string) (DownloadResult, error)

	// Workshop fetches every file behind a workshop item or collection into dir.
	Workshop(ctx context.Context, ref, dir string) ([]DownloadResult, error)
}

// Ledger records install runs and the files they produced.
type Ledger interface {
	BeginRun(platform string) (InstallRun, error)
	RecordFile(file InstalledFile) error
	FinishRun(runID string, status RunStatus) error
	ListRuns(limit int) ([]InstallRun, error)
	ListFiles(runID string) ([]InstalledFile, error)
	Clear() (int64, error)
	Close() error
}

// Application represents the main application context with all dependencies.
type Application struct {
	Config   ConfigProvider
	Logger   Logger
	Output   OutputWriter
	Styler   Styler
	Prompter Prompter
	Fetcher  Fetcher
	Ledger   Ledger
}
