package app

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/previoip/srcds-resource-manager/internal/config"
	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/fetch"
	"github.com/previoip/srcds-resource-manager/internal/log"
	"github.com/previoip/srcds-resource-manager/internal/paths"
	"github.com/previoip/srcds-resource-manager/internal/store"
	"github.com/previoip/srcds-resource-manager/internal/ui"
	"github.com/previoip/srcds-resource-manager/internal/ui/style"
)

// Options configures the application factory.
type Options struct {
	// ConfigPath selects the config file; empty means the default location.
	ConfigPath string

	// Pager options
	PagerDisabled bool
	PagerOverride string

	// NoColor forces plain output regardless of the color key.
	NoColor bool

	// LogLevel overrides the log_level key when set.
	LogLevel string

	// Output receives command output and download progress. Defaults to stdout.
	Output io.Writer
}

// New creates a new Application with all dependencies wired up. The
// Prompter is left nil; it belongs to the terminal the caller opens.
func New(opts Options) (*domain.Application, error) {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cfg, err := config.NewProvider(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg, opts.LogLevel)

	colorMode, _ := cfg.Get("color")
	style.Init(!opts.NoColor && style.ShouldEnable(colorMode, ui.IsTerminal(opts.Output)))

	ledger, err := store.New(paths.LedgerPath(), logger)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	writerOpts := []ui.WriterOption{ui.WithConfigGetter(cfg.Get)}
	if opts.PagerDisabled {
		writerOpts = append(writerOpts, ui.WithPagerDisabled())
	}
	if opts.PagerOverride != "" {
		writerOpts = append(writerOpts, ui.WithPagerOverride(opts.PagerOverride))
	}

	return &domain.Application{
		Config:  cfg,
		Logger:  logger,
		Output:  ui.NewWriterTo(opts.Output, writerOpts...),
		Styler:  style.NewStyler(),
		Fetcher: fetch.New(FetchOptions(cfg, ui.NewReporter(opts.Output), logger)),
		Ledger:  ledger,
	}, nil
}

func newLogger(cfg domain.ConfigProvider, levelOverride string) domain.Logger {
	if enabled, _ := cfg.Get("enable_log"); enabled != "true" {
		return log.NopLogger{}
	}

	level := levelOverride
	if level == "" {
		level, _ = cfg.Get("log_level")
	}

	l, err := log.New(paths.LogFilePath(), log.ParseLevel(level))
	if err != nil {
		// Fall back to NopLogger on error
		return log.NopLogger{}
	}
	log.SetDefault(l)
	return l
}

// FetchOptions reads the network keys from cfg. Values that do not parse
// are logged and left to the client defaults.
func FetchOptions(cfg domain.ConfigProvider, reporter ui.Reporter, logger domain.Logger) fetch.Options {
	opts := fetch.Options{Reporter: reporter, Logger: logger}

	if v, ok := cfg.Get("rate_limit"); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.RateLimit = f
		} else {
			logger.Warn("config: rate_limit %q: %v", v, err)
		}
	}
	if v, ok := cfg.Get("max_retries"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.MaxRetries = n
		} else {
			logger.Warn("config: max_retries %q: %v", v, err)
		}
	}
	if v, ok := cfg.Get("timeout"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			opts.Timeout = d
		} else {
			logger.Warn("config: timeout %q: %v", v, err)
		}
	}
	opts.UserAgent, _ = cfg.Get("user_agent")
	opts.WorkshopAPI, _ = cfg.Get("workshop_api")
	return opts
}

// NewForTesting creates an Application suitable for testing: no ledger,
// NopLogger, no styling and no pager. Config reads and writes the file at
// configPath.
func NewForTesting(configPath string) *domain.Application {
	cfg, _ := config.NewProvider(configPath)
	return &domain.Application{
		Config:  cfg,
		Logger:  log.NopLogger{},
		Output:  ui.NewWriterTo(io.Discard, ui.WithPagerDisabled()),
		Styler:  style.Plain,
		Fetcher: fetch.New(fetch.Options{}),
	}
}

// Close cleans up application resources.
func Close(app *domain.Application) error {
	if app.Logger != nil {
		_ = app.Logger.Close()
	}
	if app.Ledger != nil {
		return app.Ledger.Close()
	}
	return nil
}
