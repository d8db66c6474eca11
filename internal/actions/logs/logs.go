package logs

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/previoip/srcds-resource-manager/internal/dispatchers"
)

const defaultLogLimit = 50

// View shows the last lines of the log file. A following clear replaces it.
func View(deps Deps) dispatchers.HookFunc {
	return func(context.Context, *dispatchers.Namespace) error {
		deps.Session.Defer(func(context.Context) error {
			return view(deps.WithFiles())
		})
		return nil
	}
}

func view(deps Deps) error {
	logPath := deps.LogFilePath()

	info, err := deps.Stat(logPath)
	if os.IsNotExist(err) {
		_, _ = deps.Printf("%s\n", deps.Styler.Muted("no log file found at "+logPath))
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() == 0 {
		_, _ = deps.Printf("%s\n", deps.Styler.Muted("log file is empty"))
		return nil
	}

	content, err := deps.ReadFile(logPath)
	if err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")

	limit := deps.Limit
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(colorize(deps, line))
		b.WriteByte('\n')
	}

	if deps.Pager != nil {
		deps.Pager(b.String())
		return nil
	}
	_, _ = deps.Printf("%s", b.String())
	return nil
}

// Clear empties the log file.
func Clear(deps Deps) dispatchers.HookFunc {
	return func(context.Context, *dispatchers.Namespace) error {
		deps.Session.Defer(func(context.Context) error {
			return clearLog(deps.WithFiles())
		})
		return nil
	}
}

func clearLog(deps Deps) error {
	if err := deps.WriteFile(deps.LogFilePath(), []byte{}, 0600); err != nil {
		return fmt.Errorf("clear log file: %w", err)
	}
	_, _ = deps.Printf("%s\n", deps.Styler.Success("log file cleared"))
	return nil
}

// colorize picks a style from the level field of a logfmt line.
func colorize(deps Deps, line string) string {
	switch {
	case strings.Contains(line, "level=error"), strings.Contains(line, "level=fatal"):
		return deps.Styler.Error(line)
	case strings.Contains(line, "level=warning"):
		return deps.Styler.Warning(line)
	case strings.Contains(line, "level=info"):
		return deps.Styler.Info(line)
	case strings.Contains(line, "level=debug"):
		return deps.Styler.Muted(line)
	default:
		return line
	}
}
