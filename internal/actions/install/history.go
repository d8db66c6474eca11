package install

import (
	"context"

	"github.com/dustin/go-humanize"

	"github.com/previoip/srcds-resource-manager/internal/dispatchers"
)

const historyLimit = 20

// History queues a listing of recent install runs; clear replaces it.
func History(deps Deps) dispatchers.HookFunc {
	return func(context.Context, *dispatchers.Namespace) error {
		deps.Session.Defer(func(context.Context) error {
			return history(deps)
		})
		return nil
	}
}

func history(deps Deps) error {
	runs, err := deps.Ledger.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, _ = deps.Printf("%s\n", deps.Styler.Muted("no installs recorded"))
		return nil
	}

	for _, r := range runs {
		_, _ = deps.Printf("  %s  %-8s  %-8s %s  %s\n",
			deps.Styler.Info(shortID(r.ID)),
			r.Status,
			r.Platform,
			humanize.Comma(int64(r.Files))+" file(s)",
			deps.Styler.Muted(humanize.Time(r.StartedAt)))
	}
	return nil
}

// Clear empties the ledger after confirmation.
func Clear(deps Deps) dispatchers.HookFunc {
	return func(context.Context, *dispatchers.Namespace) error {
		deps.Session.Defer(func(context.Context) error {
			return clearHistory(deps)
		})
		return nil
	}
}

func clearHistory(deps Deps) error {
	ok, err := deps.Prompter.Confirm("clear install history?")
	if err != nil || !ok {
		return err
	}
	n, err := deps.Ledger.Clear()
	if err != nil {
		return err
	}
	deps.Logger.Info("install: cleared %d run(s) from history", n)
	_, _ = deps.Printf("removed %s run(s)\n", humanize.Comma(n))
	return nil
}
