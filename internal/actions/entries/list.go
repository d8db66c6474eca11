package entries

import (
	"context"

	"github.com/previoip/srcds-resource-manager/internal/dispatchers"
)

const (
	showPlugins = 1 << iota
	showAddons
)

// List queues a listing of both entry kinds; a following plugins or addons
// token narrows it.
func List(deps Deps) dispatchers.HookFunc {
	return func(context.Context, *dispatchers.Namespace) error {
		deps.Session.Defer(func(context.Context) error {
			return list(deps, showPlugins|showAddons)
		})
		return nil
	}
}

func ListPlugins(deps Deps) dispatchers.HookFunc {
	return func(context.Context, *dispatchers.Namespace) error {
		deps.Session.Defer(func(context.Context) error {
			return list(deps, showPlugins)
		})
		return nil
	}
}

func ListAddons(deps Deps) dispatchers.HookFunc {
	return func(context.Context, *dispatchers.Namespace) error {
		deps.Session.Defer(func(context.Context) error {
			return list(deps, showAddons)
		})
		return nil
	}
}

func list(deps Deps, show int) error {
	doc := deps.Docs.Doc()

	if show&showAddons != 0 {
		_, _ = deps.Printf("%s\n", deps.Styler.Header("available addons:"))
		for i, a := range doc.Addons {
			_, _ = deps.Printf("  %s %2d. %s\n", mark(deps, a.Exclude), i+1, a.Name)
		}
		_, _ = deps.Printf("\n")
	}
	if show&showPlugins != 0 {
		_, _ = deps.Printf("%s\n", deps.Styler.Header("available plugins:"))
		for i, p := range doc.Plugins {
			_, _ = deps.Printf("  %s %2d. %s\n", mark(deps, p.Exclude), i+1, p.Name)
		}
		_, _ = deps.Printf("\n")
	}
	return nil
}

// mark renders "[o]" for entries that will be installed and "[ ]" for excluded ones.
func mark(deps Deps, excluded bool) string {
	if excluded {
		return deps.Styler.Muted("[ ]")
	}
	return deps.Styler.Success("[o]")
}
