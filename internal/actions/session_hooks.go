package actions

import (
	"context"
	"strconv"

	"github.com/previoip/srcds-resource-manager/internal/dispatchers"
	"github.com/previoip/srcds-resource-manager/internal/usage"
)

// Help prints the command tree and the command list after the line, unless
// a "help <command>" child replaced it.
func Help(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		return help(ctx, deps)
	}
}

// HelpFor prints the help of the command at path.
func HelpFor(deps Deps, path ...string) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		return help(ctx, deps, path...)
	}
}

func help(ctx context.Context, deps Deps, path ...string) error {
	show := func(context.Context) error {
		_, _ = deps.Printf("%s", deps.HelpText(path...))
		return nil
	}
	if deps.Session == nil {
		return show(ctx)
	}
	deps.Session.Defer(show)
	return nil
}

// Exit saves the manifest and ends the read loop.
func Exit(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		return exit(ctx, ns, deps)
	}
}

func exit(_ context.Context, _ *dispatchers.Namespace, deps Deps) error {
	// the loop ends even when the save fails
	deps.Session.Stop()
	if deps.Save != nil {
		if err := deps.Save(); err != nil {
			return err
		}
	}
	_, _ = deps.Printf("exiting program\n")
	return nil
}

// ParseIndex reads the 1-based entry index bound to field.
func ParseIndex(ns *dispatchers.Namespace, field string) (int, error) {
	raw := ns.Get(field)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, usage.InvalidArgument(field, raw, "argument needs to be integer")
	}
	if n < 1 {
		return 0, usage.NotFound(field, n)
	}
	return n, nil
}
