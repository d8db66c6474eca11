package entries

import (
	"context"
	"errors"
	"fmt"

	"github.com/previoip/srcds-resource-manager/internal/actions"
	"github.com/previoip/srcds-resource-manager/internal/dispatchers"
	"github.com/previoip/srcds-resource-manager/internal/manifest"
	"github.com/previoip/srcds-resource-manager/internal/usage"
)

func NewPlugin(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		return newEntry(deps, "plugin", func(m *manifest.Manifest) (manifest.Entry, int, error) {
			p, n := m.AddPlugin()
			return p, n, nil
		})
	}
}

func NewAddon(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		return newEntry(deps, "addon", func(m *manifest.Manifest) (manifest.Entry, int, error) {
			a, n := m.AddAddon()
			return a, n, nil
		})
	}
}

// NewResource adds a resource under the plugin named by the index argument.
func NewResource(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		n, err := actions.ParseIndex(ns, "index")
		if err != nil {
			return err
		}
		if _, err := deps.Docs.Doc().Plugin(n); err != nil {
			return notFound(err, "plugin", n)
		}
		return newEntry(deps, "resource", func(m *manifest.Manifest) (manifest.Entry, int, error) {
			r, i, err := m.AddResource(n)
			return r, i, err
		})
	}
}

func newEntry(deps Deps, kind string, add func(*manifest.Manifest) (manifest.Entry, int, error)) error {
	ok, err := deps.Prompter.Confirm(fmt.Sprintf("create new %s entry?", kind))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	e, n, err := add(deps.Docs.Doc())
	if err != nil {
		return err
	}
	deps.Logger.Info("entries: new %s %d", kind, n)
	_, _ = deps.Printf("%s\n", deps.Styler.Success(fmt.Sprintf("created %s %d", kind, n)))
	return promptFields(deps, e)
}

func EditPlugin(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		e, err := lookup(deps, ns, "plugin")
		if err != nil {
			return err
		}
		return promptFields(deps, e)
	}
}

func EditAddon(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		e, err := lookup(deps, ns, "addon")
		if err != nil {
			return err
		}
		return promptFields(deps, e)
	}
}

// EditConfig prompts for the server config of the open manifest.
func EditConfig(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		return promptFields(deps, &deps.Docs.Doc().Config)
	}
}

// SetupConfig asks for the server config of a freshly started manifest and
// writes it so the file exists on disk.
func SetupConfig(deps Deps) error {
	_, _ = deps.Printf("  set up the server config for %s\n", deps.Docs.Path())
	if err := promptFields(deps, &deps.Docs.Doc().Config); err != nil {
		return err
	}
	if err := deps.Docs.Save(); err != nil {
		return err
	}
	deps.Logger.Info("entries: created manifest %s", deps.Docs.Path())
	_, _ = deps.Printf("saved appinfo: %s\n", deps.Docs.Path())
	return nil
}

// promptFields shows the current values of e and asks for each field in
// turn. An empty answer keeps the value; a rejected one is reported and
// skipped.
func promptFields(deps Deps, e manifest.Entry) error {
	_, _ = deps.Printf("  current values:\n")
	printFields(deps, e)
	_, _ = deps.Printf("\n")

	for _, f := range e.Fields() {
		answer, err := deps.Prompter.Prompt(fmt.Sprintf("  >> set %q: ", f.Name), f.Value)
		if err != nil {
			return err
		}
		if answer == "" || answer == f.Value {
			continue
		}
		if err := e.Set(f.Name, answer); err != nil {
			_, _ = deps.Printf("%s\n", deps.Styler.Warning(fmt.Sprintf("error assigning %s: %v", f.Name, err)))
		}
	}

	_, _ = deps.Printf("  properties set for %s\n\n", fieldValue(e, "name"))
	return nil
}

func lookup(deps Deps, ns *dispatchers.Namespace, kind string) (manifest.Entry, error) {
	n, err := actions.ParseIndex(ns, "index")
	if err != nil {
		return nil, err
	}
	doc := deps.Docs.Doc()
	var e manifest.Entry
	switch kind {
	case "plugin":
		e, err = doc.Plugin(n)
	default:
		e, err = doc.Addon(n)
	}
	if err != nil {
		return nil, notFound(err, kind, n)
	}
	return e, nil
}

func notFound(err error, kind string, n int) error {
	if errors.Is(err, manifest.ErrNotFound) {
		return usage.NotFound(kind, n)
	}
	return err
}

func fieldValue(e manifest.Entry, name string) string {
	for _, f := range e.Fields() {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}
