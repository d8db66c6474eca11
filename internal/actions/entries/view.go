package entries

import (
	"context"
	"fmt"
	"strconv"

	"github.com/previoip/srcds-resource-manager/internal/dispatchers"
	"github.com/previoip/srcds-resource-manager/internal/manifest"
)

func ViewPlugin(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		e, err := lookup(deps, ns, "plugin")
		if err != nil {
			return err
		}
		printFields(deps, e)

		p := e.(*manifest.Plugin)
		if len(p.Resources) > 0 {
			_, _ = deps.Printf("    %q:\n", "resources")
			for i := range p.Resources {
				r := &p.Resources[i]
				_, _ = deps.Printf("      %s %2d. %s %s\n", mark(deps, r.Exclude), i+1, r.Name, deps.Styler.Muted(resourceNote(r)))
			}
		}
		return nil
	}
}

func ViewAddon(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		e, err := lookup(deps, ns, "addon")
		if err != nil {
			return err
		}
		printFields(deps, e)
		return nil
	}
}

// ViewConfig prints the server config of the open manifest.
func ViewConfig(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		printFields(deps, &deps.Docs.Doc().Config)
		return nil
	}
}

func printFields(deps Deps, e manifest.Entry) {
	for _, f := range e.Fields() {
		_, _ = deps.Printf("    %q: %s\n", f.Name, f.Value)
	}
}

func resourceNote(r *manifest.Resource) string {
	platform := r.Platform
	if platform == "" {
		platform = "any"
	}
	return fmt.Sprintf("(%s) %s", platform, r.URL)
}

// ExcludePlugin toggles whether the plugin is installed.
func ExcludePlugin(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		return toggle(deps, ns, "plugin")
	}
}

// ExcludeAddon toggles whether the addon is installed.
func ExcludeAddon(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		return toggle(deps, ns, "addon")
	}
}

func toggle(deps Deps, ns *dispatchers.Namespace, kind string) error {
	e, err := lookup(deps, ns, kind)
	if err != nil {
		return err
	}
	excluded, err := manifest.ParseExclude(fieldValue(e, "exclude"))
	if err != nil {
		return err
	}
	if err := e.Set("exclude", strconv.FormatBool(!excluded)); err != nil {
		return err
	}

	state := deps.Styler.Success("included")
	if !excluded {
		state = deps.Styler.Muted("excluded")
	}
	_, _ = deps.Printf("%s %s: %s\n", kind, fieldValue(e, "name"), state)
	return nil
}

// Save writes the manifest to its appinfo path.
func Save(deps Deps) dispatchers.HookFunc {
	return func(ctx context.Context, ns *dispatchers.Namespace) error {
		if err := deps.Docs.Save(); err != nil {
			return err
		}
		_, _ = deps.Printf("saved appinfo: %s\n", deps.Docs.Path())
		return nil
	}
}
