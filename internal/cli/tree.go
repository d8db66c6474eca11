package cli

import (
	"github.com/previoip/srcds-resource-manager/internal/actions"
	"github.com/previoip/srcds-resource-manager/internal/actions/configure"
	"github.com/previoip/srcds-resource-manager/internal/actions/entries"
	"github.com/previoip/srcds-resource-manager/internal/actions/install"
	"github.com/previoip/srcds-resource-manager/internal/actions/logs"
	"github.com/previoip/srcds-resource-manager/internal/dispatchers"
	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/manifest"
	"github.com/previoip/srcds-resource-manager/internal/paths"
	"github.com/previoip/srcds-resource-manager/internal/tree"
)

const Prog = "srcdsrm"

// Deps carries the collaborators of every command group.
type Deps struct {
	Session   actions.Deps
	Entries   entries.Deps
	Configure configure.Deps
	Install   install.Deps
	Logs      logs.Deps
}

// NewDeps wires the command groups to one application and manifest.
func NewDeps(app *domain.Application, docs *manifest.Manager, session *actions.Session) Deps {
	printf := app.Output.Printf
	entryDeps := entries.Deps{
		Docs:     docs,
		Prompter: app.Prompter,
		Styler:   app.Styler,
		Logger:   app.Logger,
		Session:  session,
		Printf:   printf,
	}
	return Deps{
		Session: actions.Deps{
			Printf:  printf,
			Save:    docs.Save,
			Session: session,
		},
		Entries: entryDeps,
		Configure: configure.Deps{
			Config:   app.Config,
			Open:     docs.Open,
			Current:  docs,
			Setup:    func() error { return entries.SetupConfig(entryDeps) },
			Prompter: app.Prompter,
			Styler:   app.Styler,
			Logger:   app.Logger,
			Printf:   printf,
		},
		Install: install.Deps{
			Docs:     docs,
			Config:   app.Config,
			Fetcher:  app.Fetcher,
			Ledger:   app.Ledger,
			Prompter: app.Prompter,
			Styler:   app.Styler,
			Logger:   app.Logger,
			Session:  session,
			Printf:   printf,
		}.WithArchive(),
		Logs: logs.Deps{
			LogFilePath: paths.LogFilePath,
			Printf:      printf,
			Pager:       app.Output.Pager,
			Styler:      app.Styler,
			Session:     session,
		},
	}
}

// BuildTree registers the shell's commands.
func BuildTree(deps Deps, opts ...dispatchers.Option) *dispatchers.Registry {
	opts = append([]dispatchers.Option{dispatchers.WithSummary("manage an SRCDS resource manifest")}, opts...)
	r := dispatchers.NewRegistry(Prog, opts...)
	if deps.Session.HelpText == nil {
		deps.Session.HelpText = func(path ...string) string {
			id, ok := r.Lookup(path...)
			if !ok {
				id = r.Root()
			}
			return r.HelpText(id)
		}
	}

	helpID := r.Register(dispatchers.CommandSpec{
		Name:     "help",
		Hook:     actions.Help(deps.Session),
		Summary:  "Show the command tree, or the help of one command",
		Category: dispatchers.CategorySession,
	})

	configureID := r.Register(dispatchers.CommandSpec{Name: "configure"})
	r.Register(dispatchers.CommandSpec{
		Name:     "appinfo",
		Parent:   configureID,
		Fields:   PathField,
		Hook:     configure.Appinfo(deps.Configure),
		Summary:  "Open or create the manifest at <path>",
		Category: dispatchers.CategoryConfig,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "platform",
		Parent:   configureID,
		Fields:   ValueField,
		Hook:     configure.Platform(deps.Configure),
		Summary:  "Set the target platform (windows, linux, darwin)",
		Category: dispatchers.CategoryConfig,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "target",
		Parent:   configureID,
		Fields:   PathField,
		Hook:     configure.Target(deps.Configure),
		Summary:  "Set the install target directory",
		Category: dispatchers.CategoryConfig,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "show",
		Parent:   configureID,
		Hook:     configure.Show(deps.Configure),
		Summary:  "Print the effective configuration",
		Category: dispatchers.CategoryConfig,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "set",
		Parent:   configureID,
		Fields:   KeyValueFields,
		Hook:     configure.Set(deps.Configure),
		Summary:  "Set a configuration key",
		Category: dispatchers.CategoryConfig,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "get",
		Parent:   configureID,
		Fields:   KeyField,
		Hook:     configure.Get(deps.Configure),
		Summary:  "Print the value of a configuration key",
		Category: dispatchers.CategoryConfig,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "unset",
		Parent:   configureID,
		Fields:   KeyField,
		Hook:     configure.Unset(deps.Configure),
		Summary:  "Restore the default of a configuration key",
		Category: dispatchers.CategoryConfig,
	})

	listID := r.Register(dispatchers.CommandSpec{
		Name:     "list",
		Hook:     entries.List(deps.Entries),
		Summary:  "List plugins and addons",
		Category: dispatchers.CategoryManifest,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "plugins",
		Parent:   listID,
		Hook:     entries.ListPlugins(deps.Entries),
		Optional: true,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "addons",
		Parent:   listID,
		Hook:     entries.ListAddons(deps.Entries),
		Optional: true,
	})

	newID := r.Register(dispatchers.CommandSpec{Name: "new"})
	r.Register(dispatchers.CommandSpec{
		Name:     "plugin",
		Parent:   newID,
		Hook:     entries.NewPlugin(deps.Entries),
		Summary:  "Add a plugin entry",
		Category: dispatchers.CategoryManifest,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "addon",
		Parent:   newID,
		Hook:     entries.NewAddon(deps.Entries),
		Summary:  "Add an addon entry",
		Category: dispatchers.CategoryManifest,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "resource",
		Parent:   newID,
		Fields:   IndexField,
		Hook:     entries.NewResource(deps.Entries),
		Summary:  "Add a resource to plugin <index>",
		Category: dispatchers.CategoryManifest,
	})

	editID := registerIndexed(r, "edit", "Edit the fields of", entries.EditPlugin(deps.Entries), entries.EditAddon(deps.Entries))
	r.Register(dispatchers.CommandSpec{
		Name:     "config",
		Parent:   editID,
		Hook:     entries.EditConfig(deps.Entries),
		Summary:  "Edit the server config of the manifest",
		Category: dispatchers.CategoryManifest,
	})
	viewID := registerIndexed(r, "view", "Print", entries.ViewPlugin(deps.Entries), entries.ViewAddon(deps.Entries))
	r.Register(dispatchers.CommandSpec{
		Name:     "config",
		Parent:   viewID,
		Hook:     entries.ViewConfig(deps.Entries),
		Summary:  "Print the server config of the manifest",
		Category: dispatchers.CategoryManifest,
	})
	registerIndexed(r, "exclude", "Toggle the exclude flag of", entries.ExcludePlugin(deps.Entries), entries.ExcludeAddon(deps.Entries))

	r.Register(dispatchers.CommandSpec{
		Name:     "save",
		Hook:     entries.Save(deps.Entries),
		Summary:  "Write the manifest to its appinfo path",
		Category: dispatchers.CategoryManifest,
	})

	installID := r.Register(dispatchers.CommandSpec{
		Name:     "install",
		Hook:     install.Install(deps.Install),
		Summary:  "Download and install included entries",
		Category: dispatchers.CategoryInstall,
	})
	for _, c := range []struct {
		name string
		hook dispatchers.HookFunc
	}{
		{"all", install.All(deps.Install)},
		{"plugins", install.Plugins(deps.Install)},
		{"addons", install.Addons(deps.Install)},
	} {
		r.Register(dispatchers.CommandSpec{Name: c.name, Parent: installID, Hook: c.hook, Optional: true})
	}

	historyID := r.Register(dispatchers.CommandSpec{
		Name:     "history",
		Hook:     install.History(deps.Install),
		Summary:  "List recent install runs",
		Category: dispatchers.CategoryInstall,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "clear",
		Parent:   historyID,
		Hook:     install.Clear(deps.Install),
		Optional: true,
		Summary:  "Forget every recorded install run",
		Category: dispatchers.CategoryInstall,
	})

	logsID := r.Register(dispatchers.CommandSpec{
		Name:     "logs",
		Hook:     logs.View(deps.Logs),
		Summary:  "Show the end of the log file",
		Category: dispatchers.CategorySession,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "clear",
		Parent:   logsID,
		Hook:     logs.Clear(deps.Logs),
		Optional: true,
		Summary:  "Empty the log file",
		Category: dispatchers.CategorySession,
	})

	r.Register(dispatchers.CommandSpec{
		Name:     "exit",
		Hook:     actions.Exit(deps.Session),
		Summary:  "Save the manifest and leave",
		Category: dispatchers.CategorySession,
	})

	// "help <command>" for every top-level command
	for _, name := range r.Complete(nil, "") {
		if name == "help" {
			continue
		}
		r.Register(dispatchers.CommandSpec{
			Name:     name,
			Parent:   helpID,
			Hook:     actions.HelpFor(deps.Session, name),
			Optional: true,
		})
	}

	return r
}

// registerIndexed adds "<verb> plugin <index>" and "<verb> addon <index>"
// and returns the verb node.
func registerIndexed(r *dispatchers.Registry, verb, summary string, plugin, addon dispatchers.Hook) tree.ID {
	parent := r.Register(dispatchers.CommandSpec{Name: verb})
	r.Register(dispatchers.CommandSpec{
		Name:     "plugin",
		Parent:   parent,
		Fields:   IndexField,
		Hook:     plugin,
		Summary:  summary + " plugin <index>",
		Category: dispatchers.CategoryManifest,
	})
	r.Register(dispatchers.CommandSpec{
		Name:     "addon",
		Parent:   parent,
		Fields:   IndexField,
		Hook:     addon,
		Summary:  summary + " addon <index>",
		Category: dispatchers.CategoryManifest,
	})
	return parent
}
