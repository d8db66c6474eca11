package configure

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/previoip/srcds-resource-manager/internal/dispatchers"
	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/manifest"
	"github.com/previoip/srcds-resource-manager/internal/usage"
)

// Platforms are the values accepted for the platform key.
var Platforms = []string{"windows", "linux", "darwin"}

// Appinfo opens (or starts) the manifest at the path argument and remembers it.
func Appinfo(deps Deps) dispatchers.HookFunc {
	return func(_ context.Context, ns *dispatchers.Namespace) error {
		return setValue(deps, "appinfo", ns.Get("path"))
	}
}

func Platform(deps Deps) dispatchers.HookFunc {
	return func(_ context.Context, ns *dispatchers.Namespace) error {
		return setValue(deps, "platform", ns.Get("value"))
	}
}

// Target sets the directory resources are installed into.
func Target(deps Deps) dispatchers.HookFunc {
	return func(_ context.Context, ns *dispatchers.Namespace) error {
		return setValue(deps, "target_dir", ns.Get("path"))
	}
}

// Set assigns any known configuration key.
func Set(deps Deps) dispatchers.HookFunc {
	return func(_ context.Context, ns *dispatchers.Namespace) error {
		key := ns.Get("key")
		if !domain.IsValidConfigKey(key) {
			return usage.InvalidConfigKey(key)
		}
		return setValue(deps, key, ns.Get("value"))
	}
}

func setValue(deps Deps, key, value string) error {
	switch key {
	case "appinfo":
		if err := leaveCurrent(deps); err != nil {
			return err
		}
		doc, err := deps.Open(value)
		if err != nil {
			return err
		}
		value = manifest.JSONPath(value)
		if err := deps.Config.Set(key, value); err != nil {
			return err
		}
		_, _ = deps.Printf("using appinfo: %s\n", value)
		if !doc.IsNew {
			return nil
		}
		_, _ = deps.Printf("%s\n", deps.Styler.Muted("no manifest found, starting a new one"))
		if deps.Setup != nil {
			return deps.Setup()
		}
		return nil

	case "platform":
		value = strings.ToLower(value)
		if !slices.Contains(Platforms, value) {
			return usage.InvalidArgument("platform", value, "expected one of "+strings.Join(Platforms, ", "))
		}
		if err := deps.Config.Set(key, value); err != nil {
			return err
		}
		_, _ = deps.Printf("using platform: %s\n", value)
		return nil

	case "target_dir", "download_dir":
		abs, err := filepath.Abs(value)
		if err != nil {
			return usage.InvalidArgument("path", value, err.Error())
		}
		value = abs
	}

	if err := deps.Config.Set(key, value); err != nil {
		return err
	}
	deps.Logger.Info("configure: %s=%s", key, value)
	_, _ = deps.Printf("updated %s=%s\n", key, value)
	return nil
}

// leaveCurrent offers to save the open manifest before Open replaces it.
func leaveCurrent(deps Deps) error {
	if deps.Current == nil || deps.Prompter == nil {
		return nil
	}
	path := deps.Current.Path()
	if path == "" {
		return nil
	}
	ok, err := deps.Prompter.Confirm(fmt.Sprintf("save %s before switching?", path))
	if err != nil {
		return err
	}
	if !ok {
		deps.Logger.Info("configure: leaving %s unsaved", path)
		return nil
	}
	if err := deps.Current.Save(); err != nil {
		return err
	}
	_, _ = deps.Printf("saved appinfo: %s\n", path)
	return nil
}

// Show prints the effective configuration grouped by section.
func Show(deps Deps) dispatchers.HookFunc {
	return func(context.Context, *dispatchers.Namespace) error {
		return show(deps)
	}
}

func show(deps Deps) error {
	values, err := deps.Config.GetAll()
	if err != nil {
		return err
	}

	bySection := domain.ConfigKeysBySection()
	first := true
	for _, section := range domain.ConfigSections() {
		var lines []string
		for _, key := range bySection[section] {
			v := values[key.Name]
			if key.HideIfEmpty && v == "" {
				continue
			}
			lines = append(lines, "  "+key.Name+"="+v)
		}
		if len(lines) == 0 {
			continue
		}
		if !first {
			_, _ = deps.Printf("\n")
		}
		first = false
		_, _ = deps.Printf("%s\n", deps.Styler.Header(section))
		for _, l := range lines {
			_, _ = deps.Printf("%s\n", l)
		}
	}
	return nil
}

// Get prints the effective value of one key.
func Get(deps Deps) dispatchers.HookFunc {
	return func(_ context.Context, ns *dispatchers.Namespace) error {
		key := ns.Get("key")
		if !domain.IsValidConfigKey(key) {
			return usage.InvalidConfigKey(key)
		}
		value, _ := deps.Config.Get(key)
		_, _ = deps.Printf("%s\n", value)
		return nil
	}
}

// Unset removes a key from the config file so its default applies again.
func Unset(deps Deps) dispatchers.HookFunc {
	return func(_ context.Context, ns *dispatchers.Namespace) error {
		key := ns.Get("key")
		if !domain.IsValidConfigKey(key) {
			return usage.InvalidConfigKey(key)
		}
		if err := deps.Config.Unset(key); err != nil {
			return err
		}
		deps.Logger.Info("configure: unset %s", key)

		def, _ := deps.Config.Get(key)
		_, _ = deps.Printf("unset %s %s\n", key, deps.Styler.Muted("(now "+def+")"))
		return nil
	}
}
