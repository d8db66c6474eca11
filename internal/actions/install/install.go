package install

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/previoip/srcds-resource-manager/internal/archive"
	"github.com/previoip/srcds-resource-manager/internal/dispatchers"
	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/fetch"
	"github.com/previoip/srcds-resource-manager/internal/manifest"
)

// ErrNoTarget is returned when neither target_dir nor the manifest baseDir
// names an install directory.
var ErrNoTarget = errors.New("no install target: use 'configure target <path>' or set baseDir in the manifest")

const (
	scopePlugins = 1 << iota
	scopeAddons
)

// Install queues an install of every included entry; a following all,
// plugins or addons token picks the scope.
func Install(deps Deps) dispatchers.HookFunc {
	return queue(deps, scopePlugins|scopeAddons)
}

func All(deps Deps) dispatchers.HookFunc {
	return queue(deps, scopePlugins|scopeAddons)
}

func Plugins(deps Deps) dispatchers.HookFunc {
	return queue(deps, scopePlugins)
}

func Addons(deps Deps) dispatchers.HookFunc {
	return queue(deps, scopeAddons)
}

func queue(deps Deps, scope int) dispatchers.HookFunc {
	return func(context.Context, *dispatchers.Namespace) error {
		deps.Session.Defer(func(ctx context.Context) error {
			return run(ctx, deps.WithArchive(), scope)
		})
		return nil
	}
}

type installer struct {
	deps        Deps
	runID       string
	platform    string
	target      string
	downloadDir string
	workshopDir string

	installed, skipped, failed int
}

func run(ctx context.Context, deps Deps, scope int) error {
	doc := deps.Docs.Doc()

	platform, _ := deps.Config.Get("platform")
	downloadDir, _ := deps.Config.Get("download_dir")
	target, _ := deps.Config.Get("target_dir")
	if target == "" {
		target = doc.Config.BaseDir
	}
	if target == "" {
		return ErrNoTarget
	}

	workshopDir := doc.Config.WorkshopDir
	if !filepath.IsAbs(workshopDir) {
		workshopDir = filepath.Join(target, workshopDir)
	}

	r, err := deps.Ledger.BeginRun(platform)
	if err != nil {
		return fmt.Errorf("begin install run: %w", err)
	}
	deps.Logger.Info("install: run %s started (platform=%s, target=%s)", r.ID, platform, target)

	in := &installer{
		deps:        deps,
		runID:       r.ID,
		platform:    platform,
		target:      target,
		downloadDir: downloadDir,
		workshopDir: workshopDir,
	}

	if scope&scopePlugins != 0 {
		for i := range doc.Plugins {
			p := &doc.Plugins[i]
			if p.Exclude {
				continue
			}
			for _, res := range p.ResourcesFor(platform) {
				if ctx.Err() != nil {
					break
				}
				in.resource(ctx, p, res)
			}
		}
	}
	if scope&scopeAddons != 0 {
		for _, a := range doc.Addons {
			if a.Exclude || ctx.Err() != nil {
				continue
			}
			in.addon(ctx, a)
		}
	}

	status := in.status(ctx)
	if err := deps.Ledger.FinishRun(r.ID, status); err != nil {
		deps.Logger.Error("install: finish run %s: %v", r.ID, err)
	}
	deps.Logger.Info("install: run %s %s (installed=%d skipped=%d failed=%d)",
		r.ID, status, in.installed, in.skipped, in.failed)

	_, _ = deps.Printf("%s %d installed, %d skipped, %d failed %s\n",
		statusLabel(deps.Styler, status), in.installed, in.skipped, in.failed,
		deps.Styler.Muted("(run "+shortID(r.ID)+")"))

	return ctx.Err()
}

func (in *installer) resource(ctx context.Context, p *manifest.Plugin, res manifest.Resource) {
	file := domain.InstalledFile{
		RunID:    in.runID,
		EntityID: res.ID,
		Kind:     domain.KindResource,
		Name:     p.Name + "/" + res.Name,
		URL:      res.URL,
	}
	if res.URL == "" {
		in.record(file, domain.FileSkipped, errors.New("no url"))
		return
	}

	dl, err := in.deps.Fetcher.Download(ctx, res.URL, in.downloadDir)
	file.SizeBytes = dl.Size
	if err != nil {
		in.record(file, domain.FileFailed, err)
		return
	}

	dir := filepath.Join(in.target, p.Rel, res.Rel)
	file.Path, err = in.place(dl, dir, res.TargetPath)
	if err != nil {
		in.record(file, domain.FileFailed, err)
		return
	}
	in.record(file, domain.FileInstalled, nil)
}

func (in *installer) addon(ctx context.Context, a manifest.Addon) {
	file := domain.InstalledFile{
		RunID:    in.runID,
		EntityID: a.ID,
		Kind:     domain.KindAddon,
		Name:     a.Name,
		URL:      a.URL,
	}
	if a.URL == "" {
		in.record(file, domain.FileSkipped, errors.New("no url"))
		return
	}

	if _, err := fetch.ParseWorkshopIDs(a.URL); err == nil {
		results, err := in.deps.Fetcher.Workshop(ctx, a.URL, in.workshopDir)
		for _, dl := range results {
			f := file
			f.Name = a.Name + "/" + dl.Filename
			f.URL = dl.URL
			f.Path = dl.Path
			f.SizeBytes = dl.Size
			in.record(f, domain.FileInstalled, nil)
		}
		if err != nil {
			in.record(file, domain.FileFailed, err)
		}
		return
	}

	dl, err := in.deps.Fetcher.Download(ctx, a.URL, in.downloadDir)
	file.SizeBytes = dl.Size
	if err != nil {
		in.record(file, domain.FileFailed, err)
		return
	}
	file.Path, err = in.place(dl, in.workshopDir, "")
	if err != nil {
		in.record(file, domain.FileFailed, err)
		return
	}
	in.record(file, domain.FileInstalled, nil)
}

// place unpacks an archive into dir, or copies a plain file to
// dir/targetPath (the downloaded name when targetPath is empty).
func (in *installer) place(dl domain.DownloadResult, dir, targetPath string) (string, error) {
	if archive.Detect(dl.Path) != archive.KindNone {
		files, err := in.deps.Extract(dl.Path, dir)
		if err != nil {
			return dir, fmt.Errorf("extract %s: %w", dl.Filename, err)
		}
		in.deps.Logger.Debug("install: %s extracted %d file(s) into %s", dl.Filename, len(files), dir)
		return dir, nil
	}

	name := targetPath
	if name == "" {
		name = dl.Filename
	}
	dst := filepath.Join(dir, name)
	if err := in.deps.Copy(dl.Path, dst); err != nil {
		return dst, fmt.Errorf("copy %s: %w", dl.Filename, err)
	}
	return dst, nil
}

func (in *installer) record(f domain.InstalledFile, status domain.FileStatus, err error) {
	f.Status = status
	styler := in.deps.Styler
	switch status {
	case domain.FileInstalled:
		in.installed++
		_, _ = in.deps.Printf("  %s %s\n", styler.Success(">"), f.Path)
	case domain.FileSkipped:
		in.skipped++
		_, _ = in.deps.Printf("  %s %s: %v\n", styler.Muted("-"), f.Name, err)
	case domain.FileFailed:
		in.failed++
		_, _ = in.deps.Printf("  %s %s: %v\n", styler.Error("x"), f.Name, err)
		in.deps.Logger.Error("install: %s: %v", f.Name, err)
	}
	if err != nil {
		f.Error = err.Error()
	}
	if lerr := in.deps.Ledger.RecordFile(f); lerr != nil {
		in.deps.Logger.Error("install: record %s: %v", f.Name, lerr)
	}
}

func (in *installer) status(ctx context.Context) domain.RunStatus {
	switch {
	case ctx.Err() != nil:
		return domain.RunCanceled
	case in.failed > 0 && in.installed == 0:
		return domain.RunFailed
	case in.failed > 0:
		return domain.RunPartial
	default:
		return domain.RunComplete
	}
}

func statusLabel(s domain.Styler, status domain.RunStatus) string {
	text := "install " + string(status) + ":"
	switch status {
	case domain.RunComplete:
		return s.Success(text)
	case domain.RunPartial, domain.RunCanceled:
		return s.Warning(text)
	default:
		return s.Error(text)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
