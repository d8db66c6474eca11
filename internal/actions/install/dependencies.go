package install

import (
	"github.com/previoip/srcds-resource-manager/internal/actions"
	"github.com/previoip/srcds-resource-manager/internal/archive"
	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/manifest"
)

// Documents yields the manifest being installed.
type Documents interface {
	Doc() *manifest.Manifest
}

type Deps struct {
	Docs     Documents
	Config   domain.ConfigProvider
	Fetcher  domain.Fetcher
	Ledger   domain.Ledger
	Prompter domain.Prompter
	Styler   domain.Styler
	Logger   domain.Logger
	Session  *actions.Session
	Printf   func(string, ...any) (int, error)

	Extract func(path, dst string) ([]string, error)
	Copy    func(src, dst string) error
}

// WithArchive fills in the archive helpers when the caller left them nil.
func (d Deps) WithArchive() Deps {
	if d.Extract == nil {
		d.Extract = archive.Extract
	}
	if d.Copy == nil {
		d.Copy = archive.Copy
	}
	return d
}
