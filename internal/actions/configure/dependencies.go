package configure

import (
	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/manifest"
)

// Document is the manifest open before an appinfo switch.
type Document interface {
	Path() string
	Save() error
}

type Deps struct {
	Config domain.ConfigProvider
	// Open switches the shell to the manifest at path.
	Open    func(path string) (*manifest.Manifest, error)
	Current Document
	// Setup runs after Open started a new manifest.
	Setup    func() error
	Prompter domain.Prompter
	Styler   domain.Styler
	Logger   domain.Logger
	Printf   func(string, ...any) (int, error)
}
