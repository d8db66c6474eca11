package entries

import (
	"github.com/previoip/srcds-resource-manager/internal/actions"
	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/manifest"
)

// Documents is the open manifest and the file it belongs to.
type Documents interface {
	Doc() *manifest.Manifest
	Path() string
	Save() error
}

type Deps struct {
	Docs     Documents
	Prompter domain.Prompter
	Styler   domain.Styler
	Logger   domain.Logger
	Session  *actions.Session
	Printf   func(string, ...any) (int, error)
}
