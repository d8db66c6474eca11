package logs

import (
	"os"

	"github.com/previoip/srcds-resource-manager/internal/actions"
	"github.com/previoip/srcds-resource-manager/internal/domain"
)

type Deps struct {
	LogFilePath func() string
	Printf      func(string, ...any) (int, error)
	// Pager shows long output; nil prints it directly.
	Pager     func(content string)
	ReadFile  func(string) ([]byte, error)
	WriteFile func(string, []byte, os.FileMode) error
	Stat      func(string) (os.FileInfo, error)
	Styler    domain.Styler
	Session   *actions.Session
	Limit     int
}

// WithFiles fills the file operations with the os package ones.
func (d Deps) WithFiles() Deps {
	if d.ReadFile == nil {
		d.ReadFile = os.ReadFile
	}
	if d.WriteFile == nil {
		d.WriteFile = os.WriteFile
	}
	if d.Stat == nil {
		d.Stat = os.Stat
	}
	return d
}
