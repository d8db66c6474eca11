package actions

import (
	"fmt"

	"github.com/previoip/srcds-resource-manager/internal/app"
)

// Deps are the collaborators of the session-level hooks.
type Deps struct {
	Printf   func(format string, a ...any) (n int, err error)
	Version  func() string
	// HelpText renders help for the command at path, the root when empty.
	HelpText func(path ...string) string
	// Save writes the open manifest; nil skips saving on exit.
	Save    func() error
	Session *Session
}

func defaultDeps() Deps {
	return Deps{
		Printf:  fmt.Printf,
		Version: func() string { return app.Version },
	}
}
