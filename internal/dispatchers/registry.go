package dispatchers

import (
	"errors"
	"strings"

	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/log"
	"github.com/previoip/srcds-resource-manager/internal/tree"
	"github.com/previoip/srcds-resource-manager/internal/usage"
)

// Registry owns the command tree and dispatches token lists through it.
// Registration is expected to finish before the first Dispatch.
type Registry struct {
	prog     string
	summary  string
	tree     *tree.Tree[Command]
	logger   domain.Logger
	warnings []*usage.Error
}

type Option func(*Registry)

func WithLogger(l domain.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSummary sets the one-line description shown at the top of root help.
func WithSummary(s string) Option {
	return func(r *Registry) {
		r.summary = s
	}
}

// NewRegistry creates a registry whose root command is named prog and takes
// no arguments.
func NewRegistry(prog string, opts ...Option) *Registry {
	r := &Registry{
		prog:   prog,
		tree:   tree.New(prog, Command{}),
		logger: log.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Root() tree.ID {
	return r.tree.Root()
}

// Command returns the payload of id.
func (r *Registry) Command(id tree.ID) Command {
	return r.tree.Value(id)
}

// Register adds a command under spec.Parent.
//
// If the parent already has a child with the same name, or the parent does
// not exist, nothing is allocated, a warning is recorded and tree.None is
// returned.
func (r *Registry) Register(spec CommandSpec) tree.ID {
	cmd := Command{
		Fields:   append([]string(nil), spec.Fields...),
		Hook:     spec.Hook,
		Optional: spec.Optional,
		Summary:  spec.Summary,
		Category: spec.Category,
	}

	id, err := r.tree.Spawn(spec.Parent, spec.Name, cmd)
	if err == nil {
		return id
	}

	var collision *tree.CollisionError
	var warning *usage.Error
	switch {
	case errors.As(err, &collision):
		warning = usage.NameCollision(r.displayName(spec.Parent), spec.Name)
	default:
		warning = usage.UnknownParent(spec.Name, int(spec.Parent), err)
	}
	r.warnings = append(r.warnings, warning)
	r.logger.Warn("register: %s", warning.Message)
	return tree.None
}

// Warnings returns the problems recorded during registration.
func (r *Registry) Warnings() []*usage.Error {
	return r.warnings
}

// Lookup resolves a path of command names starting at the root. Argument
// tokens are not allowed in path.
func (r *Registry) Lookup(path ...string) (tree.ID, bool) {
	id := r.tree.Root()
	for _, name := range path {
		next, ok := r.tree.Child(id, name)
		if !ok {
			return tree.None, false
		}
		id = next
	}
	return id, true
}

// ChildrenOptional reports whether dispatch may stop at id without
// selecting a child. Leaves report false.
func (r *Registry) ChildrenOptional(id tree.ID) bool {
	if r.tree.IsLeaf(id) {
		return false
	}
	for c := range r.tree.Children(id) {
		if !r.tree.Value(c).Optional {
			return false
		}
	}
	return true
}

func (r *Registry) displayName(id tree.ID) string {
	if id == r.tree.Root() {
		return r.prog
	}
	if id < 0 {
		return "<none>"
	}
	return strings.Join(r.tree.Path(id), " ")
}
