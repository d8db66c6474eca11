package dispatchers

import (
	"context"

	"github.com/previoip/srcds-resource-manager/internal/tree"
)

// Hook is the callback bound to a command.
//
// ns is nil for commands that take no arguments.
type Hook interface {
	Invoke(ctx context.Context, ns *Namespace) error
}

// HookFunc adapts a function to Hook.
type HookFunc func(ctx context.Context, ns *Namespace) error

func (f HookFunc) Invoke(ctx context.Context, ns *Namespace) error {
	return f(ctx, ns)
}

// Namespace carries the argument tokens consumed by one command, keyed by
// the command's field names.
type Namespace struct {
	Node   tree.ID
	Path   []string
	Fields []string
	Values []string
}

// Get returns the value bound to field, or "" when the field is unknown.
func (ns *Namespace) Get(field string) string {
	if ns == nil {
		return ""
	}
	for i, f := range ns.Fields {
		if f == field {
			return ns.Values[i]
		}
	}
	return ""
}

// Command is the payload of a node in the command tree.
type Command struct {
	// Fields names the positional arguments in order; its length is the arity.
	Fields   []string
	Hook     Hook
	Optional bool
	Summary  string
	Category CommandCategory
}

// Arity is the number of tokens the command consumes before child dispatch.
func (c Command) Arity() int {
	return len(c.Fields)
}
