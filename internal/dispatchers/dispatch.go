package dispatchers

import (
	"context"
	"errors"
	"strings"

	"github.com/previoip/srcds-resource-manager/internal/tree"
	"github.com/previoip/srcds-resource-manager/internal/usage"
)

const defaultSuggestionsCount = 3

// Dispatch walks the command tree from the root, consuming tokens.
//
// Hooks run in root-to-leaf order as their nodes are reached. A failure
// stops the walk; hooks that already ran are not undone.
func (r *Registry) Dispatch(ctx context.Context, tokens []string) error {
	return r.Invoke(ctx, r.tree.Top(r.tree.Root()), tokens)
}

// Invoke runs the dispatch walk starting at id.
func (r *Registry) Invoke(ctx context.Context, id tree.ID, tokens []string) error {
	rest := append([]string(nil), tokens...)

	for {
		cmd := r.tree.Value(id)

		if arity := cmd.Arity(); arity > 0 {
			if len(rest) < arity {
				return usage.Arity(r.tree.Name(id), arity, len(rest), r.Usage(id))
			}
			ns := &Namespace{
				Node:   id,
				Path:   r.tree.Path(id),
				Fields: cmd.Fields,
				Values: rest[:arity:arity],
			}
			rest = rest[arity:]
			if err := r.call(ctx, id, cmd, ns); err != nil {
				return err
			}
		} else if err := r.call(ctx, id, cmd, nil); err != nil {
			return err
		}

		if r.tree.IsLeaf(id) {
			if len(rest) > 0 {
				r.logger.Debug("dispatch: %s ignores extra tokens %q", r.displayName(id), rest)
			}
			return nil
		}

		if len(rest) == 0 {
			if r.ChildrenOptional(id) {
				return nil
			}
			return usage.Incomplete(r.tree.Name(id), r.tree.ChildNames(id), r.Usage(id))
		}

		tok := rest[0]
		rest = rest[1:]

		next, ok := r.tree.Child(id, tok)
		if !ok {
			names := r.tree.ChildNames(id)
			return usage.NoMatch(tok, names, r.Usage(id), FindSimilarCommands(tok, names, defaultSuggestionsCount)...)
		}
		id = next
	}
}

func (r *Registry) call(ctx context.Context, id tree.ID, cmd Command, ns *Namespace) error {
	if cmd.Hook == nil {
		r.logger.Debug("dispatch: %s has no hook", r.displayName(id))
		return nil
	}

	err := cmd.Hook.Invoke(ctx, ns)
	if err == nil {
		return nil
	}

	var ue *usage.Error
	if errors.As(err, &ue) {
		return err
	}
	return usage.Hook(r.displayName(id), err)
}

// Usage renders the usage line of id: its command path, its fields and its
// possible continuations.
func (r *Registry) Usage(id tree.ID) string {
	var b strings.Builder
	b.WriteString(r.displayName(id))

	for _, f := range r.tree.Value(id).Fields {
		b.WriteString(" <")
		b.WriteString(f)
		b.WriteString(">")
	}

	if !r.tree.IsLeaf(id) {
		alts := strings.Join(r.tree.ChildNames(id), " | ")
		if r.ChildrenOptional(id) {
			b.WriteString(" [" + alts + "]")
		} else {
			b.WriteString(" ( " + alts + " )")
		}
	}
	return b.String()
}

// Label is the single-node form used in tree rendering, e.g. "appinfo <path>"
// or "[plugins]" for optional commands.
func (r *Registry) Label(id tree.ID) string {
	cmd := r.tree.Value(id)

	var b strings.Builder
	if cmd.Optional {
		b.WriteByte('[')
	}
	b.WriteString(r.tree.Name(id))
	if cmd.Arity() > 0 {
		b.WriteString(" <" + strings.Join(cmd.Fields, "> <") + ">")
	}
	if cmd.Optional {
		b.WriteByte(']')
	}
	return b.String()
}

// Render draws the command tree below id using Label for each node.
func (r *Registry) Render(id tree.ID, opts ...tree.RenderOption) string {
	return r.tree.Render(id, r.Label, opts...)
}
