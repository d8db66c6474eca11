package dispatchers

import "strings"

// Complete returns the command names that may follow tokens and start with
// partial. It mirrors the dispatch walk without running hooks, so it returns
// nothing while argument slots are still being filled.
func (r *Registry) Complete(tokens []string, partial string) []string {
	id := r.tree.Root()
	rest := tokens

	for {
		arity := r.tree.Value(id).Arity()
		if len(rest) < arity {
			return nil
		}
		rest = rest[arity:]
		if len(rest) == 0 {
			break
		}
		next, ok := r.tree.Child(id, rest[0])
		if !ok {
			return nil
		}
		id = next
		rest = rest[1:]
	}

	var out []string
	for _, name := range r.tree.ChildNames(id) {
		if strings.HasPrefix(name, partial) {
			out = append(out, name)
		}
	}
	return out
}
