// Package tree implements an ordered, named tree stored as an arena of nodes.
//
// Nodes are addressed by ID. Children keep insertion order and names are
// unique among siblings. A node never changes parent once attached.
package tree

import (
	"errors"
	"fmt"
	"iter"
)

// ID addresses a node inside a Tree.
type ID int

// None is the parent of a node that has not been attached.
const None ID = -1

var (
	ErrReparent    = errors.New("tree: node already has a parent")
	ErrUnknownNode = errors.New("tree: unknown node")
)

// CollisionError is returned when a child name is already taken under a parent.
// The existing child is left in place.
type CollisionError struct {
	Parent   string
	Name     string
	Existing ID
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("tree: %q already has a child named %q", e.Parent, e.Name)
}

type node[T any] struct {
	name     string
	parent   ID
	children []ID
	byName   map[string]ID
	value    T
}

// Tree is an arena of nodes rooted at Root.
type Tree[T any] struct {
	nodes []node[T]
	root  ID
}

// New creates a tree with a single root node.
func New[T any](rootName string, value T) *Tree[T] {
	t := &Tree[T]{}
	t.root = t.NewDetached(rootName, value)
	return t
}

func (t *Tree[T]) Root() ID {
	return t.root
}

// NewDetached allocates a node with no parent. It takes no part in the tree
// until passed to Attach.
func (t *Tree[T]) NewDetached(name string, value T) ID {
	t.nodes = append(t.nodes, node[T]{
		name:   name,
		parent: None,
		value:  value,
	})
	return ID(len(t.nodes) - 1)
}

// Spawn creates a child of parent named name.
func (t *Tree[T]) Spawn(parent ID, name string, value T) (ID, error) {
	if !t.valid(parent) {
		return None, ErrUnknownNode
	}
	if existing, ok := t.nodes[parent].byName[name]; ok {
		return None, &CollisionError{Parent: t.nodes[parent].name, Name: name, Existing: existing}
	}
	id := t.NewDetached(name, value)
	t.link(parent, id)
	return id, nil
}

// Attach appends a detached node to parent's children.
//
// On a name collision the existing child is kept and child stays detached.
func (t *Tree[T]) Attach(parent, child ID) error {
	if !t.valid(parent) || !t.valid(child) {
		return ErrUnknownNode
	}
	if t.nodes[child].parent != None || child == t.root || parent == child {
		return ErrReparent
	}
	name := t.nodes[child].name
	if existing, ok := t.nodes[parent].byName[name]; ok {
		return &CollisionError{Parent: t.nodes[parent].name, Name: name, Existing: existing}
	}
	t.link(parent, child)
	return nil
}

func (t *Tree[T]) link(parent, child ID) {
	p := &t.nodes[parent]
	if p.byName == nil {
		p.byName = make(map[string]ID)
	}
	p.children = append(p.children, child)
	p.byName[t.nodes[child].name] = child
	t.nodes[child].parent = parent
}

func (t *Tree[T]) valid(id ID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

func (t *Tree[T]) Name(id ID) string {
	return t.nodes[id].name
}

func (t *Tree[T]) Parent(id ID) ID {
	return t.nodes[id].parent
}

func (t *Tree[T]) Value(id ID) T {
	return t.nodes[id].value
}

// Children yields the direct children of id in insertion order.
func (t *Tree[T]) Children(id ID) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for _, c := range t.nodes[id].children {
			if !yield(c) {
				return
			}
		}
	}
}

// ChildNames returns the names of id's children in insertion order.
func (t *Tree[T]) ChildNames(id ID) []string {
	names := make([]string, 0, len(t.nodes[id].children))
	for c := range t.Children(id) {
		names = append(names, t.nodes[c].name)
	}
	return names
}

// Child looks up a direct child by exact name.
func (t *Tree[T]) Child(id ID, name string) (ID, bool) {
	c, ok := t.nodes[id].byName[name]
	return c, ok
}

func (t *Tree[T]) NumChildren(id ID) int {
	return len(t.nodes[id].children)
}

// Depth is the number of edges between id and its topmost ancestor.
func (t *Tree[T]) Depth(id ID) int {
	d := 0
	for p := t.nodes[id].parent; p != None; p = t.nodes[p].parent {
		d++
	}
	return d
}

// AtIndex is the position of id among its siblings; 0 for a parentless node.
func (t *Tree[T]) AtIndex(id ID) int {
	p := t.nodes[id].parent
	if p == None {
		return 0
	}
	for i, c := range t.nodes[p].children {
		if c == id {
			return i
		}
	}
	return 0
}

func (t *Tree[T]) IsLeaf(id ID) bool {
	return len(t.nodes[id].children) == 0
}

func (t *Tree[T]) IsRoot(id ID) bool {
	return t.nodes[id].parent == None
}

// IsFirst reports whether id is the first of its siblings. A parentless node
// counts as first.
func (t *Tree[T]) IsFirst(id ID) bool {
	return t.AtIndex(id) == 0
}

// IsLast reports whether id is the last of its siblings. A parentless node is
// never last.
func (t *Tree[T]) IsLast(id ID) bool {
	p := t.nodes[id].parent
	if p == None {
		return false
	}
	return t.AtIndex(id) == len(t.nodes[p].children)-1
}

// Top walks parent links up to the parentless ancestor of id.
func (t *Tree[T]) Top(id ID) ID {
	for t.nodes[id].parent != None {
		id = t.nodes[id].parent
	}
	return id
}

// Ancestors returns the ancestors of id strictly between the top node and id,
// outermost first.
func (t *Tree[T]) Ancestors(id ID) []ID {
	var chain []ID
	for p := t.nodes[id].parent; p != None && t.nodes[p].parent != None; p = t.nodes[p].parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Path returns the names from just below the top node down to id.
func (t *Tree[T]) Path(id ID) []string {
	if t.IsRoot(id) {
		return nil
	}
	chain := t.Ancestors(id)
	names := make([]string, 0, len(chain)+1)
	for _, a := range chain {
		names = append(names, t.nodes[a].name)
	}
	return append(names, t.nodes[id].name)
}
