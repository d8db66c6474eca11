package dispatchers

import "github.com/previoip/srcds-resource-manager/internal/tree"

// CommandSpec describes a command to register.
type CommandSpec struct {
	Name string

	// Parent is the node to register under. The zero value is the root.
	Parent tree.ID

	Fields   []string
	Hook     Hook
	Optional bool
	Summary  string
	Category CommandCategory
}
