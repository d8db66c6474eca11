package cli

// Argument schemas shared by several commands. Each name is the key the
// hook reads from its namespace.
var (
	IndexField     = []string{"index"}
	PathField      = []string{"path"}
	KeyField       = []string{"key"}
	ValueField     = []string{"value"}
	KeyValueFields = []string{"key", "value"}
)
