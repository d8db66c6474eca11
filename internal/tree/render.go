package tree

import "strings"

const (
	glyphLeaf     = "□ "
	glyphInterior = "■ "

	guideOpen   = " ┆   "
	guideClosed = "     "

	connOnly   = "└───▸"
	connFirst  = "└┬──▸"
	connLast   = " └──▸"
	connMiddle = " ├──▸"
)

type renderConfig struct {
	maxDepth int
	limited  bool
}

type RenderOption func(*renderConfig)

// MaxDepth stops descending once a node's absolute depth exceeds d-1, so
// MaxDepth(0) draws only the starting node of a root render.
func MaxDepth(d int) RenderOption {
	return func(c *renderConfig) {
		c.maxDepth = d
		c.limited = true
	}
}

// Render draws the subtree at id, one line per node, using label for the
// text after the glyph.
func (t *Tree[T]) Render(id ID, label func(ID) string, opts ...RenderOption) string {
	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if label == nil {
		label = t.Name
	}

	var b strings.Builder
	t.render(&b, id, label, cfg)
	return b.String()
}

func (t *Tree[T]) render(b *strings.Builder, id ID, label func(ID) string, cfg renderConfig) {
	if t.IsLeaf(id) {
		b.WriteString(glyphLeaf)
	} else {
		b.WriteString(glyphInterior)
	}
	b.WriteString(label(id))
	b.WriteByte('\n')

	if cfg.limited && t.Depth(id) > cfg.maxDepth-1 {
		return
	}

	for child := range t.Children(id) {
		for _, a := range t.Ancestors(child) {
			if t.IsLast(a) {
				b.WriteString(guideClosed)
			} else {
				b.WriteString(guideOpen)
			}
		}
		b.WriteString(connector(t.IsFirst(child), t.IsLast(child)))
		t.render(b, child, label, cfg)
	}
}

func connector(first, last bool) string {
	switch {
	case first && last:
		return connOnly
	case first:
		return connFirst
	case last:
		return connLast
	default:
		return connMiddle
	}
}
