package dispatchers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/previoip/srcds-resource-manager/internal/tree"
	"github.com/previoip/srcds-resource-manager/internal/ui/style"
)

// formatUsage styles the usage line with the command in Info color and the rest muted.
func formatUsage(usage string) string {
	cmdEnd := len(usage)
	for i, c := range usage {
		if c == '[' || c == '<' || c == '(' {
			cmdEnd = i
			break
		}
	}

	cmd := strings.TrimSpace(usage[:cmdEnd])
	rest := ""
	if cmdEnd < len(usage) {
		rest = usage[cmdEnd:]
	}

	if rest == "" {
		return style.Info(cmd)
	}
	return style.Info(cmd) + " " + style.Muted(rest)
}

// collectCommands gathers every node below id that carries a summary, in
// tree order.
func (r *Registry) collectCommands(id tree.ID, out *[]tree.ID) {
	for child := range r.tree.Children(id) {
		if r.tree.Value(child).Summary != "" {
			*out = append(*out, child)
		}
		r.collectCommands(child, out)
	}
}

func (r *Registry) commandLine(id tree.ID) string {
	var b strings.Builder
	for i, a := range append(r.tree.Ancestors(id), id) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.Label(a))
	}
	return b.String()
}

// HelpText renders help for id: its usage, the command tree below it and a
// categorized command list.
func (r *Registry) HelpText(id tree.ID) string {
	var out bytes.Buffer

	root := id == r.tree.Root()
	out.WriteString(r.displayName(id))
	summary := r.tree.Value(id).Summary
	if root {
		summary = r.summary
	}
	if summary != "" {
		out.WriteString(" - ")
		out.WriteString(summary)
	}
	out.WriteString("\n\n")

	out.WriteString(style.Header("USAGE"))
	out.WriteString("\n   ")
	out.WriteString(formatUsage(r.Usage(id)))
	out.WriteString("\n\n")

	if !r.tree.IsLeaf(id) {
		out.WriteString(style.Header("COMMAND TREE"))
		out.WriteString("\n")
		out.WriteString(r.Render(id))
		out.WriteString("\n")
	}

	var cmds []tree.ID
	r.collectCommands(id, &cmds)

	if !root {
		if len(cmds) > 0 {
			out.WriteString(style.Header("COMMANDS"))
			out.WriteString("\n")
			r.writeCommands(&out, cmds)
			out.WriteString("\n")
		}
		out.WriteString("See 'help' for the full command list.\n")
		return out.String()
	}

	grouped := make(map[CommandCategory][]tree.ID)
	for _, c := range cmds {
		cat := r.tree.Value(c).Category
		grouped[cat] = append(grouped[cat], c)
	}

	for _, cat := range categoryOrder {
		ids := grouped[cat]
		if len(ids) == 0 {
			continue
		}
		out.WriteString(style.Header(cat.String()))
		out.WriteString("\n")
		r.writeCommands(&out, ids)
		out.WriteString("\n")
	}

	out.WriteString("Type a command path to run it, or 'exit' to leave.\n")
	return out.String()
}

func (r *Registry) writeCommands(out *bytes.Buffer, ids []tree.ID) {
	for _, c := range ids {
		fmt.Fprintf(out, "   %s  %s\n", style.Info(fmt.Sprintf("%-32s", r.commandLine(c))), r.tree.Value(c).Summary)
	}
}
