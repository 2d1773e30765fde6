package hugr

import (
	"fmt"
	"sort"
	"strings"
)

// DotString renders a GraphViz dot description of the HUGR: every node
// labelled with its operation, dashed gray edges for hierarchy
// containment, solid edges (labelled source:target offset) for port
// links. It is a diagnostic aid, not a serialization format.
func (h *HUGR) DotString() string {
	var b strings.Builder
	b.WriteString("digraph hugr {\n")
	b.WriteString("  node [shape=record];\n")

	nodes := h.graph.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	for _, n := range nodes {
		op := h.opTypes[n]
		label := "?"
		if op != nil {
			label = op.Name()
		}
		fmt.Fprintf(&b, "  n%d [label=\"%d: %s\"];\n", n, n, escapeLabel(label))
	}

	for _, n := range nodes {
		if parent, ok := h.Parent(n); ok {
			fmt.Fprintf(&b, "  n%d -> n%d [style=dashed, color=gray, arrowhead=none];\n", parent, n)
		}
	}

	for _, n := range nodes {
		count := h.PortCount(n, Outgoing)
		for offset := 0; offset < count; offset++ {
			for _, ep := range h.LinkedPorts(n, Out(offset)) {
				fmt.Fprintf(&b, "  n%d -> n%d [label=\"%d:%d\"];\n", n, ep.Node, offset, ep.Port.Offset)
			}
		}
	}

	b.WriteString("}\n")

	return b.String()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")

	return s
}
