package hugr

import (
	"github.com/CQCL-DEV/hugr/ops"
)

// Root returns the HUGR's root node.
func (h *HUGR) Root() Node { return h.root }

// RootType returns the operation carried by the root node.
func (h *HUGR) RootType() ops.OpType { return h.opTypes[h.root] }

// NodeCount returns the number of nodes in the port graph.
func (h *HUGR) NodeCount() int { return h.graph.NodeCount() }

// EdgeCount returns the number of live links in the port graph.
func (h *HUGR) EdgeCount() int { return h.graph.LinkCount() }

// Nodes returns every node in the HUGR, in no particular order.
func (h *HUGR) Nodes() []Node { return h.graph.Nodes() }

// NodeExists reports whether n is currently present in the HUGR.
func (h *HUGR) NodeExists(n Node) bool { return h.graph.NodeExists(n) }

// GetOptype returns the operation carried by n. It panics if n is not a
// node of this HUGR; callers unsure whether n is live should check
// NodeExists first.
func (h *HUGR) GetOptype(n Node) ops.OpType {
	op, ok := h.opTypes[n]
	if !ok {
		panic("hugr: GetOptype called on unknown node")
	}

	return op
}

// Parent returns n's parent in the hierarchy. It returns false for the
// root, which has none.
func (h *HUGR) Parent(n Node) (Node, bool) { return h.hierarchy.Parent(n) }

// IsRoot reports whether n is the hierarchy root, which is always
// h.Root() (a replacement HUGR used in simple replacement has its own
// root).
func (h *HUGR) IsRoot(n Node) bool { return h.hierarchy.IsRoot(n) }

// ChildCount returns the number of children n has in the hierarchy.
func (h *HUGR) ChildCount(n Node) int { return h.hierarchy.ChildCount(n) }

// Children returns n's children in hierarchy order.
func (h *HUGR) Children(n Node) []Node { return h.hierarchy.ChildrenOrdered(n) }

// FirstChild returns n's first child, if any.
func (h *HUGR) FirstChild(n Node) (Node, bool) { return h.hierarchy.FirstChild(n) }

// PortCount returns the number of ports n has in direction dir.
func (h *HUGR) PortCount(n Node, dir Direction) int {
	count, err := h.graph.PortCount(n, dir)
	if err != nil {
		return 0
	}

	return count
}

// NodePorts returns every Port of n in direction dir, offset 0..count-1.
func (h *HUGR) NodePorts(n Node, dir Direction) []Port {
	count := h.PortCount(n, dir)
	ports := make([]Port, count)
	for i := range ports {
		if dir == Incoming {
			ports[i] = In(i)
		} else {
			ports[i] = Out(i)
		}
	}

	return ports
}

// LinkedPort returns the remote endpoint connected to n's port at
// offset, if any.
func (h *HUGR) LinkedPort(n Node, port Port) (Node, Port, bool) {
	if port.Direction == Incoming {
		ep, ok := h.graph.IncomingLink(n, port.Offset)
		if !ok {
			return Node(0), Port{}, false
		}

		return ep.Node, ep.Port, true
	}

	links := h.graph.OutgoingLinks(n, port.Offset)
	if len(links) == 0 {
		return Node(0), Port{}, false
	}

	return links[0].Node, links[0].Port, true
}

// LinkedPorts returns every remote endpoint connected to n's outgoing
// port at offset, one per fanned-out sub-port. For an incoming port it
// returns at most one endpoint.
func (h *HUGR) LinkedPorts(n Node, port Port) []Endpoint {
	if port.Direction == Incoming {
		ep, ok := h.graph.IncomingLink(n, port.Offset)
		if !ok {
			return nil
		}

		return []Endpoint{{Node: ep.Node, Port: ep.Port}}
	}

	links := h.graph.OutgoingLinks(n, port.Offset)
	endpoints := make([]Endpoint, len(links))
	for i, l := range links {
		endpoints[i] = Endpoint{Node: l.Node, Port: l.Port}
	}

	return endpoints
}

// Endpoint names a remote node and port reached by following a link.
type Endpoint struct {
	Node Node
	Port Port
}

// Neighbours returns the distinct nodes reachable from n by following
// links in direction dir.
func (h *HUGR) Neighbours(n Node, dir Direction) []Node {
	if dir == Incoming {
		return h.graph.Predecessors(n)
	}

	return h.graph.Successors(n)
}

// AllNeighbours returns the distinct nodes reachable from n in either
// direction.
func (h *HUGR) AllNeighbours(n Node) []Node {
	seen := make(map[Node]struct{})
	var out []Node
	for _, dir := range [...]Direction{Incoming, Outgoing} {
		for _, m := range h.Neighbours(n, dir) {
			if _, ok := seen[m]; !ok {
				seen[m] = struct{}{}
				out = append(out, m)
			}
		}
	}

	return out
}
