package portgraph

// IncomingLink returns the outgoing endpoint feeding the incoming port
// (n, offset), and whether one exists.
func (g *Graph) IncomingLink(n NodeID, offset int) (LinkEndpoint, bool) {
	nd, ok := g.nodes[n]
	if !ok || offset < 0 || offset >= len(nd.inputs) {
		return LinkEndpoint{}, false
	}
	slot := nd.inputs[offset]
	if !slot.linked {
		return LinkEndpoint{}, false
	}

	return LinkEndpoint{
		Endpoint: Endpoint{Node: slot.node, Port: Out(slot.offset)},
		SubPort:  slot.subPort,
	}, true
}

// OutgoingLinks returns every live fan-out branch of the outgoing port
// (n, offset), in sub-port order. Tombstoned branches are omitted, so
// the returned slice may be shorter than the sub-port count ever issued.
func (g *Graph) OutgoingLinks(n NodeID, offset int) []LinkEndpoint {
	nd, ok := g.nodes[n]
	if !ok || offset < 0 || offset >= len(nd.outputs) {
		return nil
	}
	branches := nd.outputs[offset]
	out := make([]LinkEndpoint, 0, len(branches))
	for sub, l := range branches {
		if l == nil {
			continue
		}
		out = append(out, LinkEndpoint{
			Endpoint: Endpoint{Node: l.node, Port: In(l.offset)},
			SubPort:  sub,
		})
	}

	return out
}

// IsLinked reports whether the incoming port (n, offset) has a live
// link. It also reports false for an absent node or an out-of-range
// offset.
func (g *Graph) IsLinked(n NodeID, offset int) bool {
	_, ok := g.IncomingLink(n, offset)

	return ok
}

// Successors returns the distinct nodes reachable from n via any
// outgoing port, each appearing once regardless of fan-out width.
func (g *Graph) Successors(n NodeID) []NodeID {
	nd, ok := g.nodes[n]
	if !ok {
		return nil
	}
	seen := make(map[NodeID]struct{})
	var out []NodeID
	for _, branches := range nd.outputs {
		for _, l := range branches {
			if l == nil {
				continue
			}
			if _, dup := seen[l.node]; dup {
				continue
			}
			seen[l.node] = struct{}{}
			out = append(out, l.node)
		}
	}

	return out
}

// Predecessors returns the distinct nodes with an outgoing link into any
// incoming port of n.
func (g *Graph) Predecessors(n NodeID) []NodeID {
	nd, ok := g.nodes[n]
	if !ok {
		return nil
	}
	seen := make(map[NodeID]struct{})
	var out []NodeID
	for _, slot := range nd.inputs {
		if !slot.linked {
			continue
		}
		if _, dup := seen[slot.node]; dup {
			continue
		}
		seen[slot.node] = struct{}{}
		out = append(out, slot.node)
	}

	return out
}

// ConnectionsBetween returns every live link whose source is a and
// target is b, as (source port, target port) pairs, including every
// parallel connection between the two nodes.
func (g *Graph) ConnectionsBetween(a, b NodeID) []struct {
	Src Port
	Tgt Port
} {
	nd, ok := g.nodes[a]
	if !ok {
		return nil
	}
	var out []struct {
		Src Port
		Tgt Port
	}
	for offset, branches := range nd.outputs {
		for _, l := range branches {
			if l == nil || l.node != b {
				continue
			}
			out = append(out, struct {
				Src Port
				Tgt Port
			}{Src: Out(offset), Tgt: In(l.offset)})
		}
	}

	return out
}
