// simple_replacement.go implements the one rewrite primitive this core
// provides: substituting a set of a container's children for the
// interior of a replacement fragment shaped like a dataflow sibling
// graph (an Input node, some interior nodes, an Output node).

package hugr

import (
	"errors"

	"github.com/CQCL-DEV/hugr/ops"
)

// ErrInvalidParentNode indicates a SimpleReplacement's Parent is not a
// node of the host HUGR, or is not a dataflow container.
var ErrInvalidParentNode = errors.New("hugr: simple replacement: invalid parent node")

// ErrInvalidRemovedNode indicates a SimpleReplacement's Removal
// contains a node that is not a direct child of Parent, or that has
// children of its own.
var ErrInvalidRemovedNode = errors.New("hugr: simple replacement: invalid removed node")

// ErrInvalidReplacementNode indicates a SimpleReplacement's Replacement
// fragment is not shaped like a dataflow sibling graph, an interior
// node's constant-input slot is occupied, or NuInp/NuOut names a port
// this algorithm cannot resolve.
var ErrInvalidReplacementNode = errors.New("hugr: simple replacement: invalid replacement node")

// ReplacementPort names a port belonging to a specific node, used as a
// map key in NuInp/NuOut since Go map keys cannot be a bare (Node,Port)
// pair without a named type.
type ReplacementPort struct {
	Node Node
	Port Port
}

// SimpleReplacement describes replacing the Removal children of Parent
// with the interior nodes of Replacement (everything in Replacement's
// root except its first child, the boundary Input, and its last child,
// the boundary Output).
//
//   - NuInp keys an interior replacement node's incoming port that,
//     inside Replacement, was fed by the boundary Input, to a host
//     node's incoming port: the CURRENT predecessor of that host port
//     (found before Removal is deleted) becomes the new feed for the
//     interior node's port. A key whose Node is Replacement's boundary
//     Output (rather than an interior node) instead marks a pass-
//     through wire and is consumed by the NuOut pass-through case
//     below, not wired directly.
//   - NuOut keys a host node's incoming port that, before the rewrite,
//     was fed from within Removal, to the incoming-port offset of
//     Replacement's boundary Output that should now feed it: whichever
//     interior node feeds that Output offset becomes the host port's
//     new predecessor. If that Output offset is instead fed directly by
//     the boundary Input (a pure pass-through with no interior node in
//     between), the matching NuInp entry keyed on the boundary Output
//     names the host port whose original predecessor should be spliced
//     straight through instead.
type SimpleReplacement struct {
	Parent      Node
	Removal     []Node
	Replacement *HUGR
	NuInp       map[ReplacementPort]ReplacementPort
	NuOut       map[ReplacementPort]int
}

// ApplySimpleReplacement performs r against h: clones Replacement's
// interior nodes into h as new children of r.Parent, rewires the
// boundary per NuInp/NuOut (reading each host predecessor before it is
// disturbed), and only then deletes r.Removal. It does not itself call
// Validate; callers that need the post-condition checked should call it
// explicitly.
func (h *HUGR) ApplySimpleReplacement(r SimpleReplacement) error {
	if !h.NodeExists(r.Parent) {
		return ErrInvalidParentNode
	}
	if !ops.TagDataflowContainer.Contains(h.GetOptype(r.Parent).Tag()) {
		return ErrInvalidParentNode
	}

	removalSet := make(map[Node]bool, len(r.Removal))
	for _, n := range r.Removal {
		parent, ok := h.Parent(n)
		if !ok || parent != r.Parent || h.ChildCount(n) != 0 {
			return ErrInvalidRemovedNode
		}
		removalSet[n] = true
	}

	replRoot := r.Replacement.Root()
	replChildren := r.Replacement.Children(replRoot)
	if len(replChildren) < 2 {
		return ErrInvalidReplacementNode
	}
	replInput := replChildren[0]
	replOutput := replChildren[len(replChildren)-1]
	interior := replChildren[1 : len(replChildren)-1]

	for _, n := range interior {
		if constOffset, ok := constInputOffset(r.Replacement, n); ok {
			if _, _, linked := r.Replacement.LinkedPort(n, In(constOffset)); linked {
				return ErrInvalidReplacementNode
			}
		}
	}
	for key, hostPort := range r.NuInp {
		if key.Node != replOutput && !containsNode(interior, key.Node) {
			return ErrInvalidReplacementNode
		}
		if !removalSet[hostPort.Node] {
			return ErrInvalidReplacementNode
		}
	}
	for hostPort := range r.NuOut {
		if removalSet[hostPort.Node] {
			return ErrInvalidReplacementNode
		}
	}

	// 1. Locate where Removal sits among its siblings before touching
	// anything, so the interior nodes can be spliced back into the same
	// slot. Removal nodes are still attached at this point, so an
	// existing Removal member makes a perfectly good InsertBefore/
	// InsertAfter anchor.
	siblings := h.Children(r.Parent)
	var firstRemoval Node
	hasRemoval := false
	for _, sib := range siblings {
		if removalSet[sib] {
			firstRemoval, hasRemoval = sib, true

			break
		}
	}

	nodeMap := make(map[Node]Node, len(interior))
	var anchor Node
	hasAnchor := false
	for _, old := range interior {
		op := r.Replacement.GetOptype(old)

		var newNode Node
		var err error
		switch {
		case hasAnchor:
			newNode, err = h.AddOpAfter(anchor, op)
		case hasRemoval:
			newNode, err = h.AddOpBefore(firstRemoval, op)
		default:
			newNode, err = h.AddOpWithParent(r.Parent, op)
		}
		if err != nil {
			return err
		}
		nodeMap[old] = newNode
		anchor, hasAnchor = newNode, true
	}

	// 2. Replicate every link strictly between two interior nodes.
	for _, old := range interior {
		count := r.Replacement.PortCount(old, Outgoing)
		for offset := 0; offset < count; offset++ {
			for _, ep := range r.Replacement.LinkedPorts(old, Out(offset)) {
				if ep.Node == replInput || ep.Node == replOutput {
					continue
				}
				if err := h.Connect(nodeMap[old], offset, nodeMap[ep.Node], ep.Port.Offset); err != nil {
					return err
				}
			}
		}
	}

	// 3. For every nu_inp entry whose replacement-side node is an
	// interior node (not the boundary Output — that case is handled as
	// part of the nu_out pass-through step below), find the CURRENT
	// predecessor of the named host port, sever it, and feed the new
	// interior node from it instead.
	for repPort, hostPort := range r.NuInp {
		if repPort.Node == replOutput {
			continue
		}
		newTarget := nodeMap[repPort.Node]

		predNode, predPort, ok := h.LinkedPort(hostPort.Node, hostPort.Port)
		if !ok {
			return ErrInvalidReplacementNode
		}
		if err := h.UnlinkIncoming(hostPort.Node, hostPort.Port.Offset); err != nil {
			return err
		}
		if err := h.Connect(predNode, predPort.Offset, newTarget, repPort.Port.Offset); err != nil {
			return err
		}
	}

	// 4 & 5. For every nu_out entry, find what feeds the boundary
	// Output at the given offset inside Replacement. If it is an
	// interior node, redirect the host port to it. If it is the
	// boundary Input itself (a pure pass-through with nothing in
	// between), splice the host port's own original predecessor
	// straight through via the matching nu_inp entry keyed on the
	// boundary Output.
	for hostPort, outOffset := range r.NuOut {
		srcNode, srcPort, ok := r.Replacement.LinkedPort(replOutput, In(outOffset))
		if !ok {
			return ErrInvalidReplacementNode
		}

		if srcNode != replInput {
			newSrc := nodeMap[srcNode]
			if _, ok := nodeMap[srcNode]; !ok {
				return ErrInvalidReplacementNode
			}
			if err := h.rewireHostConsumer(hostPort, newSrc, srcPort.Offset); err != nil {
				return err
			}

			continue
		}

		passKey := ReplacementPort{Node: replOutput, Port: In(outOffset)}
		origin, ok := r.NuInp[passKey]
		if !ok {
			return ErrInvalidReplacementNode
		}
		predNode, predPort, ok := h.LinkedPort(origin.Node, origin.Port)
		if !ok {
			return ErrInvalidReplacementNode
		}
		if err := h.UnlinkIncoming(origin.Node, origin.Port.Offset); err != nil {
			return err
		}
		if err := h.rewireHostConsumer(hostPort, predNode, predPort.Offset); err != nil {
			return err
		}
	}

	// 6. Finally remove the old children; portgraph.RemoveNode severs
	// every link still touching them.
	for _, n := range r.Removal {
		if _, err := h.RemoveOp(n); err != nil {
			return err
		}
	}

	return nil
}

// rewireHostConsumer drops hostPort's current predecessor (if any, e.g.
// a node about to be removed) and feeds it from (srcNode, srcOffset)
// instead.
func (h *HUGR) rewireHostConsumer(hostPort ReplacementPort, srcNode Node, srcOffset int) error {
	if _, _, linked := h.LinkedPort(hostPort.Node, hostPort.Port); linked {
		if err := h.UnlinkIncoming(hostPort.Node, hostPort.Port.Offset); err != nil {
			return err
		}
	}

	return h.Connect(srcNode, srcOffset, hostPort.Node, hostPort.Port.Offset)
}

func containsNode(nodes []Node, n Node) bool {
	for _, m := range nodes {
		if m == n {
			return true
		}
	}

	return false
}

// constInputOffset returns the port offset of n's constant-input slot
// within hg, and whether n's operation declares one at all.
func constInputOffset(hg *HUGR, n Node) (int, bool) {
	sig := hg.GetOptype(n).Signature()
	if sig.ConstInput == nil {
		return 0, false
	}

	return len(sig.Input), true
}
