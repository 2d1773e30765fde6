package portgraph

// Link connects the outgoing port (src, srcOffset) to the incoming port
// (tgt, tgtOffset) and returns the sub-port offset assigned to this
// fan-out branch on the source side.
//
// Link fails if either node is absent, either offset is out of range, or
// the target incoming port is already occupied — incoming ports never
// accept a second link (no fan-in); UnlinkIncoming the existing one first.
// Complexity: O(1) amortized.
func (g *Graph) Link(src NodeID, srcOffset int, tgt NodeID, tgtOffset int) (int, error) {
	srcNode, ok := g.nodes[src]
	if !ok {
		return 0, errNoSuchNode(src)
	}
	tgtNode, ok := g.nodes[tgt]
	if !ok {
		return 0, errNoSuchNode(tgt)
	}
	if srcOffset < 0 || srcOffset >= len(srcNode.outputs) {
		return 0, &portError{id: src, port: Out(srcOffset), err: ErrPortOutOfRange}
	}
	if tgtOffset < 0 || tgtOffset >= len(tgtNode.inputs) {
		return 0, &portError{id: tgt, port: In(tgtOffset), err: ErrPortOutOfRange}
	}
	if tgtNode.inputs[tgtOffset].linked {
		return 0, &portError{id: tgt, port: In(tgtOffset), err: ErrIncomingPortOccupied}
	}

	subPort := len(srcNode.outputs[srcOffset])
	srcNode.outputs[srcOffset] = append(srcNode.outputs[srcOffset], &link{node: tgt, offset: tgtOffset})
	tgtNode.inputs[tgtOffset] = incomingSlot{linked: true, node: src, offset: srcOffset, subPort: subPort}

	return subPort, nil
}

// UnlinkIncoming removes the link feeding the incoming port (node,
// offset), if any, tombstoning the matching sub-port on the source side.
// Complexity: O(1).
func (g *Graph) UnlinkIncoming(n NodeID, offset int) error {
	tgtNode, ok := g.nodes[n]
	if !ok {
		return errNoSuchNode(n)
	}
	if offset < 0 || offset >= len(tgtNode.inputs) {
		return &portError{id: n, port: In(offset), err: ErrPortOutOfRange}
	}
	slot := tgtNode.inputs[offset]
	if !slot.linked {
		return &portError{id: n, port: In(offset), err: ErrNotLinked}
	}
	if src, ok := g.nodes[slot.node]; ok && slot.offset < len(src.outputs) {
		branches := src.outputs[slot.offset]
		if slot.subPort < len(branches) {
			branches[slot.subPort] = nil
		}
	}
	tgtNode.inputs[offset].linked = false

	return nil
}

// UnlinkOutgoing removes the fan-out branch at (node, offset, subPort),
// clearing the corresponding incoming slot on the target side.
// Complexity: O(1).
func (g *Graph) UnlinkOutgoing(n NodeID, offset, subPort int) error {
	srcNode, ok := g.nodes[n]
	if !ok {
		return errNoSuchNode(n)
	}
	if offset < 0 || offset >= len(srcNode.outputs) {
		return &portError{id: n, port: Out(offset), err: ErrPortOutOfRange}
	}
	branches := srcNode.outputs[offset]
	if subPort < 0 || subPort >= len(branches) || branches[subPort] == nil {
		return &portError{id: n, port: Out(offset), err: ErrNotLinked}
	}
	l := branches[subPort]
	if tgt, ok := g.nodes[l.node]; ok && l.offset < len(tgt.inputs) {
		tgt.inputs[l.offset].linked = false
	}
	branches[subPort] = nil

	return nil
}
