package hugr

import (
	"github.com/CQCL-DEV/hugr/ops"
)

// AddOp inserts a new, unparented node carrying op, sized according to
// op's declared port counts (basic blocks start with no predecessor
// ports; see ConnectControlFlow). The caller must attach it with
// SetParent before the HUGR is validated, since every
// non-root node requires a parent.
func (h *HUGR) AddOp(op ops.OpType) Node {
	nIn, nOut := ops.PortCounts(op)
	n := h.graph.AddNode(nIn, nOut)
	h.opTypes[n] = op
	h.hierarchy.Add(n)

	return n
}

// AddOpWithParent inserts a new node carrying op as the last child of
// parent.
func (h *HUGR) AddOpWithParent(parent Node, op ops.OpType) (Node, error) {
	n := h.AddOp(op)
	if err := h.hierarchy.PushChild(parent, n); err != nil {
		delete(h.opTypes, n)
		_ = h.graph.RemoveNode(n)
		return Node(0), &HierarchyError{Err: err}
	}

	return n, nil
}

// AddOpAfter inserts a new node carrying op immediately after sibling
// in their shared parent's child order.
func (h *HUGR) AddOpAfter(sibling Node, op ops.OpType) (Node, error) {
	n := h.AddOp(op)
	if err := h.hierarchy.InsertAfter(n, sibling); err != nil {
		delete(h.opTypes, n)
		_ = h.graph.RemoveNode(n)
		return Node(0), &HierarchyError{Err: err}
	}

	return n, nil
}

// AddOpBefore inserts a new node carrying op immediately before sibling
// in their shared parent's child order.
func (h *HUGR) AddOpBefore(sibling Node, op ops.OpType) (Node, error) {
	n := h.AddOp(op)
	if err := h.hierarchy.InsertBefore(n, sibling); err != nil {
		delete(h.opTypes, n)
		_ = h.graph.RemoveNode(n)
		return Node(0), &HierarchyError{Err: err}
	}

	return n, nil
}

// SetParent attaches node as the last child of parent, detaching it
// from any previous parent first.
func (h *HUGR) SetParent(parent, node Node) error {
	if err := h.hierarchy.SetParent(parent, node); err != nil {
		return &HierarchyError{Err: err}
	}

	return nil
}

// Connect links src's outgoing port at srcOffset to tgt's incoming port
// at tgtOffset. A dataflow value port fans out freely; linking a second
// time to the same incoming port fails with portgraph's
// ErrIncomingPortOccupied, wrapped here as ConnectionError.
func (h *HUGR) Connect(src Node, srcOffset int, tgt Node, tgtOffset int) error {
	if _, err := h.graph.Link(src, srcOffset, tgt, tgtOffset); err != nil {
		return &ConnectionError{Err: err}
	}

	return nil
}

// otherPortOffset returns the offset of op's auxiliary (StateOrder)
// port in direction dir, following the same dataflow-ports-then-const-
// slot-then-other-slot ordering ops.Signature.PortKind uses internally.
func otherPortOffset(op ops.OpType, dir Direction) (int, bool) {
	sig := op.Signature()
	if dir == Outgoing {
		if sig.OtherOutputs == nil {
			return 0, false
		}

		return len(sig.Output), true
	}

	if sig.OtherInputs == nil {
		return 0, false
	}

	offset := len(sig.Input)
	if sig.ConstInput != nil {
		offset++
	}

	return offset, true
}

// AddOtherEdge connects src's auxiliary output port to tgt's auxiliary
// input port — the non-dataflow "other edge" every operation with a
// declared OtherInputs/OtherOutputs kind exposes, typically a
// StateOrder edge enforcing relative order between otherwise-unordered
// siblings. Control-flow edges between basic blocks go through
// ConnectControlFlow instead.
func (h *HUGR) AddOtherEdge(src, tgt Node) error {
	srcOp, ok := h.opTypes[src]
	if !ok {
		return ErrNoSuchNode
	}
	tgtOp, ok := h.opTypes[tgt]
	if !ok {
		return ErrNoSuchNode
	}

	srcOffset, ok := otherPortOffset(srcOp, Outgoing)
	if !ok {
		return ErrNoOtherPort
	}
	tgtOffset, ok := otherPortOffset(tgtOp, Incoming)
	if !ok {
		return ErrNoOtherPort
	}

	return h.Connect(src, srcOffset, tgt, tgtOffset)
}

// ConnectControlFlow adds the control-flow edge selecting tgt as src's
// successor for the given predicate variant: tgt (a sibling basic block
// or the exit block) grows one predecessor port and src's outgoing port
// at the variant offset is linked to it.
func (h *HUGR) ConnectControlFlow(src Node, variant int, tgt Node) error {
	offset, err := h.AddPorts(tgt, Incoming, 1)
	if err != nil {
		return err
	}

	return h.Connect(src, variant, tgt, offset)
}

// ReplaceOp replaces n's operation in place with op, returning the
// operation it displaced. The node's port graph shape is not resized;
// callers must ensure op's declared port counts are compatible with n's
// existing ports.
func (h *HUGR) ReplaceOp(n Node, op ops.OpType) ops.OpType {
	old := h.opTypes[n]
	h.opTypes[n] = op

	return old
}

// RemoveOp detaches n from the hierarchy and removes it and its ports
// from the port graph, returning the operation it carried.
func (h *HUGR) RemoveOp(n Node) (ops.OpType, error) {
	op, ok := h.opTypes[n]
	if !ok {
		return nil, ErrNoSuchNode
	}

	if !h.hierarchy.IsRoot(n) {
		if err := h.hierarchy.Detach(n); err != nil {
			return nil, &HierarchyError{Err: err}
		}
	}
	h.hierarchy.Remove(n)

	if err := h.graph.RemoveNode(n); err != nil {
		return nil, &ConnectionError{Err: err}
	}
	delete(h.opTypes, n)

	return op, nil
}

// UnlinkIncoming disconnects whatever currently feeds n's incoming port
// at offset. It fails if the port was not connected.
func (h *HUGR) UnlinkIncoming(n Node, offset int) error {
	if err := h.graph.UnlinkIncoming(n, offset); err != nil {
		return &ConnectionError{Err: err}
	}

	return nil
}

// AddPorts grows n's ports in direction dir by count, returning the
// offset of the first newly added port. Used when an operation's
// signature is not fixed at construction time (e.g. a basic block
// gaining a predecessor port; see ConnectControlFlow).
func (h *HUGR) AddPorts(n Node, dir Direction, count int) (int, error) {
	offset, err := h.graph.AddPorts(n, dir, count)
	if err != nil {
		return 0, &ConnectionError{Err: err}
	}

	return offset, nil
}
