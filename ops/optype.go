package ops

import "github.com/CQCL-DEV/hugr/portgraph"

// OpType is the operation carried by a single HUGR node. It is
// implemented by exactly the concrete types in this package (Module,
// FuncDefn, FuncDecl, AliasDefn, AliasDecl, ConstOp, LoadConstant, Call,
// CallIndirect, Input, Output, DFG, Conditional, Case, TailLoop, CFG,
// BasicBlock, BasicBlockExit, Leaf) — a closed enumeration expressed as
// an interface, each variant carrying its own parameters and answering
// the same four questions the validator asks of every node.
type OpType interface {
	// Name identifies the operation kind for diagnostics and dot
	// rendering.
	Name() string

	// Tag returns this operation's single position in the containment
	// lattice defined in tag.go.
	Tag() Tag

	// Signature returns the dataflow shape of this operation.
	Signature() Signature

	// ValidityFlags returns the structural contract this operation
	// imposes on its children, if any.
	ValidityFlags() ValidityFlags

	// ValidateChildren runs any operation-specific structural check
	// that needs to see the whole ordered child list (Input/Output row
	// agreement, Conditional's per-case predicate row, CFG's interior
	// exit check). Operations with no such check return nil
	// unconditionally.
	ValidateChildren(children []ChildInfo) error
}

// PortKind returns the EdgeKind carried by op's port p. For most
// operations this is derived purely from Signature; basic blocks are
// the exception, since their node-level ports carry ControlFlow edges
// between CFG siblings rather than the dataflow rows their Signature
// describes for the region body within.
func PortKind(op OpType, p Port) (EdgeKind, bool) {
	switch o := op.(type) {
	case BasicBlock:
		if p.Direction == portgraph.Incoming {
			return ControlFlow, true
		}
		if p.Offset < len(o.PredicateVariants) {
			return ControlFlow, true
		}

		return EdgeKind{}, false
	case BasicBlockExit:
		if p.Direction == portgraph.Incoming {
			return ControlFlow, true
		}

		return EdgeKind{}, false
	default:
		return op.Signature().PortKind(p)
	}
}

// PortCountBound returns the number of ports a node carrying op must
// have in direction dir, and whether that count is exact. Basic blocks
// report an inexact incoming bound: they gain one ControlFlow port per
// predecessor, so any count is structurally fine.
func PortCountBound(op OpType, dir Direction) (int, bool) {
	switch op.(type) {
	case BasicBlock, BasicBlockExit:
		if dir == portgraph.Incoming {
			return 0, false
		}
		if flags := op.ValidityFlags(); flags.NonDFOutputs != nil {
			return *flags.NonDFOutputs, true
		}

		return 0, true
	}

	sig := op.Signature()
	if dir == portgraph.Incoming {
		return sig.InputCount(), true
	}

	return sig.OutputCount(), true
}

// PortCounts returns the port counts a freshly created node carrying op
// starts with: the exact bounds where PortCountBound is exact, zero
// where it is flexible (ports are grown as edges are added).
func PortCounts(op OpType) (nIn, nOut int) {
	nIn, _ = PortCountBound(op, portgraph.Incoming)
	nOut, _ = PortCountBound(op, portgraph.Outgoing)

	return nIn, nOut
}

// Direction and Port re-export the portgraph types operations are
// described in terms of, so callers of this package rarely need to
// import portgraph directly for signature work.
type Direction = portgraph.Direction
type Port = portgraph.Port
