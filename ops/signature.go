package ops

import "github.com/CQCL-DEV/hugr/portgraph"

// Signature is the dataflow shape of an operation: an ordered input
// row, an ordered output row, an optional constant-input type, and the
// kind carried by any auxiliary (non-dataflow) input/output port.
//
// Port layout derived from a Signature: dataflow input ports
// (len(Input)), then one constant-input port iff ConstInput is non-nil,
// then one auxiliary port iff OtherInputs is non-nil — and symmetrically
// on the output side.
type Signature struct {
	Input  TypeRow
	Output TypeRow

	// ConstInput, when non-nil, is the classical type of an extra
	// incoming Const-kind port (LoadConstant, Call).
	ConstInput *Type

	// OtherInputs/OtherOutputs, when non-nil, name the EdgeKind of one
	// extra auxiliary port in that direction (typically StateOrder).
	// nil means no auxiliary port at all, distinct from an explicit
	// StateOrder kind.
	OtherInputs  *EdgeKind
	OtherOutputs *EdgeKind

	InputResources  ResourceSet
	OutputResources ResourceSet
}

// InputCount returns the total number of incoming ports this signature
// implies: dataflow inputs, plus the constant-input slot if present,
// plus the auxiliary input slot if present.
func (s Signature) InputCount() int {
	n := len(s.Input)
	if s.ConstInput != nil {
		n++
	}
	if s.OtherInputs != nil {
		n++
	}

	return n
}

// OutputCount is the output-side mirror of InputCount.
func (s Signature) OutputCount() int {
	n := len(s.Output)
	if s.OtherOutputs != nil {
		n++
	}

	return n
}

// PortKind returns the EdgeKind carried by port p, and whether p is in
// range for this signature.
func (s Signature) PortKind(p portgraph.Port) (EdgeKind, bool) {
	if p.Direction == portgraph.Incoming {
		if p.Offset < len(s.Input) {
			return Value(s.Input[p.Offset]), true
		}
		offset := p.Offset - len(s.Input)
		if s.ConstInput != nil {
			if offset == 0 {
				return Const(*s.ConstInput), true
			}
			offset--
		}
		if s.OtherInputs != nil && offset == 0 {
			return *s.OtherInputs, true
		}

		return EdgeKind{}, false
	}

	if p.Offset < len(s.Output) {
		return Value(s.Output[p.Offset]), true
	}
	offset := p.Offset - len(s.Output)
	if s.OtherOutputs != nil && offset == 0 {
		return *s.OtherOutputs, true
	}

	return EdgeKind{}, false
}

// Equal reports whether two signatures describe the same shape.
func (s Signature) Equal(other Signature) bool {
	if !s.Input.Equal(other.Input) || !s.Output.Equal(other.Output) {
		return false
	}
	if (s.ConstInput == nil) != (other.ConstInput == nil) {
		return false
	}
	if s.ConstInput != nil && !s.ConstInput.Equal(*other.ConstInput) {
		return false
	}

	return true
}

// String renders s for diagnostics as "input -> output".
func (s Signature) String() string {
	return s.Input.String() + " -> " + s.Output.String()
}

// ValidityFlags is the structural contract an operation imposes on its
// children, consumed by the validator. The zero value (via
// DefaultValidityFlags) is correct for any non-container operation.
type ValidityFlags struct {
	AllowedChildren   Tag
	AllowedFirstChild Tag
	AllowedLastChild  Tag
	RequiresChildren  bool
	RequiresDAG       bool

	// NonDFInputs/NonDFOutputs, when non-nil, pin the node's
	// non-dataflow port count in that direction to exactly this many
	// (a BasicBlock declares one outgoing control-flow port per
	// predicate variant this way).
	NonDFInputs  *int
	NonDFOutputs *int

	// EdgeCheck, when non-nil, validates every sibling-to-sibling edge
	// inside this container (only CFG uses this, for control-flow
	// signature agreement between blocks).
	EdgeCheck func(ChildEdgeData) error
}

// DefaultValidityFlags returns the flags appropriate for a non-container
// operation: no children allowed, no further restriction on first/last
// (moot since none are allowed), no DAG requirement.
func DefaultValidityFlags() ValidityFlags {
	return ValidityFlags{AllowedChildren: TagNone, AllowedFirstChild: TagAny, AllowedLastChild: TagAny}
}

// ChildInfo pairs a child node's identifier with its operation, the
// shape the validator iterates over when calling ValidateChildren.
type ChildInfo struct {
	Node NodeID
	Op   OpType
}

// NodeID is the node identifier operations are described against,
// shared with package portgraph.
type NodeID = portgraph.NodeID

// ChildEdgeData describes one sibling-to-sibling edge inside a
// container, passed to a ValidityFlags.EdgeCheck.
type ChildEdgeData struct {
	Source, Target         NodeID
	SourceOp, TargetOp     OpType
	SourcePort, TargetPort portgraph.Port
}
