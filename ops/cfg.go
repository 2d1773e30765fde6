package ops

import "fmt"

// CFG is a control-flow graph: its children are BasicBlock nodes linked
// by ControlFlow edges rather than a single dataflow chain, so unlike
// DFG/FuncDefn its children are not required to form a DAG (back edges
// implement loops).
type CFG struct {
	Inputs  TypeRow
	Outputs TypeRow
}

func (CFG) Name() string          { return "CFG" }
func (CFG) Tag() Tag              { return TagCFG }
func (c CFG) Signature() Signature {
	return Signature{
		Input:        c.Inputs,
		Output:       c.Outputs,
		OtherInputs:  &StateOrder,
		OtherOutputs: &StateOrder,
	}
}
func (CFG) ValidityFlags() ValidityFlags {
	return ValidityFlags{
		AllowedChildren:   TagBasicBlockAny,
		AllowedFirstChild: TagBasicBlock,
		AllowedLastChild:  TagBasicBlockExit,
		RequiresChildren:  true,
		EdgeCheck:         validateCFGEdge,
	}
}

// ValidateChildren rejects a BasicBlockExit anywhere but the last child:
// an exit block ends the CFG, so any earlier occurrence is unreachable
// structure.
func (CFG) ValidateChildren(children []ChildInfo) error {
	for _, child := range children[:len(children)-1] {
		if child.Op.Tag() == TagBasicBlockExit {
			return &ChildrenValidationError{Kind: ErrInternalExitChildren, Child: child.Node}
		}
	}

	return nil
}

// BasicBlock is one node of a CFG's control-flow graph: an ordinary
// dataflow sibling graph (Input-first, Output-last, DAG) whose Output
// row ends in a predicate selecting which of the block's successors
// receives control next.
type BasicBlock struct {
	Inputs           TypeRow
	PredicateVariants []TypeRow
	OtherOutputs     TypeRow
}

func (BasicBlock) Name() string { return "BasicBlock" }
func (BasicBlock) Tag() Tag     { return TagBasicBlock }

// Signature describes the dataflow rows of the block's region body,
// checked against its Input/Output children. The block node's own
// ports are ControlFlow edges between CFG siblings instead — one
// incoming port per predecessor, one outgoing port per predicate
// variant — reported through PortKind and PortCountBound, not through
// this signature.
func (b BasicBlock) Signature() Signature {
	output := make(TypeRow, 0, 1+len(b.OtherOutputs))
	output = append(output, Predicate(b.PredicateVariants...))
	output = append(output, b.OtherOutputs...)

	return Signature{Input: b.Inputs, Output: output}
}
func (b BasicBlock) ValidityFlags() ValidityFlags {
	n := len(b.PredicateVariants)

	return ValidityFlags{
		AllowedChildren:   TagDataflowOp,
		AllowedFirstChild: TagInput,
		AllowedLastChild:  TagOutput,
		RequiresChildren:  true,
		RequiresDAG:       true,
		NonDFOutputs:      &n,
	}
}
func (b BasicBlock) ValidateChildren(children []ChildInfo) error {
	return validateIONodes(b.Inputs, b.Signature().Output, "basic block", children)
}

// SuccessorInput returns the dataflow row BasicBlock offers its
// successor at the given predicate variant index, the row validateCFGEdge
// compares against the target block's Inputs.
func (b BasicBlock) SuccessorInput(variant int) TypeRow {
	row := make(TypeRow, 0, len(b.PredicateVariants[variant])+len(b.OtherOutputs))
	row = append(row, b.PredicateVariants[variant]...)
	row = append(row, b.OtherOutputs...)

	return row
}

// BasicBlockExit is a CFG's unique terminal block: it has no children
// and no successors, so it uses the default (no-container) validity
// flags like any leaf operation.
type BasicBlockExit struct {
	Inputs TypeRow
}

func (BasicBlockExit) Name() string                    { return "BasicBlockExit" }
func (BasicBlockExit) Tag() Tag                          { return TagBasicBlockExit }
func (e BasicBlockExit) Signature() Signature            { return Signature{Input: e.Inputs} }
func (BasicBlockExit) ValidityFlags() ValidityFlags      { return DefaultValidityFlags() }
func (BasicBlockExit) ValidateChildren([]ChildInfo) error { return nil }

// EdgeValidationError reports a sibling-to-sibling edge that violates
// its container operation's edge contract — for a CFG, a control-flow
// edge whose offered successor row disagrees with the target block's
// input row.
type EdgeValidationError struct {
	Edge    ChildEdgeData
	Offered TypeRow
	Wanted  TypeRow
}

func (e *EdgeValidationError) Error() string {
	return fmt.Sprintf("control-flow edge from %d to %d: offered row %s does not match target input row %s",
		e.Edge.Source, e.Edge.Target, e.Offered, e.Wanted)
}

// validateCFGEdge checks one sibling-to-sibling edge inside a CFG: the
// source BasicBlock's offered row at the edge's outgoing sub-port
// (identified by SourcePort.Offset as the predicate variant index) must
// equal the target block's declared Inputs.
func validateCFGEdge(e ChildEdgeData) error {
	source, ok := e.SourceOp.(BasicBlock)
	if !ok {
		return nil
	}

	variant := e.SourcePort.Offset
	if variant < 0 || variant >= len(source.PredicateVariants) {
		return fmt.Errorf("ops: control-flow edge from %d references out-of-range predicate variant %d", e.Source, variant)
	}

	offered := source.SuccessorInput(variant)

	var want TypeRow
	switch target := e.TargetOp.(type) {
	case BasicBlock:
		want = target.Inputs
	case BasicBlockExit:
		want = target.Inputs
	default:
		return fmt.Errorf("ops: control-flow edge from %d targets non-basic-block %d", e.Source, e.Target)
	}

	if !offered.Equal(want) {
		return &EdgeValidationError{Edge: e, Offered: offered, Wanted: want}
	}

	return nil
}
