package ops

import "fmt"

// ChildrenValidationError reports a structural defect found while
// validating the ordered child list of a container operation.
type ChildrenValidationError struct {
	Kind             ChildrenErrorKind
	Child            NodeID
	ExpectedPosition string
	Expected         TypeRow
	Actual           TypeRow
	NodeDesc         string
	ContainerDesc    string
	ExpectedCount    int
	ActualCount      int
}

// ChildrenErrorKind discriminates the variants of
// ChildrenValidationError.
type ChildrenErrorKind int

const (
	// ErrInternalExitChildren: a BasicBlockExit appeared as a non-last
	// child of a CFG.
	ErrInternalExitChildren ChildrenErrorKind = iota
	// ErrInternalIOChildren: an Input or Output node appeared somewhere
	// other than first/last respectively.
	ErrInternalIOChildren
	// ErrIOSignatureMismatch: the first/last child's signature
	// disagrees with the container's declared input/output row.
	ErrIOSignatureMismatch
	// ErrConditionalCaseSignature: a Case child's signature disagrees
	// with its Conditional parent's per-variant contract.
	ErrConditionalCaseSignature
	// ErrInvalidConditionalPredicate: a Conditional's predicate-variant
	// count disagrees with its Case-child count.
	ErrInvalidConditionalPredicate
)

func (e *ChildrenValidationError) Error() string {
	switch e.Kind {
	case ErrInternalExitChildren:
		return fmt.Sprintf("exit basic blocks are only allowed as the last child in a CFG (child %d)", e.Child)
	case ErrInternalIOChildren:
		return fmt.Sprintf("a %s node is only allowed as the %s child (child %d)", e.NodeDesc, e.ExpectedPosition, e.Child)
	case ErrIOSignatureMismatch:
		return fmt.Sprintf("the %s node of a %s has signature %s, expected %s (child %d)",
			e.NodeDesc, e.ContainerDesc, e.Actual, e.Expected, e.Child)
	case ErrConditionalCaseSignature:
		return fmt.Sprintf("a conditional case's signature does not match its Conditional container (child %d)", e.Child)
	case ErrInvalidConditionalPredicate:
		return fmt.Sprintf("conditional predicate expects %d variants but has %d case children", e.ExpectedCount, e.ActualCount)
	default:
		return "children validation error"
	}
}

// validateIONodes checks that the first child's output row equals
// expectedInput, that the last child's input row equals expectedOutput,
// and that no other child is an Input or Output node. It does not check
// the tags of the first and last children themselves (the validator does
// that through AllowedFirstChild/AllowedLastChild). children must be
// non-empty (callers only reach this after confirming requires_children).
func validateIONodes(expectedInput, expectedOutput TypeRow, containerDesc string, children []ChildInfo) error {
	first, last := children[0], children[len(children)-1]

	firstOut := first.Op.Signature().Output
	if !firstOut.Equal(expectedInput) {
		return &ChildrenValidationError{
			Kind: ErrIOSignatureMismatch, Child: first.Node,
			Actual: firstOut, Expected: expectedInput,
			NodeDesc: "Input", ContainerDesc: containerDesc,
		}
	}
	lastIn := last.Op.Signature().Input
	if !lastIn.Equal(expectedOutput) {
		return &ChildrenValidationError{
			Kind: ErrIOSignatureMismatch, Child: last.Node,
			Actual: lastIn, Expected: expectedOutput,
			NodeDesc: "Output", ContainerDesc: containerDesc,
		}
	}

	for _, c := range children[1 : len(children)-1] {
		switch c.Op.Tag() {
		case TagInput:
			return &ChildrenValidationError{Kind: ErrInternalIOChildren, Child: c.Node, NodeDesc: "Input", ExpectedPosition: "first"}
		case TagOutput:
			return &ChildrenValidationError{Kind: ErrInternalIOChildren, Child: c.Node, NodeDesc: "Output", ExpectedPosition: "last"}
		}
	}

	return nil
}
