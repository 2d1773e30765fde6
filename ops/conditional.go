package ops

// Conditional branches on a Sum-typed predicate value: exactly one Case
// child runs, chosen by the predicate's variant tag. Unlike DFG/FuncDefn,
// a Conditional's children are Case nodes directly, each with its own
// nested Input/Output pair, not a single shared dataflow sibling graph.
type Conditional struct {
	// Predicate lists the row carried by each predicate variant.
	Predicate []TypeRow
	// OtherInputs is appended to every variant's row to form each Case's
	// expected input.
	OtherInputs TypeRow
	// Outputs is the row every Case must produce.
	Outputs TypeRow
}

func (Conditional) Name() string { return "Conditional" }
func (Conditional) Tag() Tag     { return TagConditional }
func (c Conditional) Signature() Signature {
	input := make(TypeRow, 0, len(c.OtherInputs)+1)
	input = append(input, Predicate(c.Predicate...))
	input = append(input, c.OtherInputs...)

	return Signature{
		Input:        input,
		Output:       c.Outputs,
		OtherInputs:  &StateOrder,
		OtherOutputs: &StateOrder,
	}
}
func (Conditional) ValidityFlags() ValidityFlags {
	return ValidityFlags{
		AllowedChildren:   TagCase,
		AllowedFirstChild: TagAny,
		AllowedLastChild:  TagAny,
		RequiresChildren:  true,
	}
}

// ValidateChildren requires exactly one Case per predicate variant, in
// order, each with input row Predicate[i]++OtherInputs and output row
// Outputs.
func (c Conditional) ValidateChildren(children []ChildInfo) error {
	if len(children) != len(c.Predicate) {
		return &ChildrenValidationError{
			Kind: ErrInvalidConditionalPredicate, ExpectedCount: len(c.Predicate), ActualCount: len(children),
		}
	}
	for i, child := range children {
		expectedInput := make(TypeRow, 0, len(c.Predicate[i])+len(c.OtherInputs))
		expectedInput = append(expectedInput, c.Predicate[i]...)
		expectedInput = append(expectedInput, c.OtherInputs...)

		sig := child.Op.Signature()
		if !sig.Input.Equal(expectedInput) || !sig.Output.Equal(c.Outputs) {
			return &ChildrenValidationError{Kind: ErrConditionalCaseSignature, Child: child.Node}
		}
	}

	return nil
}

// Case is one branch of a Conditional: an ordinary dataflow sibling
// graph, required like DFG to start with Input and end with Output.
type Case struct {
	Sig Signature
}

func (Case) Name() string          { return "Case" }
func (Case) Tag() Tag              { return TagCase }
func (c Case) Signature() Signature { return c.Sig }
func (Case) ValidityFlags() ValidityFlags {
	return ValidityFlags{
		AllowedChildren:   TagDataflowOp,
		AllowedFirstChild: TagInput,
		AllowedLastChild:  TagOutput,
		RequiresChildren:  true,
		RequiresDAG:       true,
	}
}
func (c Case) ValidateChildren(children []ChildInfo) error {
	return validateIONodes(c.Sig.Input, c.Sig.Output, "case", children)
}
