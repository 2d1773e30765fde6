package ops

// TailLoop repeats its body until the body's Output produces the "break"
// variant of its predicate. JustInputs/JustOutputs are consumed/produced
// once per iteration; Rest passes through every iteration unchanged.
type TailLoop struct {
	JustInputs  TypeRow
	JustOutputs TypeRow
	Rest        TypeRow
}

func (TailLoop) Name() string { return "TailLoop" }
func (TailLoop) Tag() Tag     { return TagTailLoop }
func (t TailLoop) Signature() Signature {
	input := make(TypeRow, 0, len(t.JustInputs)+len(t.Rest))
	input = append(input, t.JustInputs...)
	input = append(input, t.Rest...)

	output := make(TypeRow, 0, len(t.JustOutputs)+len(t.Rest))
	output = append(output, t.JustOutputs...)
	output = append(output, t.Rest...)

	return Signature{
		Input:        input,
		Output:       output,
		OtherInputs:  &StateOrder,
		OtherOutputs: &StateOrder,
	}
}
func (TailLoop) ValidityFlags() ValidityFlags {
	return ValidityFlags{
		AllowedChildren:   TagDataflowOp,
		AllowedFirstChild: TagInput,
		AllowedLastChild:  TagOutput,
		RequiresChildren:  true,
		RequiresDAG:       true,
	}
}

// ValidateChildren requires the body Input to take JustInputs++Rest and
// the body Output to produce a predicate selecting between continuing
// with JustInputs or exiting with JustOutputs, followed by Rest.
func (t TailLoop) ValidateChildren(children []ChildInfo) error {
	bodyInput := make(TypeRow, 0, len(t.JustInputs)+len(t.Rest))
	bodyInput = append(bodyInput, t.JustInputs...)
	bodyInput = append(bodyInput, t.Rest...)

	predicate := Predicate(t.JustInputs, t.JustOutputs)
	bodyOutput := make(TypeRow, 0, 1+len(t.Rest))
	bodyOutput = append(bodyOutput, predicate)
	bodyOutput = append(bodyOutput, t.Rest...)

	return validateIONodes(bodyInput, bodyOutput, "tail loop", children)
}
