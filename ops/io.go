package ops

// Input is the boundary node producing a dataflow sibling graph's inputs
// as its outputs; it has no incoming dataflow ports. Every dataflow
// container (Def, DFG, Case, TailLoop, BasicBlock) requires Input as
// its first child.
type Input struct {
	Types TypeRow
}

func (Input) Name() string                    { return "Input" }
func (Input) Tag() Tag                          { return TagInput }
func (i Input) Signature() Signature {
	return Signature{Output: i.Types, OtherOutputs: &StateOrder}
}
func (Input) ValidityFlags() ValidityFlags      { return DefaultValidityFlags() }
func (Input) ValidateChildren([]ChildInfo) error { return nil }

// Output is the boundary node consuming a dataflow sibling graph's
// outputs as its inputs; it has no outgoing dataflow ports. Every
// dataflow container requires Output as its last child.
type Output struct {
	Types TypeRow
}

func (Output) Name() string                    { return "Output" }
func (Output) Tag() Tag                          { return TagOutput }
func (o Output) Signature() Signature {
	return Signature{Input: o.Types, OtherInputs: &StateOrder}
}
func (Output) ValidityFlags() ValidityFlags      { return DefaultValidityFlags() }
func (Output) ValidateChildren([]ChildInfo) error { return nil }
