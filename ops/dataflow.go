package ops

// DFG is a nested dataflow graph: its children form a dataflow sibling
// graph with the same external Sig the DFG node itself exposes.
type DFG struct {
	Sig Signature
}

func (DFG) Name() string          { return "DFG" }
func (DFG) Tag() Tag              { return TagDFG }
func (d DFG) Signature() Signature { return d.Sig }
func (DFG) ValidityFlags() ValidityFlags {
	return ValidityFlags{
		AllowedChildren:   TagDataflowOp,
		AllowedFirstChild: TagInput,
		AllowedLastChild:  TagOutput,
		RequiresChildren:  true,
		RequiresDAG:       true,
	}
}
func (d DFG) ValidateChildren(children []ChildInfo) error {
	return validateIONodes(d.Sig.Input, d.Sig.Output, "nested graph", children)
}

// LoadConstant loads the value referenced by a sibling Const node's
// output wire onto an ordinary dataflow port of the same type. It has
// no proper dataflow input: its only input is the ConstInput slot.
type LoadConstant struct {
	Typ Type
}

func (LoadConstant) Name() string { return "LoadConstant" }
func (LoadConstant) Tag() Tag     { return TagLoadConstant }
func (l LoadConstant) Signature() Signature {
	t := l.Typ

	return Signature{
		Output:       TypeRow{l.Typ},
		ConstInput:   &t,
		OtherInputs:  &StateOrder,
		OtherOutputs: &StateOrder,
	}
}
func (LoadConstant) ValidityFlags() ValidityFlags      { return DefaultValidityFlags() }
func (LoadConstant) ValidateChildren([]ChildInfo) error { return nil }

// Call invokes a sibling-or-ancestor FuncDefn/FuncDecl referenced via
// its Graph-typed constant output. Call's own dataflow row is the
// callee's signature; the callee reference itself arrives through the
// ConstInput slot, not as a dataflow input.
type Call struct {
	Callee Signature
}

func (Call) Name() string { return "Call" }
func (Call) Tag() Tag     { return TagCall }
func (c Call) Signature() Signature {
	graphType := Graph(c.Callee)

	return Signature{
		Input:        c.Callee.Input,
		Output:       c.Callee.Output,
		ConstInput:   &graphType,
		OtherInputs:  &StateOrder,
		OtherOutputs: &StateOrder,
	}
}
func (Call) ValidityFlags() ValidityFlags      { return DefaultValidityFlags() }
func (Call) ValidateChildren([]ChildInfo) error { return nil }

// CallIndirect invokes a dynamically-chosen function: the function
// reference arrives as an ordinary leading dataflow input of Graph type,
// not through the ConstInput slot, so the callee may vary per
// invocation.
type CallIndirect struct {
	Callee Signature
}

func (CallIndirect) Name() string { return "CallIndirect" }
func (CallIndirect) Tag() Tag     { return TagCallIndirect }
func (c CallIndirect) Signature() Signature {
	input := make(TypeRow, 0, len(c.Callee.Input)+1)
	input = append(input, Graph(c.Callee))
	input = append(input, c.Callee.Input...)

	return Signature{
		Input:        input,
		Output:       c.Callee.Output,
		OtherInputs:  &StateOrder,
		OtherOutputs: &StateOrder,
	}
}
func (CallIndirect) ValidityFlags() ValidityFlags      { return DefaultValidityFlags() }
func (CallIndirect) ValidateChildren([]ChildInfo) error { return nil }
