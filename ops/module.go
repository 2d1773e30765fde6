package ops

// Module is the root of a module, parent of every other OpType. It has
// no ports and no signature of its own.
type Module struct{}

func (Module) Name() string { return "Module" }
func (Module) Tag() Tag     { return TagModuleRoot }
func (Module) Signature() Signature {
	return Signature{}
}
func (Module) ValidityFlags() ValidityFlags {
	return ValidityFlags{
		AllowedChildren:   TagModuleOp,
		AllowedFirstChild: TagAny,
		AllowedLastChild:  TagAny,
	}
}
func (Module) ValidateChildren([]ChildInfo) error { return nil }

// FuncDefn is a function definition; its children are the body of the
// definition. Its single output port carries a Graph-typed constant
// referencing its own signature, the value callers load with
// LoadConstant or invoke with Call.
type FuncDefn struct {
	FuncName string
	Sig      Signature
}

func (d FuncDefn) Name() string { return "FuncDefn:" + d.FuncName }
func (FuncDefn) Tag() Tag       { return TagFuncDefn }
func (d FuncDefn) Signature() Signature {
	graphType := Graph(d.Sig)

	return Signature{OtherOutputs: constEdge(graphType)}
}
func (FuncDefn) ValidityFlags() ValidityFlags {
	return ValidityFlags{
		AllowedChildren:   TagDataflowOp,
		AllowedFirstChild: TagInput,
		AllowedLastChild:  TagOutput,
		RequiresChildren:  true,
		RequiresDAG:       true,
	}
}
func (d FuncDefn) ValidateChildren(children []ChildInfo) error {
	return validateIONodes(d.Sig.Input, d.Sig.Output, "function definition", children)
}

// FuncDecl is an external function declaration, resolved at link time.
// Unlike FuncDefn it has no children, but it exposes the same
// Graph-typed constant output.
type FuncDecl struct {
	FuncName string
	Sig      Signature
}

func (d FuncDecl) Name() string { return "FuncDecl:" + d.FuncName }
func (FuncDecl) Tag() Tag       { return TagFuncDecl }
func (d FuncDecl) Signature() Signature {
	return Signature{OtherOutputs: constEdge(Graph(d.Sig))}
}
func (FuncDecl) ValidityFlags() ValidityFlags     { return DefaultValidityFlags() }
func (FuncDecl) ValidateChildren([]ChildInfo) error { return nil }

// AliasDefn is a type alias definition, carried for debug/metadata
// purposes only; it has no ports.
type AliasDefn struct {
	AliasName  string
	Definition Type
}

func (a AliasDefn) Name() string                    { return "AliasDefn:" + a.AliasName }
func (AliasDefn) Tag() Tag                          { return TagAliasDefn }
func (AliasDefn) Signature() Signature              { return Signature{} }
func (AliasDefn) ValidityFlags() ValidityFlags      { return DefaultValidityFlags() }
func (AliasDefn) ValidateChildren([]ChildInfo) error { return nil }

// AliasDecl is a type alias declaration, resolved at link time.
type AliasDecl struct {
	AliasName string
	Linear    bool
}

func (a AliasDecl) Name() string                    { return "AliasDecl:" + a.AliasName }
func (AliasDecl) Tag() Tag                          { return TagAliasDecl }
func (AliasDecl) Signature() Signature              { return Signature{} }
func (AliasDecl) ValidityFlags() ValidityFlags      { return DefaultValidityFlags() }
func (AliasDecl) ValidateChildren([]ChildInfo) error { return nil }

// ConstOp is a module- or dataflow-sibling-level constant. Its single
// output port carries the declared classical type; Value must
// typecheck against Declared (checked by package hugr's validator via
// Typecheck, not here, so the zero value remains cheap to construct).
type ConstOp struct {
	Declared Type
	Value    ConstValue
}

func (ConstOp) Name() string { return "Const" }
func (ConstOp) Tag() Tag     { return TagConst }
func (c ConstOp) Signature() Signature {
	return Signature{OtherOutputs: constEdge(c.Declared)}
}
func (ConstOp) ValidityFlags() ValidityFlags      { return DefaultValidityFlags() }
func (ConstOp) ValidateChildren([]ChildInfo) error { return nil }

func constEdge(t Type) *EdgeKind {
	k := Const(t)

	return &k
}
