package ops

// Leaf is an extension-defined operation opaque to this core beyond its
// declared dataflow Signature: a generic escape hatch for anything an
// extension wants to add (gate libraries, arithmetic primitives, and the
// like) without this package knowing its semantics. It has no children.
type Leaf struct {
	OpName string
	Sig    Signature
}

func (l Leaf) Name() string          { return l.OpName }
func (Leaf) Tag() Tag                { return TagLeaf }
func (l Leaf) Signature() Signature  { return l.Sig }
func (Leaf) ValidityFlags() ValidityFlags      { return DefaultValidityFlags() }
func (Leaf) ValidateChildren([]ChildInfo) error { return nil }
