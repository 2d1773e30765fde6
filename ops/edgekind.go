package ops

// EdgeKindTag discriminates the variants of EdgeKind.
type EdgeKindTag int

const (
	// EdgeValue carries a dataflow value of the given Type, classical or
	// linear.
	EdgeValue EdgeKindTag = iota
	// EdgeConst carries a classical constant or function value, used
	// for both Def/Declare's "const output" and LoadConstant/Call's
	// "const input" ports.
	EdgeConst
	// EdgeStateOrder carries no data; it only constrains execution
	// order between two operations that would otherwise be unordered.
	EdgeStateOrder
	// EdgeControlFlow connects basic blocks in a CFG sibling graph.
	EdgeControlFlow
	// EdgeResource is an auxiliary edge threading a resource set
	// requirement alongside a dataflow edge.
	EdgeResource
)

// EdgeKind is the kind of data (or non-data constraint) a port carries.
// Only the field matching Tag is meaningful.
type EdgeKind struct {
	Tag       EdgeKindTag
	ValueType Type        // EdgeValue
	ConstType Type        // EdgeConst
	Resources ResourceSet // EdgeResource
}

// Value builds an EdgeKind carrying a dataflow value of type t.
func Value(t Type) EdgeKind { return EdgeKind{Tag: EdgeValue, ValueType: t} }

// Const builds an EdgeKind carrying a classical constant or function
// value of type t.
func Const(t Type) EdgeKind { return EdgeKind{Tag: EdgeConst, ConstType: t} }

// StateOrder is the EdgeKind of an order-only edge.
var StateOrder = EdgeKind{Tag: EdgeStateOrder}

// ControlFlow is the EdgeKind of a basic-block-to-basic-block edge.
var ControlFlow = EdgeKind{Tag: EdgeControlFlow}

// Resource builds an EdgeKind threading the resource set rs.
func Resource(rs ResourceSet) EdgeKind { return EdgeKind{Tag: EdgeResource, Resources: rs} }

// IsLinear reports whether k is a Value edge of a linear type. Every
// other EdgeKind is classical/non-data.
func (k EdgeKind) IsLinear() bool { return k.Tag == EdgeValue && k.ValueType.IsLinear() }

// Equal reports whether k and other are the same kind.
func (k EdgeKind) Equal(other EdgeKind) bool {
	if k.Tag != other.Tag {
		return false
	}
	switch k.Tag {
	case EdgeValue:
		return k.ValueType.Equal(other.ValueType)
	case EdgeConst:
		return k.ConstType.Equal(other.ConstType)
	case EdgeResource:
		return k.Resources.Equal(other.Resources)
	default:
		return true
	}
}

// String renders k for diagnostics.
func (k EdgeKind) String() string {
	switch k.Tag {
	case EdgeValue:
		return "Value(" + k.ValueType.String() + ")"
	case EdgeConst:
		return "Const(" + k.ConstType.String() + ")"
	case EdgeStateOrder:
		return "StateOrder"
	case EdgeControlFlow:
		return "ControlFlow"
	case EdgeResource:
		return "Resource" + k.Resources.String()
	default:
		return "?"
	}
}
