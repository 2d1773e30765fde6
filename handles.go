package hugr

import "fmt"

// HandleTag discriminates the flavor of node a Handle wraps. One struct
// carrying a tag stands in for a family of per-flavor wrapper types;
// ten near-identical wrappers would buy nothing for a package that does
// not itself implement the builder surface they exist to serve.
type HandleTag int

const (
	// HandleOp tags a handle to a leaf operation.
	HandleOp HandleTag = iota
	// HandleDFG tags a handle to a DFG node.
	HandleDFG
	// HandleCFG tags a handle to a CFG node.
	HandleCFG
	// HandleFunc tags a handle to a FuncDefn or FuncDecl node.
	HandleFunc
	// HandleBasicBlock tags a handle to a BasicBlock node.
	HandleBasicBlock
	// HandleCase tags a handle to a Case node.
	HandleCase
	// HandleTailLoop tags a handle to a TailLoop node.
	HandleTailLoop
	// HandleConditional tags a handle to a Conditional node.
	HandleConditional
	// HandleConst tags a handle to a Const node.
	HandleConst
	// HandleNewType tags a handle naming a type alias rather than an
	// operation at all; it carries no value outputs.
	HandleNewType
)

func (t HandleTag) String() string {
	switch t {
	case HandleOp:
		return "Op"
	case HandleDFG:
		return "DFG"
	case HandleCFG:
		return "CFG"
	case HandleFunc:
		return "Func"
	case HandleBasicBlock:
		return "BasicBlock"
	case HandleCase:
		return "Case"
	case HandleTailLoop:
		return "TailLoop"
	case HandleConditional:
		return "Conditional"
	case HandleConst:
		return "Const"
	case HandleNewType:
		return "NewType"
	default:
		return "?"
	}
}

// compatibleConversions lists, for each tag, the tags a Handle wearing
// it may be cheaply reinterpreted as — e.g. a DFG handle produced while
// building a function body converts to a Func handle once the function is
// finished, and to a Case/TailLoop handle when the same DFG shape is
// reused as a Conditional arm or loop body.
var compatibleConversions = map[HandleTag]map[HandleTag]bool{
	HandleDFG: {HandleFunc: true, HandleCase: true, HandleTailLoop: true, HandleBasicBlock: true},
}

// Handle is an opaque, build-facing reference to a node of a particular
// tag, optionally carrying the number of dataflow value outputs the
// node exposes so Wires can be produced on demand without looking the
// node back up in a HUGR. The core's own operations (Validate,
// ApplySimpleReplacement) never consume a Handle — they work directly
// in terms of Node — so Handle exists purely as a builder-facing
// surface; nothing in this package constructs one except NewHandle,
// left to external builder code.
type Handle struct {
	node            Node
	tag             HandleTag
	numValueOutputs int
}

// NewHandle wraps node with tag, recording that it exposes
// numValueOutputs dataflow value outputs.
func NewHandle(node Node, tag HandleTag, numValueOutputs int) Handle {
	return Handle{node: node, tag: tag, numValueOutputs: numValueOutputs}
}

// Node returns the underlying node identifier.
func (h Handle) Node() Node { return h.node }

// Tag returns the handle's compile-time-intended flavor.
func (h Handle) Tag() HandleTag { return h.tag }

// NumValueOutputs returns how many dataflow value outputs h exposes.
func (h Handle) NumValueOutputs() int { return h.numValueOutputs }

// Outputs returns every value-output Wire h exposes, in offset order.
func (h Handle) Outputs() []Wire {
	wires := make([]Wire, h.numValueOutputs)
	for i := range wires {
		wires[i] = Wire{Node: h.node, Offset: i}
	}

	return wires
}

// OutWire returns the Wire at the given output offset, without checking
// that offset is in range for h's NumValueOutputs.
func (h Handle) OutWire(offset int) Wire { return Wire{Node: h.node, Offset: offset} }

// As reinterprets h as the given tag, succeeding only if tag is listed
// as a compatible conversion target for h's current tag (or is h's
// current tag already).
func (h Handle) As(tag HandleTag) (Handle, bool) {
	if tag == h.tag {
		return h, true
	}
	if compatibleConversions[h.tag][tag] {
		return Handle{node: h.node, tag: tag, numValueOutputs: h.numValueOutputs}, true
	}

	return Handle{}, false
}

func (h Handle) String() string {
	return fmt.Sprintf("%s(%d)", h.tag, h.node)
}
