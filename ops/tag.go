package ops

// Tag is a bitset position (or union of positions) in the containment
// lattice used by ValidityFlags.AllowedChildren/AllowedFirstChild/
// AllowedLastChild: a concrete node's Tag() is always a single bit; a
// Tag used as a filter is the OR of every bit it accepts.
type Tag uint32

// Leaf bits: each concrete OpType variant owns exactly one of these.
const (
	TagModuleRoot Tag = 1 << iota
	TagFuncDefn
	TagFuncDecl
	TagAliasDefn
	TagAliasDecl
	TagConst
	TagLoadConstant
	TagCall
	TagCallIndirect
	TagInput
	TagOutput
	TagDFG
	TagConditional
	TagCase
	TagTailLoop
	TagCFG
	TagBasicBlock
	TagBasicBlockExit
	TagLeaf
)

// TagNone accepts nothing: the default AllowedChildren for non-container
// operations.
const TagNone Tag = 0

// TagAny accepts any concrete tag: the default AllowedFirstChild/
// AllowedLastChild, since most containers don't additionally constrain
// their first/last child beyond AllowedChildren.
const TagAny Tag = TagModuleRoot | TagFuncDefn | TagFuncDecl | TagAliasDefn | TagAliasDecl |
	TagConst | TagLoadConstant | TagCall | TagCallIndirect | TagInput | TagOutput |
	TagDFG | TagConditional | TagCase | TagTailLoop | TagCFG | TagBasicBlock |
	TagBasicBlockExit | TagLeaf

// TagModuleOp is the set of operations allowed directly under Module:
// function definitions/declarations, alias definitions/declarations and
// module-level constants.
const TagModuleOp = TagFuncDefn | TagFuncDecl | TagAliasDefn | TagAliasDecl | TagConst

// TagDataflowOp is the set of operations allowed as the interior of a
// dataflow sibling graph (a Def/DFG/Case/TailLoop/BasicBlock body),
// including the Input/Output boundary nodes themselves. Local constants
// are members too: a Const may sit beside the LoadConstant that reads
// it, joined by a Const-kind edge outside the dataflow DAG proper.
const TagDataflowOp = TagInput | TagOutput | TagDFG | TagConditional | TagTailLoop |
	TagCFG | TagCall | TagCallIndirect | TagLoadConstant | TagLeaf | TagConst

// TagDataflowContainer is the set of operations whose children form a
// dataflow sibling graph — the containers a simple replacement may
// rewrite inside.
const TagDataflowContainer = TagFuncDefn | TagDFG | TagCase | TagTailLoop | TagBasicBlock

// TagFunction is Def or Declare: operations that can be the source of a
// Const-kind inter-graph edge carrying a function value.
const TagFunction = TagFuncDefn | TagFuncDecl

// TagConstInputOp is the set of operations whose Signature declares a
// constant input slot beyond their ordinary dataflow row (used by the
// DAG check to count local Const predecessors that sit outside the
// Input→Output chain). CallIndirect takes its function reference as an
// ordinary dataflow input instead, so it is not a member.
const TagConstInputOp = TagLoadConstant | TagCall

// TagBasicBlockAny accepts either basic-block flavor, the AllowedChildren
// for CFG (whose AllowedLastChild further narrows to TagBasicBlockExit).
const TagBasicBlockAny = TagBasicBlock | TagBasicBlockExit

// Contains reports whether t (used as a filter set) accepts the single
// concrete tag other.
func (t Tag) Contains(other Tag) bool { return t&other == other }

// IsEmpty reports whether t accepts nothing.
func (t Tag) IsEmpty() bool { return t == TagNone }

var tagNames = map[Tag]string{
	TagModuleRoot:     "Module",
	TagFuncDefn:       "FuncDefn",
	TagFuncDecl:       "FuncDecl",
	TagAliasDefn:      "AliasDefn",
	TagAliasDecl:      "AliasDecl",
	TagConst:          "Const",
	TagLoadConstant:   "LoadConstant",
	TagCall:           "Call",
	TagCallIndirect:   "CallIndirect",
	TagInput:          "Input",
	TagOutput:         "Output",
	TagDFG:            "DFG",
	TagConditional:    "Conditional",
	TagCase:           "Case",
	TagTailLoop:       "TailLoop",
	TagCFG:            "CFG",
	TagBasicBlock:     "BasicBlock",
	TagBasicBlockExit: "BasicBlockExit",
	TagLeaf:           "Leaf",
}

// String renders t for diagnostics. A filter set renders as its member
// names joined with "|"; a single bit renders as its bare name.
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	if t == TagNone {
		return "None"
	}
	s := ""
	for bit := Tag(1); bit <= t; bit <<= 1 {
		if t&bit == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += tagNames[bit]
	}

	return s
}
