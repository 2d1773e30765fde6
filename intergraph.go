// intergraph.go checks the legality of an edge whose two endpoints do
// not share a parent region: such an edge may only carry a classical
// Value, a Const reference to a literal constant or a function, or a
// StateOrder marker, and must additionally take one of two shapes —
// External (target nested in a sibling of source's region, ordered by
// an accompanying StateOrder edge) or Dominator (target a block of the
// CFG directly containing source's region, dominated by source's own
// block).

package hugr

import "github.com/CQCL-DEV/hugr/ops"

func (c *validationContext) validateIntergraphEdge(src Node, srcPort Port, tgt Node, tgtPort Port, kind ops.EdgeKind) error {
	switch kind.Tag {
	case ops.EdgeStateOrder:
		return nil
	case ops.EdgeConst:
		srcOp := c.h.GetOptype(src)
		if srcOp.Tag() == ops.TagConst {
			return nil
		}
		if ops.TagFunction.Contains(srcOp.Tag()) {
			return nil
		}

		return &ValidationError{Kind: ErrInterGraphEdge, Node: src, Other: tgt, Err: &InterGraphEdgeError{
			Kind: ErrInvalidConstSrc, From: src, To: tgt,
			Detail: "a constant inter-graph edge must originate from a literal constant or a function",
		}}
	case ops.EdgeValue:
		if kind.IsLinear() {
			return c.nonClassicalErr(src, tgt)
		}
	default:
		return c.nonClassicalErr(src, tgt)
	}

	// Walk up from the target until an ancestor's parent matches either
	// the source's parent (external case) or the source's grandparent
	// (dominator case, where that grandparent is the CFG holding both
	// endpoints' basic blocks).
	srcParent, _ := c.h.Parent(src)
	srcGrandparent, hasGrandparent := c.h.Parent(srcParent)

	ancestor, ok := c.h.Parent(tgt)
	if !ok {
		return c.noRelationErr(src, tgt)
	}
	for {
		ancestorParent, ok := c.h.Parent(ancestor)
		if !ok {
			return c.noRelationErr(src, tgt)
		}
		if ancestorParent == srcParent {
			if !c.hasStateOrderEdge(src, ancestor) {
				return &ValidationError{Kind: ErrInterGraphEdge, Node: src, Other: tgt, Err: &InterGraphEdgeError{
					Kind: ErrMissingOrderEdge, From: src, To: tgt,
					Detail: "external edge requires an accompanying state-order edge to the ancestor sibling",
				}}
			}

			return nil
		}

		if hasGrandparent && ancestorParent == srcGrandparent {
			if c.h.GetOptype(ancestorParent).Tag() != ops.TagCFG {
				return &ValidationError{Kind: ErrInterGraphEdge, Node: src, Other: tgt, Err: &InterGraphEdgeError{
					Kind: ErrNonCFGAncestor, From: src, To: tgt,
					Detail: "dominator-shaped edge's enclosing container is not a CFG",
				}}
			}
			dt := c.dominatorTreeFor(ancestorParent)
			if !dt.dominates(srcParent, ancestor) {
				return &ValidationError{Kind: ErrInterGraphEdge, Node: src, Other: tgt, Err: &InterGraphEdgeError{
					Kind: ErrNonDominatedAncestor, From: src, To: tgt,
					Detail: "target's basic block is not dominated by source's enclosing block",
				}}
			}

			return nil
		}

		ancestor = ancestorParent
	}
}

func (c *validationContext) nonClassicalErr(src, tgt Node) error {
	return &ValidationError{Kind: ErrInterGraphEdge, Node: src, Other: tgt, Err: &InterGraphEdgeError{
		Kind: ErrNonClassicalData, From: src, To: tgt,
		Detail: "only classical values, constants and state-order markers may cross region boundaries",
	}}
}

func (c *validationContext) noRelationErr(src, tgt Node) error {
	return &ValidationError{Kind: ErrInterGraphEdge, Node: src, Other: tgt, Err: &InterGraphEdgeError{
		Kind: ErrNoRelation, From: src, To: tgt,
		Detail: "target is not reachable from source's region by any External or Dominator relation",
	}}
}

// hasStateOrderEdge reports whether a already has an outgoing
// StateOrder-kind link to b (the "other edge" AddOtherEdge creates).
func (c *validationContext) hasStateOrderEdge(a, b Node) bool {
	op := c.h.GetOptype(a)
	offset, ok := otherPortOffset(op, Outgoing)
	if !ok {
		return false
	}
	for _, ep := range c.h.LinkedPorts(a, Out(offset)) {
		if ep.Node == b {
			return true
		}
	}

	return false
}
