package hugr

import (
	"github.com/CQCL-DEV/hugr/hier"
	"github.com/CQCL-DEV/hugr/ops"
	"github.com/CQCL-DEV/hugr/portgraph"
)

// HUGR bundles a port graph, a hierarchy over the same node set and a
// per-node operation table behind one designated root node — the
// container described in the package doc.
//
// HUGR is not internally synchronized: every method assumes exclusive
// access for its duration, and callers needing concurrent access must
// serialize it themselves.
type HUGR struct {
	graph     *portgraph.Graph
	hierarchy *hier.Hierarchy
	opTypes   map[Node]ops.OpType
	root      Node
}

// New returns a HUGR containing only a root node carrying rootOp. For a
// well-formed, standalone HUGR rootOp is ops.Module{}; a HUGR being
// built as a simple-replacement fragment may use a different root
// operation (its root's tag is never itself checked against a parent,
// since it is never given one).
func New(rootOp ops.OpType) *HUGR {
	g := portgraph.NewGraph()
	nIn, nOut := ops.PortCounts(rootOp)
	root := g.AddNode(nIn, nOut)
	h := &HUGR{
		graph:     g,
		hierarchy: hier.NewHierarchy(root),
		opTypes:   map[Node]ops.OpType{root: rootOp},
		root:      root,
	}

	return h
}
