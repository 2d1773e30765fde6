// dominator.go computes dominator trees over a CFG's basic blocks (for
// Dominator-shaped inter-graph edges) and runs the bounded-DAG check
// over dataflow sibling regions (for RequiresDAG containers).

package hugr

import (
	"fmt"

	"github.com/CQCL-DEV/hugr/ops"
)

// dominatorTree is the immediate-dominator relation for one CFG region,
// computed once per Validate run and cached by validationContext.
type dominatorTree struct {
	idom map[Node]Node
}

// dominates reports whether a dominates b (including a == b) in dt.
func (dt *dominatorTree) dominates(a, b Node) bool {
	n := b
	for {
		if n == a {
			return true
		}
		parent, ok := dt.idom[n]
		if !ok || parent == n {
			return false
		}
		n = parent
	}
}

// buildDominatorTree computes immediate dominators for the basic blocks
// of a CFG, given its entry block and a successor function restricted to
// ControlFlow-kind edges within that CFG.
func buildDominatorTree(entry Node, succ map[Node][]Node) *dominatorTree {
	var postorder []Node
	visited := make(map[Node]bool)
	var visit func(Node)
	visit = func(n Node) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, m := range succ[n] {
			visit(m)
		}
		postorder = append(postorder, n)
	}
	visit(entry)

	postIndex := make(map[Node]int, len(postorder))
	for i, n := range postorder {
		postIndex[n] = i
	}
	rpo := make([]Node, len(postorder))
	for i, n := range postorder {
		rpo[len(postorder)-1-i] = n
	}

	pred := make(map[Node][]Node)
	for n, succs := range succ {
		for _, m := range succs {
			if visited[m] {
				pred[m] = append(pred[m], n)
			}
		}
	}

	intersect := func(a, b Node, idom map[Node]Node) Node {
		for a != b {
			for postIndex[a] < postIndex[b] {
				a = idom[a]
			}
			for postIndex[b] < postIndex[a] {
				b = idom[b]
			}
		}

		return a
	}

	idom := map[Node]Node{entry: entry}
	for changed := true; changed; {
		changed = false
		for _, n := range rpo {
			if n == entry {
				continue
			}
			var newIdom Node
			found := false
			for _, p := range pred[n] {
				if _, ok := idom[p]; !ok {
					continue
				}
				if !found {
					newIdom = p
					found = true

					continue
				}
				newIdom = intersect(newIdom, p, idom)
			}
			if !found {
				continue
			}
			if old, ok := idom[n]; !ok || old != newIdom {
				idom[n] = newIdom
				changed = true
			}
		}
	}

	return &dominatorTree{idom: idom}
}

// dominatorTreeFor returns (computing and caching on first use) the
// dominator tree of the CFG node cfg, whose entry block is its first
// hierarchy child.
func (c *validationContext) dominatorTreeFor(cfg Node) *dominatorTree {
	if dt, ok := c.dominators[cfg]; ok {
		return dt
	}

	entry, _ := c.h.FirstChild(cfg)
	succ := make(map[Node][]Node)
	for _, block := range c.h.Children(cfg) {
		count := c.h.PortCount(block, Outgoing)
		for offset := 0; offset < count; offset++ {
			for _, ep := range c.h.LinkedPorts(block, Out(offset)) {
				if parent, ok := c.h.Parent(ep.Node); ok && parent == cfg {
					succ[block] = append(succ[block], ep.Node)
				}
			}
		}
	}

	dt := buildDominatorTree(entry, succ)
	c.dominators[cfg] = dt

	return dt
}

// validateChildrenDAG checks that parent's children form a bounded DAG
// rooted at the region's Input node: a topological traversal from the
// first child along Value and StateOrder sibling edges must visit every
// child. A cycle leaves its participants unvisited, as does a child
// dangling outside the Input→Output flow, so one visited-count
// comparison covers both failure modes. Children feeding a sibling's
// constant-input slot sit outside the dataflow traversal entirely and
// are tallied through the consumer instead.
func (c *validationContext) validateChildrenDAG(parent Node, children []Node) error {
	childSet := make(map[Node]bool, len(children))
	for _, ch := range children {
		childSet[ch] = true
	}

	isDF := func(k ops.EdgeKind) bool {
		return k.Tag == ops.EdgeValue || k.Tag == ops.EdgeStateOrder
	}

	// In-degree over dataflow-kind edges between siblings, one unit per
	// parallel link.
	indeg := make(map[Node]int, len(children))
	for _, ch := range children {
		op := c.h.GetOptype(ch)
		count := c.h.PortCount(ch, Incoming)
		for offset := 0; offset < count; offset++ {
			kind, ok := ops.PortKind(op, In(offset))
			if !ok || !isDF(kind) {
				continue
			}
			if src, _, linked := c.h.LinkedPort(ch, In(offset)); linked && childSet[src] {
				indeg[ch]++
			}
		}
	}

	queue := []Node{children[0]}
	enqueued := map[Node]bool{children[0]: true}
	visited := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		visited++

		op := c.h.GetOptype(n)
		if ops.TagConstInputOp.Contains(op.Tag()) {
			// A sibling Const feeding this node's constant-input slot
			// counts as visited through its consumer.
			sig := op.Signature()
			if sig.ConstInput != nil {
				if src, _, linked := c.h.LinkedPort(n, In(len(sig.Input))); linked {
					if p, ok := c.h.Parent(src); ok && p == parent {
						visited++
					}
				}
			}
		}

		count := c.h.PortCount(n, Outgoing)
		for offset := 0; offset < count; offset++ {
			kind, ok := ops.PortKind(op, Out(offset))
			if !ok || !isDF(kind) {
				continue
			}
			for _, ep := range c.h.LinkedPorts(n, Out(offset)) {
				if !childSet[ep.Node] || enqueued[ep.Node] {
					continue
				}
				indeg[ep.Node]--
				if indeg[ep.Node] <= 0 {
					enqueued[ep.Node] = true
					queue = append(queue, ep.Node)
				}
			}
		}
	}

	if visited != len(children) {
		return &ValidationError{Kind: ErrNotABoundedDag, Node: parent,
			Detail: fmt.Sprintf("topological traversal from the Input child covers %d of %d children", visited, len(children))}
	}

	return nil
}
