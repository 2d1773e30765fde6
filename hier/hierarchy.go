package hier

import "github.com/CQCL-DEV/hugr/portgraph"

// NodeID is the hierarchy's node identifier, shared with package
// portgraph so package hugr can index both structures with one ID.
type NodeID = portgraph.NodeID

// link is one node's position within its parent's child list.
type link struct {
	parent      NodeID
	hasParent   bool
	prev, next  NodeID
	hasPrev     bool
	hasNext     bool
	firstChild  NodeID
	lastChild   NodeID
	hasChildren bool
	childCount  int
}

// Hierarchy is the tree described in the package doc. The zero value is
// not ready for use; construct one with NewHierarchy.
type Hierarchy struct {
	root  NodeID
	nodes map[NodeID]*link
}

// NewHierarchy returns a Hierarchy containing only root, which has no
// parent and no children.
func NewHierarchy(root NodeID) *Hierarchy {
	h := &Hierarchy{root: root, nodes: make(map[NodeID]*link)}
	h.nodes[root] = &link{}

	return h
}

// Root returns the hierarchy's single root node.
func (h *Hierarchy) Root() NodeID { return h.root }

// Add registers node as a known but unattached (parentless, childless)
// member of the hierarchy. Every node must be added before it can be
// named by SetParent, InsertBefore or InsertAfter.
func (h *Hierarchy) Add(node NodeID) {
	if _, ok := h.nodes[node]; ok {
		return
	}
	h.nodes[node] = &link{}
}

// Remove forgets node entirely. The caller must Detach node first if it
// has a parent; Remove does not touch child-list pointers, mirroring
// the package's separation of hierarchy bookkeeping from multigraph
// bookkeeping — coordinating the two is the caller's job (see hugr).
func (h *Hierarchy) Remove(node NodeID) {
	delete(h.nodes, node)
}

// IsRoot reports whether node is the hierarchy root.
func (h *Hierarchy) IsRoot(node NodeID) bool { return node == h.root }

// Parent returns node's parent and true, or zero and false if node is
// the root or detached.
func (h *Hierarchy) Parent(node NodeID) (NodeID, bool) {
	l, ok := h.nodes[node]
	if !ok || !l.hasParent {
		return NodeID(0), false
	}

	return l.parent, true
}

// ChildCount returns the number of children parent has. Complexity: O(1).
func (h *Hierarchy) ChildCount(parent NodeID) int {
	l, ok := h.nodes[parent]
	if !ok {
		return 0
	}

	return l.childCount
}

// FirstChild returns parent's first child and true, or zero and false
// if parent has no children.
func (h *Hierarchy) FirstChild(parent NodeID) (NodeID, bool) {
	l, ok := h.nodes[parent]
	if !ok || !l.hasChildren {
		return NodeID(0), false
	}

	return l.firstChild, true
}

// LastChild returns parent's last child and true, or zero and false if
// parent has no children.
func (h *Hierarchy) LastChild(parent NodeID) (NodeID, bool) {
	l, ok := h.nodes[parent]
	if !ok || !l.hasChildren {
		return NodeID(0), false
	}

	return l.lastChild, true
}

// NextSibling returns the child immediately after node in its parent's
// order, and true, or zero and false if node is last (or detached).
func (h *Hierarchy) NextSibling(node NodeID) (NodeID, bool) {
	l, ok := h.nodes[node]
	if !ok || !l.hasNext {
		return NodeID(0), false
	}

	return l.next, true
}

// PrevSibling is the mirror of NextSibling.
func (h *Hierarchy) PrevSibling(node NodeID) (NodeID, bool) {
	l, ok := h.nodes[node]
	if !ok || !l.hasPrev {
		return NodeID(0), false
	}

	return l.prev, true
}

// ChildrenOrdered walks parent's child list front to back. Complexity:
// O(child_count); intended for validation and debug rendering, not hot
// per-edge paths.
func (h *Hierarchy) ChildrenOrdered(parent NodeID) []NodeID {
	out := make([]NodeID, 0, h.ChildCount(parent))
	cur, ok := h.FirstChild(parent)
	for ok {
		out = append(out, cur)
		cur, ok = h.NextSibling(cur)
	}

	return out
}

// Detach removes node from its parent's child list, leaving node
// parentless. Detaching the root is an error. Detaching an already
// detached node is a no-op. Complexity: O(1).
func (h *Hierarchy) Detach(node NodeID) error {
	if node == h.root {
		return ErrAlreadyRoot
	}
	l, ok := h.nodes[node]
	if !ok {
		return ErrNoSuchNode
	}
	if !l.hasParent {
		return nil
	}
	parent := h.nodes[l.parent]

	if l.hasPrev {
		h.nodes[l.prev].next, h.nodes[l.prev].hasNext = l.next, l.hasNext
	} else {
		parent.firstChild, parent.hasChildren = l.next, l.hasNext
	}
	if l.hasNext {
		h.nodes[l.next].prev, h.nodes[l.next].hasPrev = l.prev, l.hasPrev
	} else {
		parent.lastChild = l.prev
		if !l.hasPrev {
			parent.hasChildren = false
		}
	}
	parent.childCount--

	l.hasParent, l.hasPrev, l.hasNext = false, false, false

	return nil
}

// PushChild detaches node (if attached) and appends it as parent's new
// last child. Complexity: O(1).
func (h *Hierarchy) PushChild(parent, node NodeID) error {
	if _, ok := h.nodes[parent]; !ok {
		return ErrNoSuchNode
	}
	if err := h.detachIfAttached(node); err != nil {
		return err
	}
	p := h.nodes[parent]
	n := h.nodes[node]

	if p.hasChildren {
		last := h.nodes[p.lastChild]
		last.next, last.hasNext = node, true
		n.prev, n.hasPrev = p.lastChild, true
	} else {
		p.firstChild, p.hasChildren = node, true
	}
	p.lastChild = node
	p.childCount++
	n.parent, n.hasParent = parent, true

	return nil
}

// SetParent is an alias for PushChild: it attaches node as the new last
// child of parent, detaching it from any previous location first.
func (h *Hierarchy) SetParent(parent, node NodeID) error {
	return h.PushChild(parent, node)
}

// InsertBefore detaches node (if attached) and splices it into sibling's
// child list immediately before sibling. sibling must already have a
// parent. Complexity: O(1).
func (h *Hierarchy) InsertBefore(node, sibling NodeID) error {
	sib, ok := h.nodes[sibling]
	if !ok {
		return ErrNoSuchNode
	}
	if !sib.hasParent {
		return ErrNotASibling
	}
	if err := h.detachIfAttached(node); err != nil {
		return err
	}
	parent := h.nodes[sib.parent]
	n := h.nodes[node]

	n.next, n.hasNext = sibling, true
	if sib.hasPrev {
		n.prev, n.hasPrev = sib.prev, true
		h.nodes[sib.prev].next = node
	} else {
		parent.firstChild = node
	}
	sib.prev, sib.hasPrev = node, true
	parent.childCount++
	n.parent, n.hasParent = sib.parent, true

	return nil
}

// InsertAfter is the mirror of InsertBefore: node is spliced in
// immediately after sibling.
func (h *Hierarchy) InsertAfter(node, sibling NodeID) error {
	sib, ok := h.nodes[sibling]
	if !ok {
		return ErrNoSuchNode
	}
	if !sib.hasParent {
		return ErrNotASibling
	}
	if err := h.detachIfAttached(node); err != nil {
		return err
	}
	parent := h.nodes[sib.parent]
	n := h.nodes[node]

	n.prev, n.hasPrev = sibling, true
	if sib.hasNext {
		n.next, n.hasNext = sib.next, true
		h.nodes[sib.next].prev = node
	} else {
		parent.lastChild = node
	}
	sib.next, sib.hasNext = node, true
	parent.childCount++
	n.parent, n.hasParent = sib.parent, true

	return nil
}

// detachIfAttached makes sure node is known to the hierarchy and, if it
// currently has a parent, removes it from that parent's child list.
func (h *Hierarchy) detachIfAttached(node NodeID) error {
	if _, ok := h.nodes[node]; !ok {
		return ErrNoSuchNode
	}
	if node == h.root {
		return ErrAlreadyRoot
	}
	if h.nodes[node].hasParent {
		return h.Detach(node)
	}

	return nil
}
