// Package hier implements the hierarchy tree layered on top of a port
// graph: every node belongs to at most one parent, and a parent's
// children are kept in an explicit, caller-controlled order.
//
// The tree is independent of package portgraph — it tracks parent/child
// relationships between the same node identifiers a Graph uses, but has
// no notion of ports or links. Package hugr owns one portgraph.Graph and
// one hier.Hierarchy over the same NodeID space and keeps them in sync.
//
// Every mutation (SetParent, InsertBefore, InsertAfter, Detach) is O(1):
// children are stored as an intrusive doubly linked list per parent
// rather than a slice, so inserting or removing a child never touches
// its siblings.
package hier
