package hier

import "errors"

// ErrNoSuchNode indicates an operation referenced a node never
// registered with this Hierarchy (see Add).
var ErrNoSuchNode = errors.New("hier: no such node")

// ErrAlreadyRoot indicates SetParent or Detach was asked to change the
// hierarchy's single root node, which has no parent by construction.
var ErrAlreadyRoot = errors.New("hier: node is the hierarchy root")

// ErrNotASibling indicates InsertBefore/InsertAfter was given a sibling
// reference that has no parent (is detached or is the root).
var ErrNotASibling = errors.New("hier: reference node has no parent to share")
