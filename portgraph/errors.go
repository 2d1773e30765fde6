// errors.go — sentinel errors for the portgraph package.
//
// Only sentinel variables are exported; callers branch with errors.Is.
// Context (which node, which offset) is attached by wrapping with %w at
// the call site.

package portgraph

import (
	"errors"
	"fmt"
)

// ErrNoSuchNode indicates an operation referenced a NodeID not present
// in the graph (never added, or already removed).
var ErrNoSuchNode = errors.New("portgraph: no such node")

// ErrPortOutOfRange indicates a Port offset >= the node's port count in
// that direction.
var ErrPortOutOfRange = errors.New("portgraph: port offset out of range")

// ErrIncomingPortOccupied indicates Link was called with a target
// incoming port that already has a link. Incoming ports never fan in;
// Unlink the existing connection first.
var ErrIncomingPortOccupied = errors.New("portgraph: incoming port already linked")

// ErrNotLinked indicates Unlink was called on a port with no live link
// at the given (sub-)offset.
var ErrNotLinked = errors.New("portgraph: port is not linked")

// nodeError wraps a sentinel with the offending NodeID so callers can
// both errors.Is against the sentinel and print which node misbehaved.
type nodeError struct {
	id  NodeID
	err error
}

func (e *nodeError) Error() string { return fmt.Sprintf("%s: node %d", e.err, e.id) }
func (e *nodeError) Unwrap() error { return e.err }

// portError additionally records the offending Port.
type portError struct {
	id   NodeID
	port Port
	err  error
}

func (e *portError) Error() string {
	return fmt.Sprintf("%s: node %d, %s port %d", e.err, e.id, e.port.Direction, e.port.Offset)
}
func (e *portError) Unwrap() error { return e.err }
