// errors.go — sentinel and wrapper errors raised directly by the HUGR
// container's mutators.

package hugr

import (
	"errors"
	"fmt"
)

// ErrNoSuchNode indicates a mutator was given a Node absent from this
// HUGR (never added, or already removed).
var ErrNoSuchNode = errors.New("hugr: no such node")

// ErrNoOtherPort indicates AddOtherEdge was asked to connect a
// node whose Signature declares no auxiliary (StateOrder-kind) port in
// the required direction.
var ErrNoOtherPort = errors.New("hugr: node has no auxiliary port")

// ConnectionError wraps a failure from the underlying portgraph.Graph's
// Link or Unlink operations.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("hugr: connection error: %s", e.Err) }
func (e *ConnectionError) Unwrap() error  { return e.Err }

// HierarchyError wraps a failure from the underlying hier.Hierarchy's
// attach and detach operations.
type HierarchyError struct {
	Err error
}

func (e *HierarchyError) Error() string { return fmt.Sprintf("hugr: hierarchy error: %s", e.Err) }
func (e *HierarchyError) Unwrap() error  { return e.Err }
