package hugr

import "github.com/CQCL-DEV/hugr/portgraph"

// Node identifies a node within a HUGR, stable for the node's lifetime
// until it is removed. Shared with packages portgraph, hier and ops so
// every layer of this module indexes the same identifier space.
type Node = portgraph.NodeID

// Port addresses one port of a node: a direction plus an offset.
type Port = portgraph.Port

// Direction distinguishes a node's input ports from its output ports.
type Direction = portgraph.Direction

// Incoming and Outgoing re-export portgraph's Direction values so
// callers of this package rarely need to import portgraph directly.
const (
	Incoming = portgraph.Incoming
	Outgoing = portgraph.Outgoing
)

// In and Out build Ports at the given offset, re-exported from portgraph
// for the same reason.
func In(offset int) Port { return portgraph.In(offset) }
func Out(offset int) Port { return portgraph.Out(offset) }

// Wire is a logical value-producing endpoint: an outgoing port of a
// node, named by its offset rather than a full Port so a Wire can never
// accidentally name an incoming port.
type Wire struct {
	Node   Node
	Offset int
}

// NewWire builds a Wire from a node and an outgoing Port.
func NewWire(node Node, port Port) Wire { return Wire{Node: node, Offset: port.Offset} }

// Source returns the outgoing Port this wire names.
func (w Wire) Source() Port { return Out(w.Offset) }
