// Package portgraph implements the port graph substrate: nodes carry
// ordered input and output ports (append-only, so offsets stay stable),
// and links join an outgoing port of one node to an incoming port of
// another.
//
// A Graph is deliberately kind-agnostic — it knows nothing about value
// types, resources, or the hierarchy layered on top in package hier. It
// only enforces the shape every higher layer relies on:
//
//	• an incoming port accepts at most one link (no fan-in);
//	• an outgoing port may fan out to any number of incoming ports, each
//	  fan-out branch addressed by a stable sub-port offset assigned in
//	  link order;
//	• port offsets, once assigned, never move: removing a link tombstones
//	  its sub-port slot instead of shifting the ones after it.
//
// Higher layers (package ops, package hugr) are responsible for rejecting
// fan-out on ports whose edge kind forbids it; Graph itself has no notion
// of "linear" or "copyable" and will happily wire up any shape that obeys
// the no-fan-in rule above.
//
// Complexity: Link is O(1) amortized and UnlinkIncoming/UnlinkOutgoing
// are O(1); AddNode is O(nIn + nOut) in the ports it allocates; RemoveNode
// is O(d) in the node's own degree (it must walk every link touching the
// node to tear it down on both ends).
package portgraph
