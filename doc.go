// Package hugr implements the core of a Hierarchical Unified Graph
// Representation: an in-memory intermediate representation that is
// simultaneously a typed dataflow multigraph (package portgraph) and a
// tree of nested regions (package hier) — function bodies, nested
// dataflow graphs, conditional arms, tail-controlled loops, CFG basic
// blocks.
//
// A HUGR node carries an operation from the closed enumeration in
// package ops; a node's ports carry typed edges whose kinds constrain
// the legal shape of the surrounding graph. This package bundles the
// port graph, the hierarchy and the per-node operation table into one
// container (HUGR), exposes read accessors and internal mutators over
// it, and implements the two operations every caller eventually needs:
//
//   - Validate, the structural validator: parent/child compatibility,
//     port-count and edge-kind agreement, dataflow acyclicity,
//     inter-region edge legality, resource-set compatibility, constant
//     typechecking.
//   - ApplySimpleReplacement, the subgraph-replacement primitive that
//     substitutes a dataflow subgraph with an equivalently-shaped open
//     graph while preserving well-formedness.
//
// The validator and replacer live in this same package rather than
// separate importable ones: both need access to the container's
// private fields, and Go has no visibility tier between "same package"
// and "exported across packages", so splitting them out would either
// lose that access or force an import cycle.
//
// HUGR is not safe for concurrent use. Every exported method assumes
// exclusive access for its duration; callers needing concurrent access
// must serialize it themselves.
//
// Building a HUGR top-down (a friendly "builder" API), persistent
// serialization, dot/diagnostic visualization beyond the minimal
// DotString below, pattern matching and concrete gate libraries are
// all out of scope for this package; it treats them as external
// collaborators that produce or consume a HUGR value.
package hugr
