// Package ops defines the closed set of operation types a HUGR node can
// carry: their tag (a position in a small containment lattice used for
// parent/child filtering), their dataflow Signature, and the structural
// ValidityFlags and per-variant children validation the hugr package's
// validator drives its structural checks from.
//
// Each concrete operation (Module, FuncDefn, DFG, Conditional, Case,
// TailLoop, CFG, BasicBlock, Leaf, ...) is its own Go type implementing
// the OpType interface; the interface dispatch replaces what would
// otherwise be a tag-keyed table of per-variant behaviour.
package ops
