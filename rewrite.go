package hugr

import "errors"

// ErrNotImplemented is returned by ApplyRewrite for every Rewrite except
// a SimpleReplacement, the one rewrite primitive this package commits
// to. Further Rewrite kinds are reserved until their semantics are
// settled.
var ErrNotImplemented = errors.New("hugr: rewrite kind not implemented")

// Rewrite is the open-ended extension point for graph transformations:
// any type describing a rewrite that knows how to apply itself.
// SimpleReplacement implements it directly so it can be used either via
// its own ApplySimpleReplacement method or, uniformly with any future
// Rewrite, via ApplyRewrite.
type Rewrite interface {
	// ApplyTo performs the rewrite against h.
	ApplyTo(h *HUGR) error
}

// ApplyTo makes SimpleReplacement satisfy Rewrite.
func (r SimpleReplacement) ApplyTo(h *HUGR) error {
	return h.ApplySimpleReplacement(r)
}

// ApplyRewrite applies any Rewrite to h. Only SimpleReplacement is
// currently implemented; every other Rewrite returns ErrNotImplemented.
func (h *HUGR) ApplyRewrite(r Rewrite) error {
	if sr, ok := r.(SimpleReplacement); ok {
		return h.ApplySimpleReplacement(sr)
	}

	return ErrNotImplemented
}
