package hugr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CQCL-DEV/hugr"
	"github.com/CQCL-DEV/hugr/ops"
)

// buildNoopReplacement returns a one-interior-node replacement fragment
// shaped Input → leaf → Output over sig.
func buildNoopReplacement(t *testing.T, name string, sig ops.Signature) (r *hugr.HUGR, leaf hugr.Node) {
	t.Helper()

	r = hugr.New(ops.DFG{Sig: sig})
	in, err := r.AddOpWithParent(r.Root(), ops.Input{Types: sig.Input})
	require.NoError(t, err)
	leaf, err = r.AddOpWithParent(r.Root(), ops.Leaf{OpName: name, Sig: sig})
	require.NoError(t, err)
	out, err := r.AddOpWithParent(r.Root(), ops.Output{Types: sig.Output})
	require.NoError(t, err)
	require.NoError(t, r.Connect(in, 0, leaf, 0))
	require.NoError(t, r.Connect(leaf, 0, out, 0))

	return r, leaf
}

func TestApplySimpleReplacementIdentity(t *testing.T) {
	h, input, leaf, output := buildSimpleFunction(t)
	fn, ok := h.Parent(leaf)
	require.True(t, ok)

	sig := ops.Signature{Input: ops.TypeRow{ops.Qubit}, Output: ops.TypeRow{ops.Qubit}}
	replacement, replLeaf := buildNoopReplacement(t, "noop", sig)

	require.NoError(t, h.ApplySimpleReplacement(hugr.SimpleReplacement{
		Parent:      fn,
		Removal:     []hugr.Node{leaf},
		Replacement: replacement,
		NuInp: map[hugr.ReplacementPort]hugr.ReplacementPort{
			{Node: replLeaf, Port: hugr.In(0)}: {Node: leaf, Port: hugr.In(0)},
		},
		NuOut: map[hugr.ReplacementPort]int{
			{Node: output, Port: hugr.In(0)}: 0,
		},
	}))
	require.NoError(t, h.Validate())

	// Same shape as before, up to node re-identification.
	assert.Equal(t, 5, h.NodeCount())
	newLeaf, _, ok := h.LinkedPort(input, hugr.Out(0))
	require.True(t, ok)
	assert.NotEqual(t, leaf, newLeaf)
	assert.Equal(t, "noop", h.GetOptype(newLeaf).Name())
	back, port, ok := h.LinkedPort(output, hugr.In(0))
	require.True(t, ok)
	assert.Equal(t, newLeaf, back)
	assert.Equal(t, hugr.Out(0), port)
}

func TestApplySimpleReplacementPassThrough(t *testing.T) {
	h, input, leaf, output := buildSimpleFunction(t)
	fn, ok := h.Parent(leaf)
	require.True(t, ok)

	// A replacement with no interior at all: its Input wires straight
	// to its Output, splicing the host producer onto the host consumer.
	sig := ops.Signature{Input: ops.TypeRow{ops.Qubit}, Output: ops.TypeRow{ops.Qubit}}
	replacement := hugr.New(ops.DFG{Sig: sig})
	rin, err := replacement.AddOpWithParent(replacement.Root(), ops.Input{Types: sig.Input})
	require.NoError(t, err)
	rout, err := replacement.AddOpWithParent(replacement.Root(), ops.Output{Types: sig.Output})
	require.NoError(t, err)
	require.NoError(t, replacement.Connect(rin, 0, rout, 0))

	require.NoError(t, h.ApplySimpleReplacement(hugr.SimpleReplacement{
		Parent:      fn,
		Removal:     []hugr.Node{leaf},
		Replacement: replacement,
		NuInp: map[hugr.ReplacementPort]hugr.ReplacementPort{
			{Node: rout, Port: hugr.In(0)}: {Node: leaf, Port: hugr.In(0)},
		},
		NuOut: map[hugr.ReplacementPort]int{
			{Node: output, Port: hugr.In(0)}: 0,
		},
	}))
	require.NoError(t, h.Validate())

	assert.Equal(t, 4, h.NodeCount())
	src, port, ok := h.LinkedPort(output, hugr.In(0))
	require.True(t, ok)
	assert.Equal(t, input, src)
	assert.Equal(t, hugr.Out(0), port)
}

func TestApplySimpleReplacementRejectsBadParent(t *testing.T) {
	h, _, leaf, _ := buildSimpleFunction(t)

	sig := ops.Signature{Input: ops.TypeRow{ops.Qubit}, Output: ops.TypeRow{ops.Qubit}}
	replacement, replLeaf := buildNoopReplacement(t, "noop", sig)

	err := h.ApplySimpleReplacement(hugr.SimpleReplacement{
		Parent:      h.Root(),
		Removal:     []hugr.Node{leaf},
		Replacement: replacement,
		NuInp: map[hugr.ReplacementPort]hugr.ReplacementPort{
			{Node: replLeaf, Port: hugr.In(0)}: {Node: leaf, Port: hugr.In(0)},
		},
	})
	assert.ErrorIs(t, err, hugr.ErrInvalidParentNode)
}

func TestApplySimpleReplacementRejectsForeignRemoval(t *testing.T) {
	h, _, leaf, _ := buildSimpleFunction(t)
	fn, ok := h.Parent(leaf)
	require.True(t, ok)

	sig := ops.Signature{Input: ops.TypeRow{ops.Qubit}, Output: ops.TypeRow{ops.Qubit}}
	replacement, _ := buildNoopReplacement(t, "noop", sig)

	// The function node itself is not a leaf child of fn.
	err := h.ApplySimpleReplacement(hugr.SimpleReplacement{
		Parent:      fn,
		Removal:     []hugr.Node{fn},
		Replacement: replacement,
	})
	assert.ErrorIs(t, err, hugr.ErrInvalidRemovedNode)

	// Nodes of other regions are rejected too.
	err = h.ApplySimpleReplacement(hugr.SimpleReplacement{
		Parent:      fn,
		Removal:     []hugr.Node{h.Root()},
		Replacement: replacement,
	})
	assert.ErrorIs(t, err, hugr.ErrInvalidRemovedNode)
}

func TestApplyRewriteDispatch(t *testing.T) {
	h, _, leaf, output := buildSimpleFunction(t)
	fn, ok := h.Parent(leaf)
	require.True(t, ok)

	sig := ops.Signature{Input: ops.TypeRow{ops.Qubit}, Output: ops.TypeRow{ops.Qubit}}
	replacement, replLeaf := buildNoopReplacement(t, "renamed", sig)

	require.NoError(t, h.ApplyRewrite(hugr.SimpleReplacement{
		Parent:      fn,
		Removal:     []hugr.Node{leaf},
		Replacement: replacement,
		NuInp: map[hugr.ReplacementPort]hugr.ReplacementPort{
			{Node: replLeaf, Port: hugr.In(0)}: {Node: leaf, Port: hugr.In(0)},
		},
		NuOut: map[hugr.ReplacementPort]int{
			{Node: output, Port: hugr.In(0)}: 0,
		},
	}))
	require.NoError(t, h.Validate())
}

type dummyRewrite struct{}

func (dummyRewrite) ApplyTo(*hugr.HUGR) error { return nil }

func TestApplyRewriteUnknownKind(t *testing.T) {
	h := hugr.New(ops.Module{})

	assert.ErrorIs(t, h.ApplyRewrite(dummyRewrite{}), hugr.ErrNotImplemented)
}
