package hugr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CQCL-DEV/hugr"
	"github.com/CQCL-DEV/hugr/ops"
)

// leafOp returns a Leaf with a plain dataflow signature.
func leafOp(name string, in, out ops.TypeRow) ops.Leaf {
	return ops.Leaf{OpName: name, Sig: ops.Signature{Input: in, Output: out}}
}

// orderedLeafOp additionally gives the leaf state-order ports on both
// sides, for tests that need to order it against its siblings.
func orderedLeafOp(name string, in, out ops.TypeRow) ops.Leaf {
	so := ops.StateOrder

	return ops.Leaf{OpName: name, Sig: ops.Signature{
		Input: in, Output: out, OtherInputs: &so, OtherOutputs: &so,
	}}
}

// buildBitCopyFunction builds a module with one function "main" whose
// body copies its single bit input onto two outputs through a noop.
func buildBitCopyFunction(t *testing.T) (h *hugr.HUGR, fn, input, noop, output hugr.Node) {
	t.Helper()

	h = hugr.New(ops.Module{})
	fnSig := ops.Signature{Input: ops.TypeRow{ops.Bit}, Output: ops.TypeRow{ops.Bit, ops.Bit}}

	fn, err := h.AddOpWithParent(h.Root(), ops.FuncDefn{FuncName: "main", Sig: fnSig})
	require.NoError(t, err)
	input, err = h.AddOpWithParent(fn, ops.Input{Types: fnSig.Input})
	require.NoError(t, err)
	noop, err = h.AddOpWithParent(fn, leafOp("noop", ops.TypeRow{ops.Bit}, ops.TypeRow{ops.Bit}))
	require.NoError(t, err)
	output, err = h.AddOpWithParent(fn, ops.Output{Types: fnSig.Output})
	require.NoError(t, err)

	require.NoError(t, h.Connect(input, 0, noop, 0))
	require.NoError(t, h.Connect(noop, 0, output, 0))
	require.NoError(t, h.Connect(noop, 0, output, 1))

	return h, fn, input, noop, output
}

func TestValidateBitCopyFunction(t *testing.T) {
	h, fn, _, _, _ := buildBitCopyFunction(t)

	assert.NoError(t, h.Validate())
	assert.Equal(t, 3, h.ChildCount(fn))
}

func TestValidateOutputReplacedByNoopFails(t *testing.T) {
	h, _, _, _, output := buildBitCopyFunction(t)

	// Swap the boundary Output for a noop with the same port shape: the
	// function body then ends in an operation that may not be last.
	so := ops.StateOrder
	h.ReplaceOp(output, ops.Leaf{OpName: "noop", Sig: ops.Signature{
		Input: ops.TypeRow{ops.Bit, ops.Bit}, OtherInputs: &so,
	}})

	err := h.Validate()
	require.Error(t, err)

	var verr *hugr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, hugr.ErrInvalidInitialChild, verr.Kind)
	assert.Contains(t, verr.Detail, "last")
}

// addBlockChildren fills a basic block body: Input feeding a
// branch-predicate leaf and (fanned out) the Output's value row.
func addBlockChildren(t *testing.T, h *hugr.HUGR, block hugr.Node, inputs ops.TypeRow, predicate ops.Type, others ops.TypeRow) {
	t.Helper()

	in, err := h.AddOpWithParent(block, ops.Input{Types: inputs})
	require.NoError(t, err)
	branch, err := h.AddOpWithParent(block, leafOp("branch", inputs, ops.TypeRow{predicate}))
	require.NoError(t, err)

	outRow := append(ops.TypeRow{predicate}, others...)
	out, err := h.AddOpWithParent(block, ops.Output{Types: outRow})
	require.NoError(t, err)

	for offset := range inputs {
		require.NoError(t, h.Connect(in, offset, branch, offset))
	}
	require.NoError(t, h.Connect(branch, 0, out, 0))
	for offset := range others {
		require.NoError(t, h.Connect(in, offset, out, 1+offset))
	}
}

func TestValidateCFGWithExitBlock(t *testing.T) {
	h := hugr.New(ops.Module{})
	fnSig := ops.Signature{Input: ops.TypeRow{ops.Bit}, Output: ops.TypeRow{ops.Bit}}

	fn, err := h.AddOpWithParent(h.Root(), ops.FuncDefn{FuncName: "main", Sig: fnSig})
	require.NoError(t, err)
	input, err := h.AddOpWithParent(fn, ops.Input{Types: fnSig.Input})
	require.NoError(t, err)
	cfg, err := h.AddOpWithParent(fn, ops.CFG{Inputs: fnSig.Input, Outputs: fnSig.Output})
	require.NoError(t, err)
	output, err := h.AddOpWithParent(fn, ops.Output{Types: fnSig.Output})
	require.NoError(t, err)
	require.NoError(t, h.Connect(input, 0, cfg, 0))
	require.NoError(t, h.Connect(cfg, 0, output, 0))

	block, err := h.AddOpWithParent(cfg, ops.BasicBlock{
		Inputs:            ops.TypeRow{ops.Bit},
		PredicateVariants: []ops.TypeRow{{}},
		OtherOutputs:      ops.TypeRow{ops.Bit},
	})
	require.NoError(t, err)
	exit, err := h.AddOpWithParent(cfg, ops.BasicBlockExit{Inputs: ops.TypeRow{ops.Bit}})
	require.NoError(t, err)
	require.NoError(t, h.ConnectControlFlow(block, 0, exit))

	addBlockChildren(t, h, block, ops.TypeRow{ops.Bit}, ops.Predicate(ops.TypeRow{}), ops.TypeRow{ops.Bit})

	require.NoError(t, h.Validate())

	// An exit block anywhere but last is unreachable structure.
	_, err = h.AddOpAfter(block, ops.BasicBlockExit{Inputs: ops.TypeRow{ops.Bit}})
	require.NoError(t, err)

	err = h.Validate()
	require.Error(t, err)

	var verr *hugr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, hugr.ErrInvalidChildren, verr.Kind)
	var cve *ops.ChildrenValidationError
	require.ErrorAs(t, err, &cve)
	assert.Equal(t, ops.ErrInternalExitChildren, cve.Kind)
}

func TestValidateNestedGraphResourceMismatch(t *testing.T) {
	h := hugr.New(ops.Module{})
	fnSig := ops.Signature{Input: ops.TypeRow{ops.Bit}, Output: ops.TypeRow{ops.Bit}}

	fn, err := h.AddOpWithParent(h.Root(), ops.FuncDefn{FuncName: "main", Sig: fnSig})
	require.NoError(t, err)
	input, err := h.AddOpWithParent(fn, ops.Input{Types: fnSig.Input})
	require.NoError(t, err)
	dfg, err := h.AddOpWithParent(fn, ops.DFG{Sig: ops.Signature{
		Input:           ops.TypeRow{ops.Bit},
		Output:          ops.TypeRow{ops.Bit},
		InputResources:  ops.NewResourceSet("A", "B"),
		OutputResources: nil,
	}})
	require.NoError(t, err)
	output, err := h.AddOpWithParent(fn, ops.Output{Types: fnSig.Output})
	require.NoError(t, err)
	require.NoError(t, h.Connect(input, 0, dfg, 0))
	require.NoError(t, h.Connect(dfg, 0, output, 0))

	din, err := h.AddOpWithParent(dfg, ops.Input{Types: ops.TypeRow{ops.Bit}})
	require.NoError(t, err)
	dout, err := h.AddOpWithParent(dfg, ops.Output{Types: ops.TypeRow{ops.Bit}})
	require.NoError(t, err)
	require.NoError(t, h.Connect(din, 0, dout, 0))

	// The nested graph demands {A, B} on its input wire; the wire
	// carries the empty set.
	err = h.Validate()
	require.Error(t, err)

	var verr *hugr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, hugr.ErrTgtExceedsSrcResources, verr.Kind)
}

func TestValidateMergedResourcesMismatch(t *testing.T) {
	h := hugr.New(ops.Module{})
	fnSig := ops.Signature{Input: ops.TypeRow{ops.Bit}, Output: ops.TypeRow{ops.Bit}}

	fn, err := h.AddOpWithParent(h.Root(), ops.FuncDefn{FuncName: "main", Sig: fnSig})
	require.NoError(t, err)
	input, err := h.AddOpWithParent(fn, ops.Input{Types: fnSig.Input})
	require.NoError(t, err)

	p1, err := h.AddOpWithParent(fn, ops.Leaf{OpName: "withA", Sig: ops.Signature{
		Input: ops.TypeRow{ops.Bit}, Output: ops.TypeRow{ops.Bit},
		OutputResources: ops.NewResourceSet("A"),
	}})
	require.NoError(t, err)
	p2, err := h.AddOpWithParent(fn, ops.Leaf{OpName: "withB", Sig: ops.Signature{
		Input: ops.TypeRow{ops.Bit}, Output: ops.TypeRow{ops.Bit},
		OutputResources: ops.NewResourceSet("B"),
	}})
	require.NoError(t, err)
	consumer, err := h.AddOpWithParent(fn, ops.Leaf{OpName: "merge", Sig: ops.Signature{
		Input: ops.TypeRow{ops.Bit, ops.Bit}, Output: ops.TypeRow{ops.Bit},
		InputResources: ops.NewResourceSet("A", "B"),
	}})
	require.NoError(t, err)
	output, err := h.AddOpWithParent(fn, ops.Output{Types: fnSig.Output})
	require.NoError(t, err)

	require.NoError(t, h.Connect(input, 0, p1, 0))
	require.NoError(t, h.Connect(input, 0, p2, 0))
	require.NoError(t, h.Connect(p1, 0, consumer, 0))
	require.NoError(t, h.Connect(p2, 0, consumer, 1))
	require.NoError(t, h.Connect(consumer, 0, output, 0))

	// Each producer carries only its own resource; the consumer demands
	// the union on every input wire.
	err = h.Validate()
	require.Error(t, err)

	var verr *hugr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, hugr.ErrTgtExceedsSrcResources, verr.Kind)
}

func TestValidateRegionCycleFails(t *testing.T) {
	h := hugr.New(ops.Module{})
	fnSig := ops.Signature{Input: ops.TypeRow{ops.Bit}, Output: ops.TypeRow{ops.Bit}}

	fn, err := h.AddOpWithParent(h.Root(), ops.FuncDefn{FuncName: "main", Sig: fnSig})
	require.NoError(t, err)
	input, err := h.AddOpWithParent(fn, ops.Input{Types: fnSig.Input})
	require.NoError(t, err)
	a, err := h.AddOpWithParent(fn, leafOp("a", ops.TypeRow{ops.Bit, ops.Bit}, ops.TypeRow{ops.Bit}))
	require.NoError(t, err)
	b, err := h.AddOpWithParent(fn, leafOp("b", ops.TypeRow{ops.Bit}, ops.TypeRow{ops.Bit}))
	require.NoError(t, err)
	output, err := h.AddOpWithParent(fn, ops.Output{Types: fnSig.Output})
	require.NoError(t, err)

	require.NoError(t, h.Connect(input, 0, a, 0))
	require.NoError(t, h.Connect(a, 0, b, 0))
	require.NoError(t, h.Connect(b, 0, a, 1))
	require.NoError(t, h.Connect(b, 0, output, 0))

	err = h.Validate()
	require.Error(t, err)

	var verr *hugr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, hugr.ErrNotABoundedDag, verr.Kind)
}

func TestValidateWrongNumberOfPorts(t *testing.T) {
	h, _, leaf, _ := buildSimpleFunction(t)

	_, err := h.AddPorts(leaf, hugr.Outgoing, 1)
	require.NoError(t, err)

	err = h.Validate()
	require.Error(t, err)

	var verr *hugr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, hugr.ErrWrongNumberOfPorts, verr.Kind)
}

func TestValidateLocalConstantLoad(t *testing.T) {
	h := hugr.New(ops.Module{})
	fnSig := ops.Signature{Input: ops.TypeRow{ops.Bit}, Output: ops.TypeRow{ops.Bit, ops.Int(8)}}

	fn, err := h.AddOpWithParent(h.Root(), ops.FuncDefn{FuncName: "main", Sig: fnSig})
	require.NoError(t, err)
	input, err := h.AddOpWithParent(fn, ops.Input{Types: fnSig.Input})
	require.NoError(t, err)
	konst, err := h.AddOpWithParent(fn, ops.ConstOp{Declared: ops.Int(8), Value: ops.IntConst(7, 8)})
	require.NoError(t, err)
	load, err := h.AddOpWithParent(fn, ops.LoadConstant{Typ: ops.Int(8)})
	require.NoError(t, err)
	output, err := h.AddOpWithParent(fn, ops.Output{Types: fnSig.Output})
	require.NoError(t, err)

	require.NoError(t, h.Connect(input, 0, output, 0))
	// The constant feeds the load's const slot; an order edge ties the
	// load into the dataflow traversal from Input.
	require.NoError(t, h.Connect(konst, 0, load, 0))
	require.NoError(t, h.AddOtherEdge(input, load))
	require.NoError(t, h.Connect(load, 0, output, 1))

	assert.NoError(t, h.Validate())
}

// buildCFGWithValueEdge builds main containing a two-block CFG plus
// exit, where srcBlockFirst selects whether the inter-block value edge
// runs from the dominating entry block into its successor (legal) or
// the other way around (illegal).
func buildCFGWithValueEdge(t *testing.T, srcBlockFirst bool) *hugr.HUGR {
	t.Helper()

	h := hugr.New(ops.Module{})
	bitRow := ops.TypeRow{ops.Bit}
	fnSig := ops.Signature{Input: bitRow, Output: bitRow}

	fn, err := h.AddOpWithParent(h.Root(), ops.FuncDefn{FuncName: "main", Sig: fnSig})
	require.NoError(t, err)
	input, err := h.AddOpWithParent(fn, ops.Input{Types: bitRow})
	require.NoError(t, err)
	cfg, err := h.AddOpWithParent(fn, ops.CFG{Inputs: bitRow, Outputs: bitRow})
	require.NoError(t, err)
	output, err := h.AddOpWithParent(fn, ops.Output{Types: bitRow})
	require.NoError(t, err)
	require.NoError(t, h.Connect(input, 0, cfg, 0))
	require.NoError(t, h.Connect(cfg, 0, output, 0))

	blockOp := ops.BasicBlock{
		Inputs:            bitRow,
		PredicateVariants: []ops.TypeRow{{}},
		OtherOutputs:      bitRow,
	}
	b0, err := h.AddOpWithParent(cfg, blockOp)
	require.NoError(t, err)
	b1, err := h.AddOpWithParent(cfg, blockOp)
	require.NoError(t, err)
	exit, err := h.AddOpWithParent(cfg, ops.BasicBlockExit{Inputs: bitRow})
	require.NoError(t, err)
	require.NoError(t, h.ConnectControlFlow(b0, 0, b1))
	require.NoError(t, h.ConnectControlFlow(b1, 0, exit))

	pred := ops.Predicate(ops.TypeRow{})
	outRow := ops.TypeRow{pred, ops.Bit}

	// Body of the block producing the cross-block value.
	producerBlock, consumerBlock := b0, b1
	if !srcBlockFirst {
		producerBlock, consumerBlock = b1, b0
	}

	pin, err := h.AddOpWithParent(producerBlock, ops.Input{Types: bitRow})
	require.NoError(t, err)
	producer, err := h.AddOpWithParent(producerBlock, leafOp("producer", bitRow, bitRow))
	require.NoError(t, err)
	pbranch, err := h.AddOpWithParent(producerBlock, leafOp("branch", bitRow, ops.TypeRow{pred}))
	require.NoError(t, err)
	pout, err := h.AddOpWithParent(producerBlock, ops.Output{Types: outRow})
	require.NoError(t, err)
	require.NoError(t, h.Connect(pin, 0, producer, 0))
	require.NoError(t, h.Connect(pin, 0, pbranch, 0))
	require.NoError(t, h.Connect(pbranch, 0, pout, 0))
	require.NoError(t, h.Connect(producer, 0, pout, 1))

	cin, err := h.AddOpWithParent(consumerBlock, ops.Input{Types: bitRow})
	require.NoError(t, err)
	consumer, err := h.AddOpWithParent(consumerBlock, leafOp("consumer", ops.TypeRow{ops.Bit, ops.Bit}, bitRow))
	require.NoError(t, err)
	cbranch, err := h.AddOpWithParent(consumerBlock, leafOp("branch", bitRow, ops.TypeRow{pred}))
	require.NoError(t, err)
	cout, err := h.AddOpWithParent(consumerBlock, ops.Output{Types: outRow})
	require.NoError(t, err)
	require.NoError(t, h.Connect(cin, 0, consumer, 0))
	require.NoError(t, h.Connect(cin, 0, cbranch, 0))
	require.NoError(t, h.Connect(cbranch, 0, cout, 0))
	require.NoError(t, h.Connect(consumer, 0, cout, 1))

	// The inter-block value edge under test.
	require.NoError(t, h.Connect(producer, 0, consumer, 1))

	return h
}

func TestValidateDominatorEdge(t *testing.T) {
	h := buildCFGWithValueEdge(t, true)

	assert.NoError(t, h.Validate())
}

func TestValidateNonDominatedEdgeFails(t *testing.T) {
	h := buildCFGWithValueEdge(t, false)

	err := h.Validate()
	require.Error(t, err)

	var ige *hugr.InterGraphEdgeError
	require.ErrorAs(t, err, &ige)
	assert.Equal(t, hugr.ErrNonDominatedAncestor, ige.Kind)
}

// buildExternalEdge builds main with a producer whose value crosses
// into a nested graph; withOrderEdge controls whether the sanctioning
// state-order edge to the nested graph is present.
func buildExternalEdge(t *testing.T, withOrderEdge bool) *hugr.HUGR {
	t.Helper()

	h := hugr.New(ops.Module{})
	bitRow := ops.TypeRow{ops.Bit}
	so := ops.StateOrder
	fnSig := ops.Signature{Input: bitRow, Output: bitRow}

	fn, err := h.AddOpWithParent(h.Root(), ops.FuncDefn{FuncName: "main", Sig: fnSig})
	require.NoError(t, err)
	input, err := h.AddOpWithParent(fn, ops.Input{Types: bitRow})
	require.NoError(t, err)
	prod, err := h.AddOpWithParent(fn, orderedLeafOp("producer", bitRow, bitRow))
	require.NoError(t, err)
	dfg, err := h.AddOpWithParent(fn, ops.DFG{Sig: ops.Signature{
		Input: bitRow, OtherInputs: &so, OtherOutputs: &so,
	}})
	require.NoError(t, err)
	output, err := h.AddOpWithParent(fn, ops.Output{Types: bitRow})
	require.NoError(t, err)

	require.NoError(t, h.Connect(input, 0, prod, 0))
	require.NoError(t, h.Connect(input, 0, dfg, 0))
	require.NoError(t, h.Connect(prod, 0, output, 0))

	din, err := h.AddOpWithParent(dfg, ops.Input{Types: bitRow})
	require.NoError(t, err)
	consumer, err := h.AddOpWithParent(dfg, orderedLeafOp("consumer", ops.TypeRow{ops.Bit, ops.Bit}, nil))
	require.NoError(t, err)
	dout, err := h.AddOpWithParent(dfg, ops.Output{})
	require.NoError(t, err)
	require.NoError(t, h.Connect(din, 0, consumer, 0))
	require.NoError(t, h.AddOtherEdge(consumer, dout))

	// The external value edge from the producer into the nested graph.
	require.NoError(t, h.Connect(prod, 0, consumer, 1))
	if withOrderEdge {
		require.NoError(t, h.AddOtherEdge(prod, dfg))
	}

	return h
}

func TestValidateExternalEdge(t *testing.T) {
	h := buildExternalEdge(t, true)

	assert.NoError(t, h.Validate())
}

func TestValidateExternalEdgeMissingOrder(t *testing.T) {
	h := buildExternalEdge(t, false)

	err := h.Validate()
	require.Error(t, err)

	var ige *hugr.InterGraphEdgeError
	require.ErrorAs(t, err, &ige)
	assert.Equal(t, hugr.ErrMissingOrderEdge, ige.Kind)
}

func TestValidateLinearFanOutFails(t *testing.T) {
	h, _, leaf, output := buildSimpleFunction(t)

	// A second consumer of the qubit wire.
	extra, err := h.AddOpBefore(output, leafOp("sink", ops.TypeRow{ops.Qubit}, nil))
	require.NoError(t, err)
	require.NoError(t, h.Connect(leaf, 0, extra, 0))

	err = h.Validate()
	require.Error(t, err)

	var verr *hugr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, hugr.ErrTooManyConnections, verr.Kind)
}

func TestInterGraphEdgeErrorUnwraps(t *testing.T) {
	h := buildExternalEdge(t, false)

	err := h.Validate()
	require.Error(t, err)

	var verr *hugr.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, hugr.ErrInterGraphEdge, verr.Kind)
}
