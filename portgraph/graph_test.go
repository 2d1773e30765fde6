package portgraph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CQCL-DEV/hugr/portgraph"
)

func TestAddNodeAndPortCount(t *testing.T) {
	g := portgraph.NewGraph()
	n := g.AddNode(2, 3)

	require.True(t, g.NodeExists(n))
	in, err := g.PortCount(n, portgraph.Incoming)
	require.NoError(t, err)
	assert.Equal(t, 2, in)

	out, err := g.PortCount(n, portgraph.Outgoing)
	require.NoError(t, err)
	assert.Equal(t, 3, out)
}

func TestPortCountUnknownNode(t *testing.T) {
	g := portgraph.NewGraph()
	_, err := g.PortCount(portgraph.NodeID(99), portgraph.Incoming)
	assert.ErrorIs(t, err, portgraph.ErrNoSuchNode)
}

func TestLinkAndQuery(t *testing.T) {
	g := portgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 0)

	sub, err := g.Link(a, 0, b, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, sub)

	src, ok := g.IncomingLink(b, 0)
	require.True(t, ok)
	assert.Equal(t, a, src.Node)
	assert.Equal(t, portgraph.Out(0), src.Port)

	assert.True(t, g.IsLinked(b, 0))
	assert.ElementsMatch(t, []portgraph.NodeID{b}, g.Successors(a))
	assert.ElementsMatch(t, []portgraph.NodeID{a}, g.Predecessors(b))
}

func TestLinkRejectsFanIn(t *testing.T) {
	g := portgraph.NewGraph()
	a := g.AddNode(0, 2)
	b := g.AddNode(1, 0)

	_, err := g.Link(a, 0, b, 0)
	require.NoError(t, err)

	_, err = g.Link(a, 1, b, 0)
	assert.ErrorIs(t, err, portgraph.ErrIncomingPortOccupied)
}

func TestLinkAllowsFanOut(t *testing.T) {
	g := portgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 0)
	c := g.AddNode(1, 0)

	sub0, err := g.Link(a, 0, b, 0)
	require.NoError(t, err)
	sub1, err := g.Link(a, 0, c, 0)
	require.NoError(t, err)
	assert.NotEqual(t, sub0, sub1)

	links := g.OutgoingLinks(a, 0)
	assert.Len(t, links, 2)
}

func TestUnlinkTombstonesWithoutShifting(t *testing.T) {
	g := portgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 0)
	c := g.AddNode(1, 0)
	d := g.AddNode(1, 0)

	_, _ = g.Link(a, 0, b, 0)
	sub1, _ := g.Link(a, 0, c, 0)
	sub2, _ := g.Link(a, 0, d, 0)

	require.NoError(t, g.UnlinkOutgoing(a, 0, sub1))
	assert.False(t, g.IsLinked(c, 0))
	assert.True(t, g.IsLinked(d, 0))

	// The surviving branch keeps its original sub-port offset.
	remaining, ok := g.IncomingLink(d, 0)
	require.True(t, ok)
	assert.Equal(t, sub2, remaining.SubPort)
}

func TestUnlinkIncomingClearsSourceBranch(t *testing.T) {
	g := portgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 0)

	_, err := g.Link(a, 0, b, 0)
	require.NoError(t, err)
	require.NoError(t, g.UnlinkIncoming(b, 0))

	assert.False(t, g.IsLinked(b, 0))
	assert.Empty(t, g.Successors(a))

	err = g.UnlinkIncoming(b, 0)
	assert.ErrorIs(t, err, portgraph.ErrNotLinked)
}

func TestRemoveNodeTearsDownBothSides(t *testing.T) {
	g := portgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 1)
	c := g.AddNode(1, 0)

	_, err := g.Link(a, 0, b, 0)
	require.NoError(t, err)
	_, err = g.Link(b, 0, c, 0)
	require.NoError(t, err)

	require.NoError(t, g.RemoveNode(b))
	assert.False(t, g.NodeExists(b))
	assert.Empty(t, g.Successors(a))
	assert.Empty(t, g.Predecessors(c))

	err = g.RemoveNode(b)
	assert.True(t, errors.Is(err, portgraph.ErrNoSuchNode))
}

func TestLinkCount(t *testing.T) {
	g := portgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 0)
	c := g.AddNode(1, 0)

	assert.Zero(t, g.LinkCount())
	_, err := g.Link(a, 0, b, 0)
	require.NoError(t, err)
	_, err = g.Link(a, 0, c, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, g.LinkCount())

	require.NoError(t, g.UnlinkIncoming(b, 0))
	assert.Equal(t, 1, g.LinkCount())
}

func TestTruncatePortsUnlinksRemoved(t *testing.T) {
	g := portgraph.NewGraph()
	a := g.AddNode(0, 2)
	b := g.AddNode(2, 0)

	_, err := g.Link(a, 0, b, 0)
	require.NoError(t, err)
	_, err = g.Link(a, 1, b, 1)
	require.NoError(t, err)

	require.NoError(t, g.TruncatePorts(a, portgraph.Outgoing, 1))
	out, _ := g.PortCount(a, portgraph.Outgoing)
	assert.Equal(t, 1, out)
	assert.True(t, g.IsLinked(b, 0))
	assert.False(t, g.IsLinked(b, 1))

	require.NoError(t, g.TruncatePorts(b, portgraph.Incoming, 0))
	in, _ := g.PortCount(b, portgraph.Incoming)
	assert.Zero(t, in)
	assert.Empty(t, g.OutgoingLinks(a, 0))
}

func TestAddPortsAppendsWithoutDisturbingExisting(t *testing.T) {
	g := portgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 0)
	_, err := g.Link(a, 0, b, 0)
	require.NoError(t, err)

	start, err := g.AddPorts(a, portgraph.Outgoing, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, start)

	// Original link at offset 0 is untouched.
	assert.True(t, g.IsLinked(b, 0))
	out, _ := g.PortCount(a, portgraph.Outgoing)
	assert.Equal(t, 3, out)
}
