package cskiplist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNodeHeightAndSlots(t *testing.T) {
	n := newNode[int, string](5, "five", 4)
	require.Equal(t, 4, n.Height())
	for layer := 0; layer < 4; layer++ {
		require.Nil(t, n.next0(layer))
	}
	require.False(t, n.fullyLinked.Load())
	require.False(t, n.markedForRemoval.Load())
	require.False(t, n.isHead)
}

func TestNodeSetNextRoundTrips(t *testing.T) {
	a := newNode[int, string](1, "a", 2)
	b := newNode[int, string](2, "b", 2)
	a.setNext(0, b)
	require.Same(t, b, a.next0(0))
	require.Nil(t, a.next0(1))
}

func TestNewHeadNodeIsFullyLinkedAndUnmarked(t *testing.T) {
	h := newHeadNode[int, string](1)
	require.True(t, h.isHead)
	require.True(t, h.fullyLinked.Load())
	require.False(t, h.markedForRemoval.Load())
}

func TestNodeSizeGrowsWithHeight(t *testing.T) {
	small := nodeSize[int, string](1)
	large := nodeSize[int, string](8)
	require.Greater(t, large, small)
}

func TestNodeNextSkipsMarkedForRemoval(t *testing.T) {
	a := newNode[int, string](1, "a", 1)
	b := newNode[int, string](2, "b", 1)
	c := newNode[int, string](3, "c", 1)
	a.setNext(0, b)
	b.setNext(0, c)

	require.Same(t, b, a.next(), "next must return a raw, unmarked successor")

	b.markedForRemoval.Store(true)
	require.Same(t, c, a.next(), "next must skip over a still-linked but marked node")

	c.markedForRemoval.Store(true)
	require.Nil(t, a.next(), "next must return nil when every remaining successor is marked")
}
