package gringottsdb

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeBlockSetGet(t *testing.T) {
	n := newNodeBlock(1, 4096)

	prior, existed, err := n.set("a", "1")
	require.NoError(t, err)
	require.False(t, existed)
	require.Empty(t, prior)

	v, ok := n.get("a")
	require.True(t, ok)
	require.Equal(t, "1", v)

	prior, existed, err = n.set("a", "2")
	require.NoError(t, err)
	require.True(t, existed)
	require.Equal(t, "1", prior)

	v, ok = n.get("a")
	require.True(t, ok)
	require.Equal(t, "2", v)
}

func TestNodeBlockBlockRef(t *testing.T) {
	n := newNodeBlock(1, 4096)

	_, existed, err := n.setBlockRef("k", 7)
	require.NoError(t, err)
	require.False(t, existed)

	ref, ok := n.getBlockRef("k")
	require.True(t, ok)
	require.Equal(t, uint64(7), ref)
}

func TestNodeBlockSerializeRoundTrip(t *testing.T) {
	n := newNodeBlock(5, 4096)
	n.setBlockType(blockTypeRoot)
	n.setRightBlock(9)
	_, _, err := n.set("x", "y")
	require.NoError(t, err)

	raw := n.serialize()
	require.Len(t, raw, 4096)

	got, err := nodeBlockFromBytes(5, raw, 4096)
	require.NoError(t, err)
	require.Equal(t, blockTypeRoot, got.header.getBlockType())
	next, ok := got.getRightBlock()
	require.True(t, ok)
	require.Equal(t, uint64(9), next)

	v, ok := got.get("x")
	require.True(t, ok)
	require.Equal(t, "y", v)
}

func TestNodeBlockSetRevertsOnNoRoom(t *testing.T) {
	const capacity = headerRegionSize + 16
	n := newNodeBlock(1, capacity)

	_, _, err := n.set("key", "value")
	require.NoError(t, err)

	lastKey, _ := n.getLastKey()

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("overflow-key-%03d", i)
		_, _, err := n.set(key, "some reasonably long value to force an overflow")
		if err == errNoRoom {
			got, ok := n.getLastKey()
			require.True(t, ok)
			require.Equal(t, lastKey, got, "block must be left exactly as it was before a reverted set")
			_, stillThere := n.get(key)
			require.False(t, stillThere)
			return
		}
		require.NoError(t, err)
		lastKey, _ = n.getLastKey()
	}
	t.Fatal("expected a NoRoom error before filling 100 entries into a tiny block")
}

func TestNodeBlockSplitMovesUpperHalf(t *testing.T) {
	n := newNodeBlock(1, 4096)
	for _, k := range []string{"a", "b", "c", "d"} {
		_, _, err := n.set(k, k)
		require.NoError(t, err)
	}

	upper := n.split()
	require.Equal(t, 2, upper.Len())

	lastKey, ok := n.getLastKey()
	require.True(t, ok)
	require.Equal(t, "b", lastKey)

	upperLast, ok := upper.LastKey()
	require.True(t, ok)
	require.Equal(t, "d", upperLast)
}
