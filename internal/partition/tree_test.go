package partition

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skyframe-data/skypart/internal/healpix"
)

func TestPixelTreeBuild(t *testing.T) {
	tree, err := NewPixelTree([]healpix.Pixel{
		{Order: 0, Pixel: 3},
		{Order: 2, Pixel: 16},
		{Order: 2, Pixel: 17},
	})
	require.NoError(t, err)

	// 3 leaves + inner nodes 0/1 and 1/4 + root.
	require.Equal(t, 3, tree.Leaves())
	require.Equal(t, 6, tree.Len())

	require.True(t, tree.Contains(healpix.Pixel{Order: 0, Pixel: 3}))
	require.True(t, tree.Contains(healpix.Pixel{Order: 1, Pixel: 4}))
	require.False(t, tree.Contains(healpix.Pixel{Order: 1, Pixel: 5}))

	leaf := tree.GetNode(healpix.Pixel{Order: 2, Pixel: 16})
	require.NotNil(t, leaf)
	require.Equal(t, LeafNode, leaf.Type)
	require.Equal(t, InnerNode, leaf.Parent.Type)
	require.Equal(t, healpix.Pixel{Order: 1, Pixel: 4}, leaf.Parent.Pixel)
	require.Equal(t, RootNode, leaf.Parent.Parent.Parent.Type)
}

func TestPixelTreeRejectsDuplicates(t *testing.T) {
	_, err := NewPixelTree([]healpix.Pixel{
		{Order: 1, Pixel: 4},
		{Order: 1, Pixel: 4},
	})
	require.ErrorIs(t, err, healpix.ErrInvalidArgument)
}

func TestPixelTreeRejectsNestedLeaves(t *testing.T) {
	// 2/16 sits inside 1/4: a partition cannot define data at both.
	_, err := NewPixelTree([]healpix.Pixel{
		{Order: 1, Pixel: 4},
		{Order: 2, Pixel: 16},
	})
	require.ErrorIs(t, err, healpix.ErrInvalidArgument)

	// Same conflict, coarser pixel added second. The coarser leaf lands on
	// the existing inner node, which reads as a duplicate.
	_, err = NewPixelTree([]healpix.Pixel{
		{Order: 2, Pixel: 16},
		{Order: 1, Pixel: 4},
	})
	require.ErrorIs(t, err, healpix.ErrInvalidArgument)
}

func TestPixelTreeContainingLeaf(t *testing.T) {
	tree, err := NewPixelTree([]healpix.Pixel{
		{Order: 0, Pixel: 3},
		{Order: 2, Pixel: 16},
	})
	require.NoError(t, err)

	// A fine pixel inside the order-0 leaf resolves to it.
	leaf := tree.ContainingLeaf(healpix.Pixel{Order: 3, Pixel: 200})
	require.NotNil(t, leaf)
	require.Equal(t, healpix.Pixel{Order: 0, Pixel: 3}, leaf.Pixel)

	// A pixel under an inner node but outside any leaf is uncovered.
	require.Nil(t, tree.ContainingLeaf(healpix.Pixel{Order: 2, Pixel: 17}))

	// A leaf covers itself.
	self := tree.ContainingLeaf(healpix.Pixel{Order: 2, Pixel: 16})
	require.NotNil(t, self)
	require.Equal(t, healpix.Pixel{Order: 2, Pixel: 16}, self.Pixel)
}

func TestPixelTreeFromAlignment(t *testing.T) {
	h := histogramAt(t, 2, map[uint64]uint64{0: 3, 16: 6, 17: 5})
	a, err := GenerateAlignment(h, 2, 0, 10)
	require.NoError(t, err)

	tree, err := NewPixelTree(DestinationPixels(a))
	require.NoError(t, err)
	require.Equal(t, 3, tree.Leaves())
	require.True(t, tree.Contains(healpix.Pixel{Order: 0, Pixel: 0}))
	require.True(t, tree.Contains(healpix.Pixel{Order: 2, Pixel: 17}))
}
