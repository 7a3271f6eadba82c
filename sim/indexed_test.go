package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndexed(t *testing.T, capacity int) (*indexedAllocator, *Disk) {
	t.Helper()
	d, err := NewDisk(capacity)
	require.NoError(t, err)
	return &indexedAllocator{disk: d}, d
}

func TestIndexed_Allocate_IndexBlockThenData(t *testing.T) {
	// GIVEN a fragmented disk
	a, d := newIndexed(t, 10)
	occupy(t, d, "x", 1, 4)

	// WHEN 3 data blocks are requested
	l, err := a.Allocate("a", 3)
	require.NoError(t, err)

	// THEN the lowest free block is the index block and the next three hold data
	assert.Equal(t, Layout{Kind: StrategyIndexed, IndexBlock: 0, Pointers: []int{2, 3, 5}}, l)
	assert.True(t, d.blocks[0].IndexBlock)
	assert.Equal(t, []int{2, 3, 5}, d.blocks[0].Pointers)
	assert.Equal(t, 4, d.FreeCount())
}

func TestIndexed_Allocate_NeedsRoomForIndexBlock(t *testing.T) {
	// GIVEN exactly size free blocks
	a, d := newIndexed(t, 4)

	// WHEN size blocks are requested
	_, err := a.Allocate("a", 4)

	// THEN the extra index block makes it fail, leaving the disk untouched
	assert.ErrorIs(t, err, ErrInsufficientSpace)
	assert.Equal(t, 4, d.FreeCount())

	_, err = a.Allocate("a", 3)
	assert.NoError(t, err)
	assert.Equal(t, 0, d.FreeCount())
}

func TestIndexed_Release_FreesDataAndIndex(t *testing.T) {
	a, d := newIndexed(t, 6)
	l, err := a.Allocate("a", 4)
	require.NoError(t, err)

	require.NoError(t, a.Release("a", l))

	assert.Equal(t, 6, d.FreeCount())
	assert.False(t, d.blocks[0].IndexBlock)
	assert.Nil(t, d.blocks[0].Pointers)
}

func TestIndexed_DataBlocks_FollowsPointerOrder(t *testing.T) {
	a, d := newIndexed(t, 6)
	l, _ := a.Allocate("a", 3)

	// pointer order, not disk order, defines file order
	d.blocks[l.IndexBlock].Pointers = []int{3, 1, 2}

	blocks, err := a.DataBlocks("a", l)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, blocks)
}

func TestIndexed_CorruptPointer_ReleaseRefused(t *testing.T) {
	a, d := newIndexed(t, 6)
	l, _ := a.Allocate("a", 2)
	d.blocks[l.IndexBlock].Pointers = []int{1, 5}

	err := a.Release("a", l)

	assert.ErrorIs(t, err, ErrCorruptChain)
	assert.Equal(t, 3, d.FreeCount())
}
