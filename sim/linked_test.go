package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLinked(t *testing.T, capacity int) (*linkedAllocator, *Disk) {
	t.Helper()
	d, err := NewDisk(capacity)
	require.NoError(t, err)
	return &linkedAllocator{disk: d}, d
}

func TestLinked_Allocate_ChainsLowestFreeBlocks(t *testing.T) {
	// GIVEN a disk with scattered occupied blocks
	a, d := newLinked(t, 10)
	occupy(t, d, "x", 0, 2, 3, 6)

	// WHEN 4 blocks are requested
	l, err := a.Allocate("a", 4)
	require.NoError(t, err)

	// THEN the head is the lowest free block and the chain visits 1 -> 4 -> 5 -> 7
	assert.Equal(t, Layout{Kind: StrategyLinked, Head: 1}, l)
	chain, err := a.DataBlocks("a", l)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 5, 7}, chain)
	assert.Equal(t, EndOfChain, d.blocks[7].Next)
}

func TestLinked_Allocate_InsufficientSpace(t *testing.T) {
	a, d := newLinked(t, 5)
	occupy(t, d, "x", 0, 1)

	_, err := a.Allocate("a", 4)

	assert.ErrorIs(t, err, ErrInsufficientSpace)
	assert.Equal(t, 3, d.FreeCount())
}

func TestLinked_Release_FreesWholeChain(t *testing.T) {
	a, d := newLinked(t, 8)
	occupy(t, d, "x", 1, 3)
	l, err := a.Allocate("a", 3)
	require.NoError(t, err)

	require.NoError(t, a.Release("a", l))

	assert.Equal(t, 6, d.FreeCount())
	for _, i := range []int{0, 2, 4} {
		assert.Equal(t, NoLink, d.blocks[i].Next)
	}
}

func TestLinked_CorruptChain_DetectedBeforeFreeing(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(d *Disk)
	}{
		{"cycle", func(d *Disk) { d.blocks[2].Next = 0 }},
		{"link to free block", func(d *Disk) { d.blocks[1].Next = 6 }},
		{"link out of range", func(d *Disk) { d.blocks[1].Next = 42 }},
		{"link to foreign block", func(d *Disk) {
			d.blocks[1].Next = 5
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// GIVEN a 3-block chain 0 -> 1 -> 2 and a foreign file on block 5
			a, d := newLinked(t, 8)
			l, err := a.Allocate("a", 3)
			require.NoError(t, err)
			occupy(t, d, "other", 5)
			tc.corrupt(d)

			// WHEN the file is released
			err = a.Release("a", l)

			// THEN the corruption is reported and no block was freed
			assert.ErrorIs(t, err, ErrCorruptChain)
			assert.Equal(t, 4, d.FreeCount())
		})
	}
}
