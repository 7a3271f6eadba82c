package sim

import "fmt"

// contiguousAllocator places each file in one unbroken run of blocks, first-fit.
type contiguousAllocator struct {
	disk *Disk
}

func (a *contiguousAllocator) Kind() StrategyKind { return StrategyContiguous }

// Allocate claims the lowest-starting run of size free blocks. Total free space is
// not enough on its own: a fragmented disk fails even when FreeCount() >= size.
func (a *contiguousAllocator) Allocate(owner string, size int) (Layout, error) {
	if size <= 0 {
		return Layout{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	start := a.findRun(size)
	if start < 0 {
		return Layout{}, fmt.Errorf("%w: no run of %d contiguous free blocks (%d free in total)",
			ErrInsufficientSpace, size, a.disk.FreeCount())
	}
	indices := make([]int, size)
	for i := range indices {
		indices[i] = start + i
	}
	if err := a.disk.claim(indices, owner); err != nil {
		return Layout{}, err
	}
	return Layout{Kind: StrategyContiguous, Start: start, Length: size}, nil
}

// findRun returns the first index i such that [i, i+count) is in bounds and free, or -1.
func (a *contiguousAllocator) findRun(count int) int {
	consecutive := 0
	for i, blk := range a.disk.blocks {
		if blk.Occupied {
			consecutive = 0
			continue
		}
		consecutive++
		if consecutive == count {
			return i - count + 1
		}
	}
	return -1
}

func (a *contiguousAllocator) Release(owner string, layout Layout) error {
	blocks, err := a.DataBlocks(owner, layout)
	if err != nil {
		return err
	}
	for _, idx := range blocks {
		if err := a.disk.MarkFree(idx); err != nil {
			return err
		}
	}
	return nil
}

// DataBlocks returns [Start, Start+Length) after checking every block belongs to owner.
func (a *contiguousAllocator) DataBlocks(owner string, layout Layout) ([]int, error) {
	blocks := make([]int, 0, layout.Length)
	for i := layout.Start; i < layout.Start+layout.Length; i++ {
		blk, err := a.disk.at(i)
		if err != nil {
			return nil, err
		}
		if !blk.Occupied || blk.Owner != owner {
			return nil, fmt.Errorf("%w: block %d of %q is not owned by it", ErrCorruptChain, i, owner)
		}
		blocks = append(blocks, i)
	}
	return blocks, nil
}
