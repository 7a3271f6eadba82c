package sim

import "fmt"

// indexedAllocator gives every file a dedicated index block whose pointer list
// names the file's data blocks.
type indexedAllocator struct {
	disk *Disk
}

func (a *indexedAllocator) Kind() StrategyKind { return StrategyIndexed }

// Allocate takes the lowest free block as the index block and the next size free
// blocks as data blocks.
func (a *indexedAllocator) Allocate(owner string, size int) (Layout, error) {
	if size <= 0 {
		return Layout{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	// Compared without size+1, which overflows for MaxInt.
	if free := a.disk.FreeCount(); size >= free {
		return Layout{}, fmt.Errorf("%w: need %d data blocks + 1 index block, %d free",
			ErrInsufficientSpace, size, free)
	}
	indices := a.disk.firstFree(size + 1)
	if err := a.disk.claim(indices, owner); err != nil {
		return Layout{}, err
	}
	indexBlock, pointers := indices[0], indices[1:]
	ib := a.disk.blocks[indexBlock]
	ib.IndexBlock = true
	ib.Pointers = append([]int(nil), pointers...)
	return Layout{
		Kind:       StrategyIndexed,
		IndexBlock: indexBlock,
		Pointers:   append([]int(nil), pointers...),
	}, nil
}

// Release frees the data blocks, then the index block.
func (a *indexedAllocator) Release(owner string, layout Layout) error {
	data, err := a.DataBlocks(owner, layout)
	if err != nil {
		return err
	}
	for _, idx := range data {
		if err := a.disk.MarkFree(idx); err != nil {
			return err
		}
	}
	return a.disk.MarkFree(layout.IndexBlock)
}

// DataBlocks dereferences the pointer list stored in the index block.
func (a *indexedAllocator) DataBlocks(owner string, layout Layout) ([]int, error) {
	ib, err := a.disk.at(layout.IndexBlock)
	if err != nil {
		return nil, fmt.Errorf("%w: %q index block: %v", ErrCorruptChain, owner, err)
	}
	if !ib.Occupied || ib.Owner != owner || !ib.IndexBlock {
		return nil, fmt.Errorf("%w: block %d is not the index block of %q", ErrCorruptChain, layout.IndexBlock, owner)
	}
	seen := map[int]bool{layout.IndexBlock: true}
	data := make([]int, 0, len(ib.Pointers))
	for _, p := range ib.Pointers {
		if p < 0 || p >= a.disk.Capacity() {
			return nil, fmt.Errorf("%w: %q points to out-of-range block %d", ErrCorruptChain, owner, p)
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: %q points to block %d twice", ErrCorruptChain, owner, p)
		}
		blk := a.disk.blocks[p]
		if !blk.Occupied || blk.Owner != owner {
			return nil, fmt.Errorf("%w: %q points to block %d it does not own", ErrCorruptChain, owner, p)
		}
		seen[p] = true
		data = append(data, p)
	}
	return data, nil
}
