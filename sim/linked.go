package sim

import "fmt"

// linkedAllocator chains a file's blocks through per-block next pointers.
// Blocks need not be contiguous; they are taken in ascending index order.
type linkedAllocator struct {
	disk *Disk
}

func (a *linkedAllocator) Kind() StrategyKind { return StrategyLinked }

func (a *linkedAllocator) Allocate(owner string, size int) (Layout, error) {
	if size <= 0 {
		return Layout{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if free := a.disk.FreeCount(); free < size {
		return Layout{}, fmt.Errorf("%w: need %d blocks, %d free", ErrInsufficientSpace, size, free)
	}
	indices := a.disk.firstFree(size)
	if err := a.disk.claim(indices, owner); err != nil {
		return Layout{}, err
	}
	for i, idx := range indices {
		next := EndOfChain
		if i+1 < len(indices) {
			next = indices[i+1]
		}
		a.disk.blocks[idx].Next = next
	}
	return Layout{Kind: StrategyLinked, Head: indices[0]}, nil
}

// Release walks the whole chain first and only frees once the walk succeeded,
// so a corrupt chain leaves the disk untouched.
func (a *linkedAllocator) Release(owner string, layout Layout) error {
	chain, err := a.DataBlocks(owner, layout)
	if err != nil {
		return err
	}
	for _, idx := range chain {
		if err := a.disk.MarkFree(idx); err != nil {
			return err
		}
	}
	return nil
}

// DataBlocks walks the chain from the head to EndOfChain. It fails with
// ErrCorruptChain on a cycle, a dangling link, or a link into a free block or
// another file's block.
func (a *linkedAllocator) DataBlocks(owner string, layout Layout) ([]int, error) {
	visited := make(map[int]bool)
	var chain []int
	for cur := layout.Head; cur != EndOfChain; {
		if cur < 0 || cur >= a.disk.Capacity() {
			return nil, fmt.Errorf("%w: %q links to out-of-range block %d", ErrCorruptChain, owner, cur)
		}
		if visited[cur] {
			return nil, fmt.Errorf("%w: %q revisits block %d", ErrCorruptChain, owner, cur)
		}
		blk := a.disk.blocks[cur]
		if !blk.Occupied {
			return nil, fmt.Errorf("%w: %q links to free block %d", ErrCorruptChain, owner, cur)
		}
		if blk.Owner != owner {
			return nil, fmt.Errorf("%w: %q links to block %d owned by %q", ErrCorruptChain, owner, cur, blk.Owner)
		}
		visited[cur] = true
		chain = append(chain, cur)
		cur = blk.Next
	}
	return chain, nil
}
