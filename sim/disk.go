package sim

import "fmt"

const (
	// EndOfChain terminates a linked file's block chain.
	EndOfChain = -1
	// NoLink marks a block that is not part of a linked chain.
	NoLink = -2
)

// Block represents the smallest addressable unit of the simulated disk.
// Index is fixed at disk creation; everything else changes as files come and go.
type Block struct {
	Index      int    // 0-based position on the disk
	Occupied   bool   // Whether a file currently owns this block
	Owner      string // Name of the owning file ("" when free)
	Tag        string // Opaque per-block content; starts as the owner name
	Next       int    // Linked allocation: next block or EndOfChain; NoLink otherwise
	IndexBlock bool   // Indexed allocation: true for the block holding the pointer list
	Pointers   []int  // Indexed allocation: data block indices (index blocks only)
}

// Run is a maximal stretch of consecutive free blocks.
type Run struct {
	Start  int
	Length int
}

// Disk is the block store: a fixed-length sequence of blocks that is never resized.
// It only tracks physical state; ownership consistency with the directory is the
// simulator's job.
type Disk struct {
	blocks       []*Block
	usedBlockCnt int // tracked incrementally by MarkOccupied/MarkFree
}

// NewDisk creates a disk of capacity free blocks, indexed 0..capacity-1.
func NewDisk(capacity int) (*Disk, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d (must be > 0)", ErrInvalidCapacity, capacity)
	}
	d := &Disk{blocks: make([]*Block, capacity)}
	for i := 0; i < capacity; i++ {
		d.blocks[i] = &Block{Index: i, Next: NoLink}
	}
	return d, nil
}

// Capacity returns the number of blocks on the disk.
func (d *Disk) Capacity() int {
	return len(d.blocks)
}

// FreeCount returns the number of blocks not owned by any file.
func (d *Disk) FreeCount() int {
	return len(d.blocks) - d.usedBlockCnt
}

// UsedCount returns the number of occupied blocks.
func (d *Disk) UsedCount() int {
	return d.usedBlockCnt
}

func (d *Disk) at(index int) (*Block, error) {
	if index < 0 || index >= len(d.blocks) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(d.blocks))
	}
	return d.blocks[index], nil
}

// IsFree reports whether the block at index is free.
func (d *Disk) IsFree(index int) (bool, error) {
	blk, err := d.at(index)
	if err != nil {
		return false, err
	}
	return !blk.Occupied, nil
}

// Block returns a copy of the block at index.
func (d *Disk) Block(index int) (Block, error) {
	blk, err := d.at(index)
	if err != nil {
		return Block{}, err
	}
	cp := *blk
	if blk.Pointers != nil {
		cp.Pointers = append([]int(nil), blk.Pointers...)
	}
	return cp, nil
}

// MarkOccupied hands the block at index to owner and seeds its tag with the owner name.
func (d *Disk) MarkOccupied(index int, owner string) error {
	blk, err := d.at(index)
	if err != nil {
		return err
	}
	if blk.Occupied {
		return fmt.Errorf("%w: block %d owned by %q", ErrAlreadyOccupied, index, blk.Owner)
	}
	blk.Occupied = true
	blk.Owner = owner
	blk.Tag = owner
	blk.Next = NoLink
	blk.IndexBlock = false
	blk.Pointers = nil
	d.usedBlockCnt++
	return nil
}

// MarkFree returns the block at index to the free pool and clears all of its metadata.
func (d *Disk) MarkFree(index int) error {
	blk, err := d.at(index)
	if err != nil {
		return err
	}
	if !blk.Occupied {
		return fmt.Errorf("%w: block %d", ErrAlreadyFree, index)
	}
	*blk = Block{Index: index, Next: NoLink}
	d.usedBlockCnt--
	return nil
}

// firstFree returns up to n free block indices in ascending order.
func (d *Disk) firstFree(n int) []int {
	out := make([]int, 0, n)
	for _, blk := range d.blocks {
		if len(out) == n {
			break
		}
		if !blk.Occupied {
			out = append(out, blk.Index)
		}
	}
	return out
}

// FreeRuns returns the maximal runs of free blocks in ascending order.
func (d *Disk) FreeRuns() []Run {
	var runs []Run
	start := -1
	for i, blk := range d.blocks {
		if !blk.Occupied {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, Run{Start: start, Length: i - start})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, Run{Start: start, Length: len(d.blocks) - start})
	}
	return runs
}

// claim marks every index occupied by owner. On failure the blocks claimed so far
// are released again so the disk is left exactly as it was.
func (d *Disk) claim(indices []int, owner string) error {
	for i, idx := range indices {
		if err := d.MarkOccupied(idx, owner); err != nil {
			for _, done := range indices[:i] {
				_ = d.MarkFree(done)
			}
			return err
		}
	}
	return nil
}
