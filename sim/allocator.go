package sim

import "fmt"

// Allocator places, walks and frees files on a disk under one allocation strategy.
// Contiguous, linked and indexed allocation are the only implementations; the
// simulator picks one at construction and keeps it for its lifetime.
//
// Allocate must leave the disk unchanged when it fails. Release must either free
// every block of the file or none of them.
type Allocator interface {
	Kind() StrategyKind
	Allocate(owner string, size int) (Layout, error)
	Release(owner string, layout Layout) error
	// DataBlocks returns the file's data block indices in file order
	// (index blocks are excluded).
	DataBlocks(owner string, layout Layout) ([]int, error)
}

// NewAllocator creates the allocator for kind operating on disk.
func NewAllocator(kind StrategyKind, disk *Disk) (Allocator, error) {
	switch kind {
	case StrategyContiguous:
		return &contiguousAllocator{disk: disk}, nil
	case StrategyLinked:
		return &linkedAllocator{disk: disk}, nil
	case StrategyIndexed:
		return &indexedAllocator{disk: disk}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, kind)
	}
}

// readTags returns the tags of blocks in order.
func readTags(disk *Disk, blocks []int) ([]string, error) {
	tags := make([]string, 0, len(blocks))
	for _, idx := range blocks {
		blk, err := disk.at(idx)
		if err != nil {
			return nil, err
		}
		tags = append(tags, blk.Tag)
	}
	return tags, nil
}

// writeTags overwrites the tags of blocks in order. Lengths are checked before
// any block is touched so a mismatch never leaves a partial write.
func writeTags(disk *Disk, blocks []int, data []string) error {
	if len(data) != len(blocks) {
		return fmt.Errorf("%w: got %d tags for %d blocks", ErrSizeMismatch, len(data), len(blocks))
	}
	for i, idx := range blocks {
		blk, err := disk.at(idx)
		if err != nil {
			return err
		}
		blk.Tag = data[i]
	}
	return nil
}
