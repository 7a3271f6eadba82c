package sim

// BlockView is the read-only per-block state handed to renderers.
type BlockView struct {
	Index      int
	Occupied   bool
	Owner      string
	Size       int // size of the owning file in data blocks; 0 when free
	Tag        string
	Next       int
	IndexBlock bool
	Pointers   []int // data blocks named by an index block; nil otherwise
}

// DiskSnapshot is a point-in-time copy of the whole disk, in block order.
// Front ends take one after every mutating operation to refresh their view.
type DiskSnapshot struct {
	Strategy StrategyKind
	Blocks   []BlockView
}

// FreeCount returns the number of free blocks in the snapshot.
func (s DiskSnapshot) FreeCount() int {
	n := 0
	for _, b := range s.Blocks {
		if !b.Occupied {
			n++
		}
	}
	return n
}

// OwnedBy returns the indices of blocks owned by name, ascending.
func (s DiskSnapshot) OwnedBy(name string) []int {
	var out []int
	for _, b := range s.Blocks {
		if b.Occupied && b.Owner == name {
			out = append(out, b.Index)
		}
	}
	return out
}

// OccupancyPattern returns the free/occupied state of every block.
func (s DiskSnapshot) OccupancyPattern() []bool {
	out := make([]bool, len(s.Blocks))
	for i, b := range s.Blocks {
		out[i] = b.Occupied
	}
	return out
}
