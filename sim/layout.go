package sim

import "fmt"

// StrategyKind selects the allocation strategy of a simulator.
type StrategyKind string

const (
	StrategyContiguous StrategyKind = "contiguous"
	StrategyLinked     StrategyKind = "linked"
	StrategyIndexed    StrategyKind = "indexed"
)

// ValidStrategies is the set of recognized strategy names.
// Shared by Config.Validate() and NewAllocator().
var ValidStrategies = map[StrategyKind]bool{
	StrategyContiguous: true,
	StrategyLinked:     true,
	StrategyIndexed:    true,
}

// IsValidStrategy returns true if name is a recognized strategy.
func IsValidStrategy(name string) bool {
	return ValidStrategies[StrategyKind(name)]
}

// Layout describes where a file lives on the disk. Which fields are meaningful
// depends on Kind:
//   - contiguous: Start, Length
//   - linked:     Head
//   - indexed:    IndexBlock, Pointers
type Layout struct {
	Kind       StrategyKind
	Start      int
	Length     int
	Head       int
	IndexBlock int
	Pointers   []int
}

// String returns a short human-readable description of the layout.
func (l Layout) String() string {
	switch l.Kind {
	case StrategyContiguous:
		return fmt.Sprintf("contiguous{start=%d, length=%d}", l.Start, l.Length)
	case StrategyLinked:
		return fmt.Sprintf("linked{head=%d}", l.Head)
	case StrategyIndexed:
		return fmt.Sprintf("indexed{index=%d, pointers=%v}", l.IndexBlock, l.Pointers)
	default:
		return fmt.Sprintf("unknown{%s}", l.Kind)
	}
}

func (l Layout) clone() Layout {
	if l.Pointers != nil {
		l.Pointers = append([]int(nil), l.Pointers...)
	}
	return l
}
