package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blocksim/blocksim/sim/trace"
)

// newTestSimulator builds a simulator with tracing on so tests can inspect records.
func newTestSimulator(t *testing.T, kind StrategyKind, capacity int) *Simulator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Strategy = kind
	cfg.Capacity = capacity
	cfg.TraceLevel = trace.TraceLevelOperations
	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	return s
}

// ownersOf groups occupied block indices by owner.
func ownersOf(snap DiskSnapshot) map[string][]int {
	out := make(map[string][]int)
	for _, b := range snap.Blocks {
		if b.Occupied {
			out[b.Owner] = append(out[b.Owner], b.Index)
		}
	}
	return out
}

// occupy marks the given blocks as owned by a placeholder to fragment a disk directly.
func occupy(t *testing.T, d *Disk, owner string, indices ...int) {
	t.Helper()
	for _, i := range indices {
		require.NoError(t, d.MarkOccupied(i, owner))
	}
}
