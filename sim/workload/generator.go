package workload

import (
	"fmt"

	"github.com/blocksim/blocksim/sim"
)

// GenSpec parameterizes a synthetic create/delete workload.
type GenSpec struct {
	Seed           int64
	Operations     int     // number of operations to emit
	MinSize        int     // smallest file size in blocks (>= 1)
	MaxSize        int     // largest file size in blocks (>= MinSize)
	DeleteFraction float64 // probability in [0, 1) of deleting a live file instead of creating one
}

// Validate checks the generator parameters.
func (g GenSpec) Validate() error {
	if g.Operations < 0 {
		return fmt.Errorf("operations must be non-negative, got %d", g.Operations)
	}
	if g.MinSize < 1 {
		return fmt.Errorf("min size must be >= 1, got %d", g.MinSize)
	}
	if g.MaxSize < g.MinSize {
		return fmt.Errorf("max size %d is below min size %d", g.MaxSize, g.MinSize)
	}
	if g.DeleteFraction < 0 || g.DeleteFraction >= 1 {
		return fmt.Errorf("delete fraction must be in [0, 1), got %f", g.DeleteFraction)
	}
	return nil
}

// Generate creates a deterministic operation sequence from g. Files are named
// f0, f1, ... in creation order; deletes pick a random file still believed live.
// Creates that the disk later rejects still count as live here, so some deletes may
// target files that never made it; the simulator reports those as NotFound.
func Generate(g GenSpec) ([]Operation, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(g.Seed))
	sizeRNG := rng.ForSubsystem(sim.SubsystemSizes)
	victimRNG := rng.ForSubsystem(sim.SubsystemVictims)

	ops := make([]Operation, 0, g.Operations)
	var live []string
	next := 0
	for len(ops) < g.Operations {
		if len(live) > 0 && victimRNG.Float64() < g.DeleteFraction {
			i := victimRNG.Intn(len(live))
			ops = append(ops, Operation{Op: OpDelete, File: live[i]})
			live = append(live[:i], live[i+1:]...)
			continue
		}
		name := fmt.Sprintf("f%d", next)
		next++
		size := g.MinSize + sizeRNG.Intn(g.MaxSize-g.MinSize+1)
		ops = append(ops, Operation{Op: OpCreate, File: name, Size: size})
		live = append(live, name)
	}
	return ops, nil
}
