package sim

import (
	"fmt"
	"io"
	"sort"

	"github.com/c2h5oh/datasize"
)

// Metrics aggregates statistics about the simulation for final reporting:
// operations attempted and succeeded, failures by kind and peak disk usage.
type Metrics struct {
	Attempts       map[string]int // op name -> operations attempted
	Successes      map[string]int // op name -> operations that succeeded
	Failures       map[string]int // failure kind -> count
	PeakUsedBlocks int            // Max number of simultaneously occupied blocks
}

// NewMetrics returns a Metrics with initialized maps.
func NewMetrics() *Metrics {
	return &Metrics{
		Attempts:  make(map[string]int),
		Successes: make(map[string]int),
		Failures:  make(map[string]int),
	}
}

func (m *Metrics) record(op string, err error, usedBlocks int) {
	m.Attempts[op]++
	if err != nil {
		m.Failures[FailureKind(err)]++
	} else {
		m.Successes[op]++
	}
	if usedBlocks > m.PeakUsedBlocks {
		m.PeakUsedBlocks = usedBlocks
	}
}

// FragmentationStats describes how the free space of a disk is split up.
type FragmentationStats struct {
	FreeBlocks     int
	FreeRuns       int
	LargestFreeRun int
	// ExternalFragmentation is 1 - LargestFreeRun/FreeBlocks: 0 when all free
	// space is one run (or nothing is free), approaching 1 as it splinters.
	ExternalFragmentation float64
}

// Fragmentation computes free-space statistics for d.
func Fragmentation(d *Disk) FragmentationStats {
	runs := d.FreeRuns()
	stats := FragmentationStats{FreeBlocks: d.FreeCount(), FreeRuns: len(runs)}
	for _, r := range runs {
		if r.Length > stats.LargestFreeRun {
			stats.LargestFreeRun = r.Length
		}
	}
	if stats.FreeBlocks > 0 {
		stats.ExternalFragmentation = 1 - float64(stats.LargestFreeRun)/float64(stats.FreeBlocks)
	}
	return stats
}

// Print writes the aggregated metrics and the current disk usage to w.
func (m *Metrics) Print(w io.Writer, d *Disk, blockSize datasize.ByteSize) {
	frag := Fragmentation(d)
	bytesOf := func(blocks int) string {
		return (datasize.ByteSize(blocks) * blockSize).String()
	}

	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Disk Capacity        : %d blocks (%s)\n", d.Capacity(), bytesOf(d.Capacity()))
	fmt.Fprintf(w, "Used Blocks          : %d (%s)\n", d.UsedCount(), bytesOf(d.UsedCount()))
	fmt.Fprintf(w, "Peak Used Blocks     : %d\n", m.PeakUsedBlocks)
	fmt.Fprintf(w, "Free Blocks          : %d in %d runs (largest %d)\n", frag.FreeBlocks, frag.FreeRuns, frag.LargestFreeRun)
	fmt.Fprintf(w, "External Frag.       : %.2f\n", frag.ExternalFragmentation)
	for _, op := range sortedKeys(m.Attempts) {
		fmt.Fprintf(w, "%-21s: %d/%d succeeded\n", op, m.Successes[op], m.Attempts[op])
	}
	for _, kind := range sortedKeys(m.Failures) {
		fmt.Fprintf(w, "Failed %-14s: %d\n", kind, m.Failures[kind])
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
