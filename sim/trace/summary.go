package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalOperations int
	SucceededCount  int
	FailedCount     int
	OpCounts        map[string]int // op name → count
	FailureReasons  map[string]int // failure kind → count
	MinFreeBlocks   int            // lowest free-block count observed after any operation
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		OpCounts:       make(map[string]int),
		FailureReasons: make(map[string]int),
	}
	if st == nil || len(st.Operations) == 0 {
		return summary
	}

	summary.TotalOperations = len(st.Operations)
	summary.MinFreeBlocks = st.Operations[0].FreeBlocks
	for _, op := range st.Operations {
		summary.OpCounts[op.Op]++
		if op.OK {
			summary.SucceededCount++
		} else {
			summary.FailedCount++
			summary.FailureReasons[op.Reason]++
		}
		if op.FreeBlocks < summary.MinFreeBlocks {
			summary.MinFreeBlocks = op.FreeBlocks
		}
	}
	return summary
}
