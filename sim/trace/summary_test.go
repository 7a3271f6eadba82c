package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceLevelOperations)

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalOperations != 0 {
		t.Errorf("expected 0 total operations, got %d", summary.TotalOperations)
	}
	if summary.SucceededCount != 0 || summary.FailedCount != 0 {
		t.Error("expected 0 succeeded and failed")
	}
	if len(summary.FailureReasons) != 0 {
		t.Error("expected empty failure reasons")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalOperations != 0 || summary.OpCounts == nil {
		t.Errorf("expected zero summary with initialized maps, got %+v", summary)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with mixed outcomes
	st := NewSimulationTrace(TraceLevelOperations)
	st.Record(OperationRecord{Op: OpCreate, File: "a", Size: 10, OK: true, FreeBlocks: 40})
	st.Record(OperationRecord{Op: OpCreate, File: "b", Size: 45, OK: false, Reason: "InsufficientSpace", FreeBlocks: 40})
	st.Record(OperationRecord{Op: OpDelete, File: "missing", OK: false, Reason: "NotFound", FreeBlocks: 40})
	st.Record(OperationRecord{Op: OpCreate, File: "c", Size: 30, OK: true, FreeBlocks: 10})
	st.Record(OperationRecord{Op: OpDelete, File: "a", OK: true, FreeBlocks: 20})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalOperations != 5 {
		t.Errorf("expected 5 operations, got %d", summary.TotalOperations)
	}
	if summary.SucceededCount != 3 {
		t.Errorf("expected 3 succeeded, got %d", summary.SucceededCount)
	}
	if summary.FailedCount != 2 {
		t.Errorf("expected 2 failed, got %d", summary.FailedCount)
	}
	if summary.OpCounts[OpCreate] != 3 || summary.OpCounts[OpDelete] != 2 {
		t.Errorf("unexpected op counts: %v", summary.OpCounts)
	}
	if summary.FailureReasons["InsufficientSpace"] != 1 || summary.FailureReasons["NotFound"] != 1 {
		t.Errorf("unexpected failure reasons: %v", summary.FailureReasons)
	}

	// THEN the low-water mark of free blocks is tracked
	if summary.MinFreeBlocks != 10 {
		t.Errorf("expected min free blocks 10, got %d", summary.MinFreeBlocks)
	}
}
