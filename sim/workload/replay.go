package workload

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/blocksim/blocksim/sim"
)

// Result is the outcome of one replayed operation.
type Result struct {
	Operation Operation
	Layout    sim.Layout // set for successful creates
	Data      []string   // set for successful reads
	Err       error
}

// Replay applies ops to s in order. Failures are normal outcomes: they are recorded
// in the result and the replay continues.
func Replay(s *sim.Simulator, ops []Operation) []Result {
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		r := Result{Operation: op}
		switch op.Op {
		case OpCreate:
			r.Layout, r.Err = s.CreateFile(op.File, op.Size)
		case OpDelete:
			r.Err = s.DeleteFile(op.File)
		case OpRead:
			r.Data, r.Err = s.ReadFile(op.File)
		case OpWrite:
			r.Err = s.WriteFile(op.File, op.Data)
		default:
			r.Err = fmt.Errorf("unknown op %q", op.Op)
		}
		if r.Err != nil {
			logrus.Debugf("replay: %s failed: %v", op, r.Err)
		}
		results = append(results, r)
	}
	return results
}

// CountFailures returns how many results carry an error.
func CountFailures(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
