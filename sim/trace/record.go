// Package trace provides operation-trace recording for allocation analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// Operation names recorded by the simulator.
const (
	OpCreate = "create"
	OpDelete = "delete"
	OpRead   = "read"
	OpWrite  = "write"
)

// OperationRecord captures a single facade operation and its outcome.
type OperationRecord struct {
	Seq        int    // position in the trace, assigned by Record
	Op         string // one of the Op* constants
	File       string
	Size       int    // requested size for create; data length for write; 0 otherwise
	OK         bool
	Reason     string // failure kind (e.g. "InsufficientSpace"); empty on success
	Layout     string // placement description for successful creates
	FreeBlocks int    // free blocks after the operation
}
