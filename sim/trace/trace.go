package trace

// TraceLevel controls the verbosity of operation tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelOperations captures every facade operation and its outcome.
	TraceLevelOperations TraceLevel = "operations"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:       true,
	TraceLevelOperations: true,
	"":                   true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Enabled reports whether records should be collected at this level.
func (l TraceLevel) Enabled() bool {
	return l == TraceLevelOperations
}

// SimulationTrace collects operation records during a simulation.
type SimulationTrace struct {
	Level      TraceLevel
	Operations []OperationRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(level TraceLevel) *SimulationTrace {
	return &SimulationTrace{
		Level:      level,
		Operations: make([]OperationRecord, 0),
	}
}

// Record appends an operation record, assigning it the next sequence number.
// No-op on a nil trace or when tracing is disabled.
func (st *SimulationTrace) Record(record OperationRecord) {
	if st == nil || !st.Level.Enabled() {
		return
	}
	record.Seq = len(st.Operations)
	st.Operations = append(st.Operations, record)
}
