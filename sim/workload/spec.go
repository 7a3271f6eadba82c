package workload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Operation names accepted in scripts.
const (
	OpCreate = "create"
	OpDelete = "delete"
	OpRead   = "read"
	OpWrite  = "write"
)

// validOps is the set of recognized operation names.
var validOps = map[string]bool{OpCreate: true, OpDelete: true, OpRead: true, OpWrite: true}

// Script is the top-level operation script.
// Loaded from YAML via LoadScript(path).
type Script struct {
	Version    string      `yaml:"version"`
	Operations []Operation `yaml:"operations"`
}

// Operation is one request issued to the simulator.
type Operation struct {
	Op   string   `yaml:"op"`
	File string   `yaml:"file"`
	Size int      `yaml:"size,omitempty"` // create only
	Data []string `yaml:"data,omitempty"` // write only
}

// String renders the operation the way the shell accepts it.
func (o Operation) String() string {
	switch o.Op {
	case OpCreate:
		return fmt.Sprintf("create %s %d", o.File, o.Size)
	case OpWrite:
		return fmt.Sprintf("write %s %v", o.File, o.Data)
	default:
		return fmt.Sprintf("%s %s", o.Op, o.File)
	}
}

// LoadScript reads and validates a YAML operation script.
// Unknown fields are rejected.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload script: %w", err)
	}
	var script Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&script); err != nil {
		return nil, fmt.Errorf("parsing workload script: %w", err)
	}
	if script.Version == "" {
		script.Version = "1"
	}
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload script: %w", err)
	}
	logrus.Debugf("loaded %d operations from %s", len(script.Operations), path)
	return &script, nil
}

// Validate checks operation names and per-operation required fields. It does not
// check sizes or names against any disk: those failures are simulator outcomes.
func (s *Script) Validate() error {
	if s.Version != "1" {
		return fmt.Errorf("unsupported version %q", s.Version)
	}
	for i, op := range s.Operations {
		if !validOps[op.Op] {
			return fmt.Errorf("operation %d: unknown op %q", i, op.Op)
		}
		if op.File == "" {
			return fmt.Errorf("operation %d (%s): file is required", i, op.Op)
		}
		if op.Op == OpCreate && op.Size == 0 {
			return fmt.Errorf("operation %d (create %s): size is required", i, op.File)
		}
		if op.Op == OpWrite && len(op.Data) == 0 {
			return fmt.Errorf("operation %d (write %s): data is required", i, op.File)
		}
	}
	return nil
}
