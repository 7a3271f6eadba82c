package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/c2h5oh/datasize"
	"gopkg.in/yaml.v3"

	"github.com/blocksim/blocksim/sim/trace"
)

// Default configuration values, matching the classroom setup of a 50-block disk.
const (
	DefaultCapacity  = 50
	DefaultStrategy  = StrategyContiguous
	DefaultBlockSize = 1 * datasize.KB
)

// Config groups the parameters fixed for a simulator's lifetime.
type Config struct {
	Capacity   int               `yaml:"capacity"`    // number of blocks (must be > 0)
	Strategy   StrategyKind      `yaml:"strategy"`    // "contiguous", "linked" or "indexed"
	BlockSize  datasize.ByteSize `yaml:"block_size"`  // bytes per block, for reporting only (e.g. "4KB")
	TraceLevel trace.TraceLevel  `yaml:"trace_level"` // "none" (default) or "operations"
}

// DefaultConfig returns the configuration used when no file or flag overrides it.
func DefaultConfig() Config {
	return Config{
		Capacity:   DefaultCapacity,
		Strategy:   DefaultStrategy,
		BlockSize:  DefaultBlockSize,
		TraceLevel: trace.TraceLevelNone,
	}
}

// Validate checks that all fields hold usable values.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be > 0, got %d", ErrInvalidCapacity, c.Capacity)
	}
	if !ValidStrategies[c.Strategy] {
		return fmt.Errorf("%w %q (valid: contiguous, linked, indexed)", ErrUnknownStrategy, c.Strategy)
	}
	if c.BlockSize == 0 {
		return fmt.Errorf("block_size must be > 0")
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("unknown trace level %q", c.TraceLevel)
	}
	return nil
}

// LoadConfig reads a YAML simulator configuration. Fields absent from the file keep
// their DefaultConfig values. Unknown fields are rejected so typos surface as errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading simulator config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing simulator config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid simulator config: %w", err)
	}
	return cfg, nil
}
