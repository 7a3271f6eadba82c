package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/blocksim/blocksim/sim/trace"
)

// Simulator is the facade over one disk, its directory and the allocation strategy
// chosen at construction. Each operation runs to completion and leaves the disk and
// directory consistent: every occupied block belongs to exactly one directory entry.
//
// A Simulator is not safe for concurrent use. A concurrent front end must hold one
// exclusive lock across each whole operation.
type Simulator struct {
	config    Config
	disk      *Disk
	directory *Directory
	allocator Allocator
	metrics   *Metrics
	trace     *trace.SimulationTrace
}

// NewSimulator validates cfg and creates an empty disk managed by cfg.Strategy.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	disk, err := NewDisk(cfg.Capacity)
	if err != nil {
		return nil, err
	}
	alloc, err := NewAllocator(cfg.Strategy, disk)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("simulator created: %d blocks, strategy=%s, block size=%s",
		cfg.Capacity, cfg.Strategy, cfg.BlockSize.String())
	return &Simulator{
		config:    cfg,
		disk:      disk,
		directory: NewDirectory(),
		allocator: alloc,
		metrics:   NewMetrics(),
		trace:     trace.NewSimulationTrace(cfg.TraceLevel),
	}, nil
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() Config { return s.config }

// Strategy returns the active allocation strategy.
func (s *Simulator) Strategy() StrategyKind { return s.allocator.Kind() }

// Disk returns the underlying block store. Callers must treat it as read-only.
func (s *Simulator) Disk() *Disk { return s.disk }

// Metrics returns the running operation counters.
func (s *Simulator) Metrics() *Metrics { return s.metrics }

// Trace returns the operation trace (empty unless tracing is enabled).
func (s *Simulator) Trace() *trace.SimulationTrace { return s.trace }

// Files returns every file entry sorted by name.
func (s *Simulator) Files() []FileEntry { return s.directory.Entries() }

// Lookup returns the entry for name.
func (s *Simulator) Lookup(name string) (FileEntry, bool) { return s.directory.Lookup(name) }

// CreateFile allocates size data blocks for a new file called name.
// On any failure the disk and directory are left unchanged.
func (s *Simulator) CreateFile(name string, size int) (layout Layout, err error) {
	defer func() { s.observe(trace.OpCreate, name, size, err, layout) }()

	if name == "" {
		return Layout{}, fmt.Errorf("create: %w: name must be non-empty", ErrInvalidName)
	}
	if s.directory.Contains(name) {
		return Layout{}, fmt.Errorf("create %q: %w", name, ErrDuplicateName)
	}
	if size <= 0 {
		return Layout{}, fmt.Errorf("create %q: %w: %d (must be > 0)", name, ErrInvalidSize, size)
	}
	layout, err = s.allocator.Allocate(name, size)
	if err != nil {
		return Layout{}, fmt.Errorf("create %q: %w", name, err)
	}
	s.directory.put(FileEntry{Name: name, Size: size, Layout: layout.clone()})
	logrus.Debugf("created %q (%d blocks) at %s", name, size, layout)
	return layout, nil
}

// DeleteFile frees every block of name and removes its entry. If the allocator
// cannot release the file (a corrupt chain) the entry is kept and the error returned;
// the file stays in that state until an operator intervenes.
func (s *Simulator) DeleteFile(name string) (err error) {
	defer func() { s.observe(trace.OpDelete, name, 0, err, Layout{}) }()

	entry, ok := s.directory.Lookup(name)
	if !ok {
		return fmt.Errorf("delete %q: %w", name, ErrNotFound)
	}
	if err := s.allocator.Release(name, entry.Layout); err != nil {
		logrus.Warnf("delete %q failed, entry kept: %v", name, err)
		return fmt.Errorf("delete %q: %w", name, err)
	}
	s.directory.remove(name)
	logrus.Debugf("deleted %q, %d blocks free", name, s.disk.FreeCount())
	return nil
}

// ReadFile returns the tags of the file's data blocks in file order.
func (s *Simulator) ReadFile(name string) (data []string, err error) {
	defer func() { s.observe(trace.OpRead, name, 0, err, Layout{}) }()

	blocks, err := s.dataBlocks(name)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	data, err = readTags(s.disk, blocks)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	return data, nil
}

// WriteFile overwrites the tags of the file's data blocks in file order.
// data must have exactly one element per data block; otherwise nothing is written.
func (s *Simulator) WriteFile(name string, data []string) (err error) {
	defer func() { s.observe(trace.OpWrite, name, len(data), err, Layout{}) }()

	blocks, err := s.dataBlocks(name)
	if err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	if err := writeTags(s.disk, blocks, data); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	logrus.Debugf("wrote %d blocks of %q", len(data), name)
	return nil
}

func (s *Simulator) dataBlocks(name string) ([]int, error) {
	entry, ok := s.directory.Lookup(name)
	if !ok {
		return nil, ErrNotFound
	}
	blocks, err := s.allocator.DataBlocks(name, entry.Layout)
	if err != nil {
		logrus.Warnf("file %q is unreadable: %v", name, err)
		return nil, err
	}
	return blocks, nil
}

// Snapshot returns a copy of every block's state in disk order.
func (s *Simulator) Snapshot() DiskSnapshot {
	sizes := make(map[string]int, s.directory.Len())
	for name, e := range s.directory.entries {
		sizes[name] = e.Size
	}
	snap := DiskSnapshot{Strategy: s.allocator.Kind(), Blocks: make([]BlockView, len(s.disk.blocks))}
	for i, blk := range s.disk.blocks {
		snap.Blocks[i] = BlockView{
			Index:      blk.Index,
			Occupied:   blk.Occupied,
			Owner:      blk.Owner,
			Size:       sizes[blk.Owner],
			Tag:        blk.Tag,
			Next:       blk.Next,
			IndexBlock: blk.IndexBlock,
		}
		if blk.Pointers != nil {
			snap.Blocks[i].Pointers = append([]int(nil), blk.Pointers...)
		}
	}
	return snap
}

func (s *Simulator) observe(op, name string, size int, err error, layout Layout) {
	s.metrics.record(op, err, s.disk.UsedCount())
	rec := trace.OperationRecord{
		Op:         op,
		File:       name,
		Size:       size,
		OK:         err == nil,
		Reason:     FailureKind(err),
		FreeBlocks: s.disk.FreeCount(),
	}
	if err == nil && op == trace.OpCreate {
		rec.Layout = layout.String()
	}
	s.trace.Record(rec)
}
