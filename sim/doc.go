// Package sim provides the block allocation engine of blocksim.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - disk.go: Block and Disk, the fixed-size block store
//   - allocator.go: the Allocator contract shared by the three strategies
//   - contiguous.go, linked.go, indexed.go: placement, walking and release
//   - simulator.go: the facade that keeps the directory and disk consistent
//
// # Architecture
//
// The sim package owns the core types; supporting packages live beside it:
//   - sim/trace/: per-operation trace records and summaries
//   - sim/workload/: operation scripts, synthetic workloads and replay
//   - sim/catalog/: the (name, size) file table persisted between sessions
//
// Rendering and interactive input are left to front ends (see cmd/), which call
// Simulator operations and redraw from Simulator.Snapshot after each mutation.
//
// # Strategies
//
// The strategy is chosen once, in NewSimulator, from Config.Strategy:
//   - contiguous: first-fit run of blocks, {Start, Length}
//   - linked: lowest free blocks chained by Next pointers, {Head}
//   - indexed: one index block holding pointers to the data blocks, {IndexBlock, Pointers}
//
// Failures are sentinel errors (ErrInsufficientSpace, ErrCorruptChain, ...) wrapped
// with context; match them with errors.Is.
package sim
