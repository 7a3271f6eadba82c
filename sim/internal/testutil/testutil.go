// Package testutil provides shared test infrastructure for blocksim.
// It consolidates fixtures and assertion helpers used across sim/ and its
// sub-package tests, and deliberately does not import sim so that package sim's
// own tests can use it.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTempFile writes content to a file named name in a per-test temp dir and
// returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// Range returns [start, start+n).
func Range(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}

// AssertNoOverlap fails the test if any block index appears in more than one
// owner's set. owners maps owner name -> owned block indices.
func AssertNoOverlap(t *testing.T, owners map[string][]int) {
	t.Helper()
	seen := make(map[int]string)
	for owner, blocks := range owners {
		for _, b := range blocks {
			if prev, ok := seen[b]; ok {
				t.Errorf("block %d owned by both %q and %q", b, prev, owner)
			}
			seen[b] = owner
		}
	}
}

// IsContiguous reports whether blocks is one ascending run without gaps.
func IsContiguous(blocks []int) bool {
	for i := 1; i < len(blocks); i++ {
		if blocks[i] != blocks[i-1]+1 {
			return false
		}
	}
	return true
}
