package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocksim/blocksim/sim/internal/testutil"
)

func TestLoadScript_ValidYAML(t *testing.T) {
	path := testutil.WriteTempFile(t, "ops.yaml", `
version: "1"
operations:
  - {op: create, file: a, size: 10}
  - {op: write, file: a, data: [x, y]}
  - {op: read, file: a}
  - {op: delete, file: a}
`)
	script, err := LoadScript(path)
	require.NoError(t, err)
	require.Len(t, script.Operations, 4)
	assert.Equal(t, Operation{Op: OpCreate, File: "a", Size: 10}, script.Operations[0])
	assert.Equal(t, []string{"x", "y"}, script.Operations[1].Data)
}

func TestLoadScript_MissingVersionDefaultsToV1(t *testing.T) {
	path := testutil.WriteTempFile(t, "ops.yaml", "operations:\n  - {op: read, file: a}\n")
	script, err := LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, "1", script.Version)
}

func TestLoadScript_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown op", "operations:\n  - {op: rename, file: a}\n"},
		{"missing file", "operations:\n  - {op: delete}\n"},
		{"create without size", "operations:\n  - {op: create, file: a}\n"},
		{"write without data", "operations:\n  - {op: write, file: a}\n"},
		{"unknown field", "operations:\n  - {op: read, file: a, offset: 3}\n"},
		{"unsupported version", "version: \"9\"\noperations: []\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := testutil.WriteTempFile(t, "ops.yaml", tc.content)
			_, err := LoadScript(path)
			assert.Error(t, err)
		})
	}
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "create a 3", Operation{Op: OpCreate, File: "a", Size: 3}.String())
	assert.Equal(t, "delete a", Operation{Op: OpDelete, File: "a"}.String())
	assert.Equal(t, "write a [x y]", Operation{Op: OpWrite, File: "a", Data: []string{"x", "y"}}.String())
}
