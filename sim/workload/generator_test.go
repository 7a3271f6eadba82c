package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	// GIVEN the same spec twice
	g := GenSpec{Seed: 42, Operations: 50, MinSize: 1, MaxSize: 8, DeleteFraction: 0.4}

	// WHEN generated
	ops1, err1 := Generate(g)
	ops2, err2 := Generate(g)

	// THEN the sequences are identical
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, ops1, ops2)
	assert.Len(t, ops1, 50)
}

func TestGenerate_SizesInRangeAndDeletesTargetLiveFiles(t *testing.T) {
	g := GenSpec{Seed: 7, Operations: 200, MinSize: 2, MaxSize: 5, DeleteFraction: 0.5}
	ops, err := Generate(g)
	require.NoError(t, err)

	live := make(map[string]bool)
	deletes := 0
	for _, op := range ops {
		switch op.Op {
		case OpCreate:
			assert.GreaterOrEqual(t, op.Size, 2)
			assert.LessOrEqual(t, op.Size, 5)
			assert.False(t, live[op.File], "name %s reused", op.File)
			live[op.File] = true
		case OpDelete:
			assert.True(t, live[op.File], "delete of %s which is not live", op.File)
			delete(live, op.File)
			deletes++
		default:
			t.Fatalf("unexpected op %q", op.Op)
		}
	}
	assert.Greater(t, deletes, 0)
}

func TestGenerate_NoDeletes(t *testing.T) {
	ops, err := Generate(GenSpec{Seed: 1, Operations: 10, MinSize: 1, MaxSize: 1})
	require.NoError(t, err)
	for _, op := range ops {
		assert.Equal(t, OpCreate, op.Op)
	}
}

func TestGenSpec_Validate(t *testing.T) {
	tests := []GenSpec{
		{Operations: -1, MinSize: 1, MaxSize: 1},
		{Operations: 1, MinSize: 0, MaxSize: 1},
		{Operations: 1, MinSize: 4, MaxSize: 2},
		{Operations: 1, MinSize: 1, MaxSize: 1, DeleteFraction: 1},
	}
	for _, g := range tests {
		_, err := Generate(g)
		assert.Error(t, err, "%+v", g)
	}
}
