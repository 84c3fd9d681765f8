// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package handoff

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PushAndPull(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	// Pull of a value that was never pushed
	_, err := s.Pull(ctx, "load_data", KeyOutput)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Push(ctx, "load_data", KeyOutput, "/tmp/raw.parquet"))
	got, err := s.Pull(ctx, "load_data", KeyOutput)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/raw.parquet", got)

	// Overwrite
	require.NoError(t, s.Push(ctx, "load_data", KeyOutput, "/tmp/raw2.parquet"))
	got, err = s.Pull(ctx, "load_data", KeyOutput)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/raw2.parquet", got)

	// Keys of different steps do not collide
	_, err = s.Pull(ctx, "drop_duplicates", KeyOutput)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Push(ctx, "load_data", KeyRows, "7"))
	all, err := s.PullAll(ctx, "load_data")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyOutput: "/tmp/raw2.parquet", KeyRows: "7"}, all)

	none, err := s.PullAll(ctx, "drop_duplicates")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestMemory_Concurrency(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			step := fmt.Sprintf("step_%d", i)
			assert.NoError(t, s.Push(ctx, step, KeyRows, fmt.Sprint(i)))
			got, err := s.Pull(ctx, step, KeyRows)
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprint(i), got)
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.Snapshot(), 100)
}

func TestFile_PersistsAcrossOpens(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	path := LedgerPath(t.TempDir(), "run-1")

	first, err := OpenFile(path)
	require.NoError(t, err)

	// --- Act ---
	require.NoError(t, first.Push(ctx, "load_data", KeyOutput, "raw.parquet"))
	require.NoError(t, first.Push(ctx, "load_data", KeyRows, "42"))
	second, err := OpenFile(path)
	require.NoError(t, err)

	// --- Assert ---
	got, err := second.Pull(ctx, "load_data", KeyRows)
	require.NoError(t, err)
	assert.Equal(t, "42", got)
	assert.Equal(t, map[string]map[string]string{
		"load_data": {KeyOutput: "raw.parquet", KeyRows: "42"},
	}, second.Snapshot())
	assert.NoFileExists(t, path+".tmp")
}

func TestFile_CorruptLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFile(path)
	assert.ErrorContains(t, err, "decoding ledger")
}
