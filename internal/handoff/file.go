// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store persisted as a JSON document. The whole ledger is rewritten
// through a temporary file on every push.
type File struct {
	path string
	mu   sync.Mutex
	mem  *Memory
}

// LedgerPath is where the ledger of runID lives inside workDir.
func LedgerPath(workDir, runID string) string {
	return filepath.Join(workDir, ".handoff", runID+".json")
}

// OpenFile loads the ledger at path, or starts an empty one if the file does
// not exist yet.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, mem: NewMemory()}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("handoff: reading ledger %s: %w", path, err)
	}

	var doc map[string]map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("handoff: decoding ledger %s: %w", path, err)
	}
	for step, values := range doc {
		for key, value := range values {
			f.mem.values.Store(entryKey(step, key), value)
		}
	}
	return f, nil
}

// Path returns the ledger's location.
func (f *File) Path() string { return f.path }

// Push implements Store.
func (f *File) Push(ctx context.Context, step, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.mem.Push(ctx, step, key, value); err != nil {
		return err
	}
	return f.flush()
}

// Pull implements Store.
func (f *File) Pull(ctx context.Context, step, key string) (string, error) {
	return f.mem.Pull(ctx, step, key)
}

// PullAll implements Store.
func (f *File) PullAll(ctx context.Context, step string) (map[string]string, error) {
	return f.mem.PullAll(ctx, step)
}

// Snapshot returns a copy of all values grouped by step.
func (f *File) Snapshot() map[string]map[string]string {
	return f.mem.Snapshot()
}

func (f *File) flush() error {
	data, err := json.MarshalIndent(f.mem.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("handoff: encoding ledger: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("handoff: creating ledger directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("handoff: writing ledger: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("handoff: replacing ledger: %w", err)
	}
	return nil
}
