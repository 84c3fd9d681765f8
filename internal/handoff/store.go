// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package handoff

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Well-known keys.
const (
	KeyOutput = "output"
	KeyRows   = "rows"
)

// ErrNotFound is returned by Pull when a step has not pushed the key.
var ErrNotFound = errors.New("handoff value not found")

// Store is a per-run key/value ledger of step results.
type Store interface {
	Push(ctx context.Context, step, key, value string) error
	Pull(ctx context.Context, step, key string) (string, error)
	// PullAll returns every value step pushed. The map is empty, not nil,
	// for a step that pushed nothing.
	PullAll(ctx context.Context, step string) (map[string]string, error)
}

// Memory is an in-process Store using sync.Map.
type Memory struct {
	values sync.Map // Key: step + "\x00" + key, Value: string
}

// NewMemory creates an empty ledger.
func NewMemory() *Memory {
	return &Memory{}
}

func entryKey(step, key string) string {
	return step + "\x00" + key
}

// Push records value for step/key, replacing any previous value.
func (m *Memory) Push(ctx context.Context, step, key, value string) error {
	m.values.Store(entryKey(step, key), value)
	return nil
}

// Pull retrieves the value step pushed under key.
func (m *Memory) Pull(ctx context.Context, step, key string) (string, error) {
	v, ok := m.values.Load(entryKey(step, key))
	if !ok {
		return "", fmt.Errorf("step %q key %q: %w", step, key, ErrNotFound)
	}
	return v.(string), nil
}

// PullAll implements Store.
func (m *Memory) PullAll(ctx context.Context, step string) (map[string]string, error) {
	out := map[string]string{}
	m.values.Range(func(k, v any) bool {
		if s, key := splitKey(k.(string)); s == step {
			out[key] = v.(string)
		}
		return true
	})
	return out, nil
}

// Snapshot returns a copy of all values grouped by step.
func (m *Memory) Snapshot() map[string]map[string]string {
	out := map[string]map[string]string{}
	m.values.Range(func(k, v any) bool {
		step, key := splitKey(k.(string))
		if out[step] == nil {
			out[step] = map[string]string{}
		}
		out[step][key] = v.(string)
		return true
	})
	return out
}

func splitKey(k string) (string, string) {
	for i := 0; i < len(k); i++ {
		if k[i] == 0 {
			return k[:i], k[i+1:]
		}
	}
	return k, ""
}
