// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/retailgrid/internal/notify"
)

var info = Info{RunID: "run-1", Pipeline: "etl", Step: "load_data", Runner: "ingest"}

func states(events []notify.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.State
	}
	return out
}

func TestStep_SuccessPath(t *testing.T) {
	// --- Arrange ---
	rec := &notify.Recorder{}
	s := New(info, rec)
	ctx := context.Background()
	assert.Equal(t, StatePending, s.State())

	// --- Act ---
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Succeed(ctx, "/data/raw.parquet"))

	// --- Assert ---
	assert.Equal(t, StateSucceeded, s.State())
	assert.Equal(t, "/data/raw.parquet", s.Output())
	assert.Equal(t, []string{StateRunning, StateSucceeded}, states(rec.Events))
	last := rec.Events[1]
	assert.Equal(t, "/data/raw.parquet", last.Output)
	assert.Equal(t, "run-1", last.RunID)
	assert.Equal(t, "ingest", last.Runner)
	assert.False(t, last.Timestamp.IsZero())
}

func TestStep_FailurePath(t *testing.T) {
	rec := &notify.Recorder{}
	s := New(info, rec)
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Fail(ctx, errors.New("boom")))

	assert.Equal(t, StateFailed, s.State())
	assert.EqualError(t, s.Err(), "boom")
	require.Len(t, rec.Events, 2)
	assert.Equal(t, "boom", rec.Events[1].Error)
}

func TestStep_Skip(t *testing.T) {
	rec := &notify.Recorder{}
	s := New(info, rec)

	require.NoError(t, s.Skip(context.Background()))
	assert.Equal(t, StateSkipped, s.State())
	assert.Equal(t, []string{StateSkipped}, states(rec.Events))
}

func TestStep_RejectsInvalidTransitions(t *testing.T) {
	ctx := context.Background()
	s := New(info, nil)

	assert.Error(t, s.Succeed(ctx, "x"), "cannot succeed before starting")
	require.NoError(t, s.Start(ctx))
	assert.Error(t, s.Skip(ctx), "cannot skip a running step")
	assert.Error(t, s.Start(ctx), "cannot start twice")
	assert.Equal(t, StateRunning, s.State())
}

type failingNotifier struct{ calls int }

func (f *failingNotifier) Notify(context.Context, notify.Event) error {
	f.calls++
	return errors.New("offline")
}
func (f *failingNotifier) Close() error { return nil }

func TestStep_NotifierErrorsDoNotBlockTransitions(t *testing.T) {
	n := &failingNotifier{}
	s := New(info, n)

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, StateRunning, s.State())
	assert.Equal(t, 1, n.calls)
}

func TestStep_TransitionsAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(info, nil)
	require.NoError(t, s.Start(ctx))

	cancel()

	require.NoError(t, s.Fail(ctx, context.Canceled))
	assert.Equal(t, StateFailed, s.State())
}
