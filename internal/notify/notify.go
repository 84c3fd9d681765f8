// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package notify publishes step state transitions to interested parties.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
)

// Event describes one step entering a state.
type Event struct {
	RunID     string    `json:"run_id"`
	Pipeline  string    `json:"pipeline"`
	Step      string    `json:"step"`
	Runner    string    `json:"runner"`
	State     string    `json:"state"`
	Output    string    `json:"output,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Fields returns the event as a flat map for transports that take untyped
// payloads.
func (e Event) Fields() map[string]any {
	m := map[string]any{
		"run_id":    e.RunID,
		"pipeline":  e.Pipeline,
		"step":      e.Step,
		"runner":    e.Runner,
		"state":     e.State,
		"timestamp": e.Timestamp.UTC().Format(time.RFC3339Nano),
	}
	if e.Output != "" {
		m["output"] = e.Output
	}
	if e.Error != "" {
		m["error"] = e.Error
	}
	return m
}

// Notifier receives events. Implementations must not block the pipeline for
// long; failures are reported but never fail a step.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
	Close() error
}

// Log writes events to the context logger.
type Log struct{}

// Notify implements Notifier.
func (Log) Notify(ctx context.Context, e Event) error {
	args := []any{"runID", e.RunID, "step", e.Step, "runner", e.Runner, "state", e.State}
	if e.Output != "" {
		args = append(args, "output", e.Output)
	}
	if e.Error != "" {
		args = append(args, "error", e.Error)
		ctxlog.FromContext(ctx).Error("Step state changed", args...)
		return nil
	}
	ctxlog.FromContext(ctx).Debug("Step state changed", args...)
	return nil
}

// Close implements Notifier.
func (Log) Close() error { return nil }

// Multi fans an event out to several notifiers.
type Multi []Notifier

// Notify implements Notifier. Every notifier is called; errors are joined.
func (m Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements Notifier.
func (m Multi) Close() error {
	var errs []error
	for _, n := range m {
		if err := n.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps every event in memory. Tests use it to observe transitions.
type Recorder struct {
	Events []Event
}

// Notify implements Notifier.
func (r *Recorder) Notify(_ context.Context, e Event) error {
	r.Events = append(r.Events, e)
	return nil
}

// Close implements Notifier.
func (r *Recorder) Close() error { return nil }
