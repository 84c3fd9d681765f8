// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package lifecycle tracks the state of one step within a run and reports
// every transition to a notifier.
//
//	pending --start--> running --succeed--> succeeded
//	                           --fail-----> failed
//	pending --skip---> skipped
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/looplab/fsm"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/notify"
)

// States.
const (
	StatePending   = "pending"
	StateRunning   = "running"
	StateSucceeded = "succeeded"
	StateFailed    = "failed"
	StateSkipped   = "skipped"
)

// Events.
const (
	EventStart   = "start"
	EventSucceed = "succeed"
	EventFail    = "fail"
	EventSkip    = "skip"
)

// Info identifies the step a machine belongs to.
type Info struct {
	RunID    string
	Pipeline string
	Step     string
	Runner   string
}

// Step is the state machine of one step.
type Step struct {
	info     Info
	notifier notify.Notifier
	now      func() time.Time
	fsm      *fsm.FSM

	output string
	err    error
}

// New creates a pending step. A nil notifier discards events.
func New(info Info, notifier notify.Notifier) *Step {
	s := &Step{info: info, notifier: notifier, now: time.Now}
	s.fsm = fsm.NewFSM(
		StatePending,
		fsm.Events{
			{Name: EventStart, Src: []string{StatePending}, Dst: StateRunning},
			{Name: EventSucceed, Src: []string{StateRunning}, Dst: StateSucceeded},
			{Name: EventFail, Src: []string{StateRunning}, Dst: StateFailed},
			{Name: EventSkip, Src: []string{StatePending}, Dst: StateSkipped},
		},
		fsm.Callbacks{
			"enter_state": s.enterState,
		},
	)
	return s
}

// Info returns the step's identity.
func (s *Step) Info() Info { return s.info }

// State returns the current state.
func (s *Step) State() string { return s.fsm.Current() }

// Output returns the reference recorded on success.
func (s *Step) Output() string { return s.output }

// Err returns the error recorded on failure.
func (s *Step) Err() error { return s.err }

// Start moves the step to running.
func (s *Step) Start(ctx context.Context) error {
	return s.event(ctx, EventStart)
}

// Succeed records output and moves the step to succeeded.
func (s *Step) Succeed(ctx context.Context, output string) error {
	s.output = output
	return s.event(ctx, EventSucceed)
}

// Fail records cause and moves the step to failed.
func (s *Step) Fail(ctx context.Context, cause error) error {
	s.err = cause
	return s.event(ctx, EventFail)
}

// Skip marks a step that will not run because an earlier one failed.
func (s *Step) Skip(ctx context.Context) error {
	return s.event(ctx, EventSkip)
}

// event fires name on the machine. Cancellation is detached: a run that is
// being cancelled must still record its failed and skipped steps.
func (s *Step) event(ctx context.Context, name string) error {
	if err := s.fsm.Event(context.WithoutCancel(ctx), name); err != nil {
		return fmt.Errorf("step %q: %w", s.info.Step, err)
	}
	return nil
}

func (s *Step) enterState(ctx context.Context, e *fsm.Event) {
	if s.notifier == nil {
		return
	}
	ev := notify.Event{
		RunID:     s.info.RunID,
		Pipeline:  s.info.Pipeline,
		Step:      s.info.Step,
		Runner:    s.info.Runner,
		State:     e.Dst,
		Timestamp: s.now().UTC(),
	}
	switch e.Dst {
	case StateSucceeded:
		ev.Output = s.output
	case StateFailed:
		if s.err != nil {
			ev.Error = s.err.Error()
		}
	}
	if err := s.notifier.Notify(ctx, ev); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to deliver step notification", "step", s.info.Step, "state", e.Dst, "error", err)
	}
}
