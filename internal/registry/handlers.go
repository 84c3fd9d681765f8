// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"context"
	"fmt"
	"log/slog"
)

// Result is what a runner hands to the next step.
type Result struct {
	// Output is a snapshot path or an object URI.
	Output string
	// Rows is the number of rows in Output, or -1 when unknown.
	Rows int64
	// Meta holds additional values recorded in the handoff ledger.
	Meta map[string]string
}

// HandlerFunc is the untyped signature the executor calls.
type HandlerFunc func(ctx context.Context, deps *Deps, input any) (*Result, error)

// RegisteredRunner holds the compiled Go parts of a runner.
type RegisteredRunner struct {
	Description string
	// NewInput returns a pointer to a fresh input struct with defaults set.
	NewInput func() any
	Fn       HandlerFunc
}

// Runner builds a RegisteredRunner from a typed handler. newInput supplies
// the defaults; arguments from the configuration are decoded over them.
func Runner[I any](description string, newInput func() *I, fn func(ctx context.Context, deps *Deps, input *I) (*Result, error)) *RegisteredRunner {
	return &RegisteredRunner{
		Description: description,
		NewInput:    func() any { return newInput() },
		Fn: func(ctx context.Context, deps *Deps, input any) (*Result, error) {
			typed, ok := input.(*I)
			if !ok {
				return nil, fmt.Errorf("runner input has type %T, want %T", input, new(I))
			}
			return fn(ctx, deps, typed)
		},
	}
}

// RegisterRunner registers the Go handler for a runner type.
func (r *Registry) RegisterRunner(runnerType string, handler *RegisteredRunner) {
	if _, exists := r.runners[runnerType]; exists {
		panic(fmt.Sprintf("runner with type '%s' already registered", runnerType))
	}
	slog.Debug("Registering runner.", "type", runnerType)
	r.runners[runnerType] = handler
}
