// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package executor runs the configured steps of a pipeline in order, either
// all of them in one process or one at a time as an external scheduler would.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/retailgrid/internal/config"
	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/handoff"
	"github.com/specialistvlad/retailgrid/internal/lifecycle"
	"github.com/specialistvlad/retailgrid/internal/notify"
	"github.com/specialistvlad/retailgrid/internal/registry"
)

// ErrUnknownStep is returned by RunStep for a name that is not configured.
var ErrUnknownStep = errors.New("unknown step")

// Executor owns the steps of one run.
type Executor struct {
	pipeline string
	ledger   handoff.Store
	base     registry.Deps
	steps    []*step

	mu     sync.RWMutex
	status []StepStatus
}

type step struct {
	cfg    *config.Step
	runner *registry.RegisteredRunner
	input  any
	life   *lifecycle.Step
}

// New validates the chain and decodes every step's arguments. base supplies
// the resources shared by all steps; its step-specific fields are ignored.
func New(ctx context.Context, model *config.Model, reg *registry.Registry, conv config.Converter, ledger handoff.Store, notifier notify.Notifier, base registry.Deps) (*Executor, error) {
	if err := config.ValidateChain(model.Steps); err != nil {
		return nil, err
	}

	e := &Executor{
		pipeline: model.Pipeline.Name,
		ledger:   ledger,
		base:     base,
		status:   make([]StepStatus, len(model.Steps)),
	}
	for i, s := range model.Steps {
		rr, ok := reg.Runner(s.RunnerType)
		if !ok {
			return nil, fmt.Errorf("step '%s': unknown runner type '%s'", s.Name, s.RunnerType)
		}
		input := rr.NewInput()
		if err := conv.DecodeArguments(ctx, s.ArgumentsBody(), input); err != nil {
			return nil, fmt.Errorf("step '%s': failed to decode arguments: %w", s.Name, err)
		}
		life := lifecycle.New(lifecycle.Info{
			RunID:    base.RunID,
			Pipeline: e.pipeline,
			Step:     s.Name,
			Runner:   s.RunnerType,
		}, notifier)
		e.steps = append(e.steps, &step{cfg: s, runner: rr, input: input, life: life})
		e.status[i] = StepStatus{Name: s.Name, Runner: s.RunnerType, State: life.State()}
	}
	ctxlog.FromContext(ctx).Debug("Executor prepared.", "pipeline", e.pipeline, "steps", len(e.steps))
	return e, nil
}

// RunAll runs every step in order. The first failure stops the chain and the
// steps after it are marked skipped.
func (e *Executor) RunAll(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("🚀 Starting pipeline run", "pipeline", e.pipeline, "run_id", e.base.RunID, "steps", len(e.steps))

	upstream, meta := "", map[string]string{}
	for i, s := range e.steps {
		if err := ctx.Err(); err != nil {
			e.skipFrom(ctx, i)
			return fmt.Errorf("run cancelled before step '%s': %w", s.cfg.Name, err)
		}
		if err := e.execute(ctx, i, upstream, meta); err != nil {
			e.skipFrom(ctx, i+1)
			return fmt.Errorf("step '%s' failed: %w", s.cfg.Name, err)
		}

		var err error
		if meta, err = e.ledger.PullAll(ctx, s.cfg.Name); err != nil {
			e.skipFrom(ctx, i+1)
			return fmt.Errorf("reading handoff of step '%s': %w", s.cfg.Name, err)
		}
		upstream = meta[handoff.KeyOutput]
	}

	logger.Info("🏁 Pipeline run finished", "pipeline", e.pipeline, "run_id", e.base.RunID)
	return nil
}

// RunStep runs a single step. Its upstream is what the preceding step
// recorded in the ledger for this run.
func (e *Executor) RunStep(ctx context.Context, name string) error {
	i := e.index(name)
	if i < 0 {
		return fmt.Errorf("%w '%s'", ErrUnknownStep, name)
	}

	upstream, meta := "", map[string]string{}
	if i > 0 {
		prev := e.steps[i-1].cfg.Name
		values, err := e.ledger.PullAll(ctx, prev)
		if err != nil {
			return fmt.Errorf("reading handoff of step '%s': %w", prev, err)
		}
		out, ok := values[handoff.KeyOutput]
		if !ok {
			return fmt.Errorf("step '%s' has no recorded output in run '%s': %w", prev, e.base.RunID, handoff.ErrNotFound)
		}
		upstream, meta = out, values
	}

	if err := e.execute(ctx, i, upstream, meta); err != nil {
		return fmt.Errorf("step '%s' failed: %w", name, err)
	}
	return nil
}

func (e *Executor) index(name string) int {
	for i, s := range e.steps {
		if s.cfg.Name == name {
			return i
		}
	}
	return -1
}

func (e *Executor) skipFrom(ctx context.Context, from int) {
	for i := from; i < len(e.steps); i++ {
		if err := e.steps[i].life.Skip(ctx); err != nil {
			ctxlog.FromContext(ctx).Warn("Could not mark step skipped", "step", e.steps[i].cfg.Name, "error", err)
		}
		e.sync(i)
	}
}
