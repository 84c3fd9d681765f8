// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package executor

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/handoff"
	"github.com/specialistvlad/retailgrid/internal/registry"
)

// execute drives one step through its lifecycle and records its result.
func (e *Executor) execute(ctx context.Context, i int, upstream string, meta map[string]string) error {
	s := e.steps[i]
	ctx = ctxlog.With(ctx, "step", s.cfg.Name, "runner", s.cfg.RunnerType, "run_id", e.base.RunID)
	logger := ctxlog.FromContext(ctx)

	if err := s.life.Start(ctx); err != nil {
		return err
	}
	e.sync(i)
	logger.Info("▶️ Starting step", "upstream", upstream)
	logger.Debug("Step input:", "data", s.input)
	started := time.Now()

	deps := e.base
	deps.Step = s.cfg.Name
	deps.Upstream = upstream
	deps.UpstreamMeta = meta

	res, err := s.runner.Fn(ctx, &deps, s.input)
	if err == nil && res == nil {
		err = errors.New("runner returned no result")
	}
	if err == nil {
		err = e.record(ctx, s.cfg.Name, res)
	}
	if err != nil {
		logger.Error("Step failed", "error", err, "elapsed", time.Since(started))
		if ferr := s.life.Fail(ctx, err); ferr != nil {
			logger.Warn("Could not mark step failed", "error", ferr)
		}
		e.sync(i)
		return err
	}

	if err := s.life.Succeed(ctx, res.Output); err != nil {
		return err
	}
	e.sync(i)
	logger.Info("✅ Finished step", "output", res.Output, "rows", res.Rows, "elapsed", time.Since(started))
	return nil
}

// record pushes the result into the ledger. Meta keys are written in sorted
// order so the ledger file is stable.
func (e *Executor) record(ctx context.Context, name string, res *registry.Result) error {
	if err := e.ledger.Push(ctx, name, handoff.KeyOutput, res.Output); err != nil {
		return fmt.Errorf("recording output: %w", err)
	}
	if err := e.ledger.Push(ctx, name, handoff.KeyRows, strconv.FormatInt(res.Rows, 10)); err != nil {
		return fmt.Errorf("recording rows: %w", err)
	}
	for _, k := range slices.Sorted(maps.Keys(res.Meta)) {
		if k == handoff.KeyOutput || k == handoff.KeyRows {
			return fmt.Errorf("runner meta must not use reserved key %q", k)
		}
		if err := e.ledger.Push(ctx, name, k, res.Meta[k]); err != nil {
			return fmt.Errorf("recording %s: %w", k, err)
		}
	}
	return nil
}
