// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/executor"
	"github.com/specialistvlad/retailgrid/internal/handoff"
	"github.com/specialistvlad/retailgrid/internal/registry"
)

// Run executes the main application logic based on the provided configuration:
// the plan, a single step, or the whole chain.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")
	a.logger.Info("Runners registered:", "count", len(a.registry.RunnerTypes()), "keys", a.registry.RunnerTypes())

	if a.cfg.Plan {
		return a.printPlan(ctx)
	}

	res, err := openResources(ctx, a.model)
	if err != nil {
		return fmt.Errorf("failed to open resources: %w", err)
	}
	defer func() {
		if err := res.Close(); err != nil {
			a.logger.Warn("Failed to close resources", "error", err)
		}
	}()

	ledgerPath := handoff.LedgerPath(a.model.Pipeline.WorkDir, a.cfg.RunID)
	ledger, err := handoff.OpenFile(ledgerPath)
	if err != nil {
		return err
	}
	a.logger.Debug("Handoff ledger opened.", "path", ledgerPath)

	exec, err := executor.New(ctx, a.model, a.registry, a.converter, ledger, res.notifier, registry.Deps{
		RunID:     a.cfg.RunID,
		Pipeline:  a.model.Pipeline.Name,
		WorkDir:   a.model.Pipeline.WorkDir,
		Store:     res.store,
		Warehouse: res.warehouse,
		Codec:     res.codec,
		Dataset:   a.model.Warehouse.Dataset,
		Table:     a.model.Warehouse.Table,
	})
	if err != nil {
		return err
	}
	a.setExecutor(exec)

	a.healthCheckServer()
	defer a.closeHealthCheckServer()

	if a.cfg.Step != "" {
		a.logger.Info("🚀 Running single step", "step", a.cfg.Step, "run_id", a.cfg.RunID)
		if err := exec.RunStep(ctx, a.cfg.Step); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		a.logger.Info("🏁 Step finished.", "step", a.cfg.Step)
		return nil
	}

	if err := exec.RunAll(ctx); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// Plan is the document printed by -plan, from which a scheduler definition
// can be generated.
type Plan struct {
	Pipeline    string               `json:"pipeline"`
	Description string               `json:"description,omitempty"`
	Schedule    string               `json:"schedule,omitempty"`
	Catchup     bool                 `json:"catchup"`
	Tags        []string             `json:"tags,omitempty"`
	Steps       []executor.PlanEntry `json:"steps"`
}

func (a *App) printPlan(ctx context.Context) error {
	exec, err := executor.New(ctx, a.model, a.registry, a.converter, handoff.NewMemory(), nil, registry.Deps{RunID: a.cfg.RunID})
	if err != nil {
		return err
	}
	p := a.model.Pipeline
	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	return enc.Encode(Plan{
		Pipeline:    p.Name,
		Description: p.Description,
		Schedule:    p.Schedule,
		Catchup:     p.Catchup,
		Tags:        p.Tags,
		Steps:       exec.Plan(),
	})
}
