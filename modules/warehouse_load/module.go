// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package warehouse_load bulk-loads the published object into the warehouse
// table, replacing its contents.
package warehouse_load

import (
	"context"
	"errors"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/registry"
	"github.com/specialistvlad/retailgrid/internal/warehouse"
)

// RunnerType is the label used in `step "warehouse_load" "<name>"` blocks.
const RunnerType = "warehouse_load"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block. Empty values
// fall back to the published object recorded by the preceding step and to
// the warehouse block's dataset and table.
type Input struct {
	Object  string `hcl:"object,optional"`
	Dataset string `hcl:"dataset,optional"`
	Table   string `hcl:"table,optional"`
}

// OnRunWarehouseLoad runs one truncating load job.
func OnRunWarehouseLoad(ctx context.Context, deps *registry.Deps, input *Input) (*registry.Result, error) {
	job := warehouse.Job{
		Object:  firstNonEmpty(input.Object, deps.UpstreamMeta["object"]),
		Dataset: firstNonEmpty(input.Dataset, deps.Dataset),
		Table:   firstNonEmpty(input.Table, deps.Table),
	}
	if job.Object == "" {
		return nil, errors.New("no object to load: set 'object' or run after a publish step")
	}
	if job.Table == "" {
		return nil, errors.New("no destination table configured")
	}
	job.URI = deps.Store.URI(job.Object)

	logger := ctxlog.FromContext(ctx).With("runner", RunnerType, "uri", job.URI)
	logger.Info("▶️ Loading into warehouse", "dataset", job.Dataset, "table", job.Table)

	res, err := deps.Warehouse.Load(ctx, job)
	if err != nil {
		return nil, err
	}
	logger.Info("✅ Warehouse table replaced", "table", res.Table, "rows", res.Rows)
	return &registry.Result{
		Output: res.Table,
		Rows:   res.Rows,
		Meta:   map[string]string{"source": job.URI},
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner(RunnerType, registry.Runner(
		"Bulk-load the published object into the warehouse table.",
		func() *Input { return &Input{} },
		OnRunWarehouseLoad,
	))
}
