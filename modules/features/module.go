// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package features derives the line total and weekday columns.
package features

import (
	"context"

	"github.com/specialistvlad/retailgrid/internal/registry"
	"github.com/specialistvlad/retailgrid/internal/retail"
)

// RunnerType is the label used in `step "features" "<name>"` blocks.
const RunnerType = "features"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block.
type Input struct {
	Output string `hcl:"output,optional"`
}

// OnRunFeatures adds Total Price, DayOfWeek Num, DayOfWeek Name and IsWeekend.
func OnRunFeatures(ctx context.Context, deps *registry.Deps, input *Input) (*registry.Result, error) {
	return deps.Transform(ctx, input.Output, retail.DeriveFeatures)
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner(RunnerType, registry.Runner(
		"Derive line totals and weekday features.",
		func() *Input { return &Input{Output: "features.parquet"} },
		OnRunFeatures,
	))
}
