// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package textnorm cleans up the free-text columns.
package textnorm

import (
	"context"

	"github.com/specialistvlad/retailgrid/internal/registry"
	"github.com/specialistvlad/retailgrid/internal/retail"
)

// RunnerType is the label used in `step "textnorm" "<name>"` blocks.
const RunnerType = "textnorm"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block.
type Input struct {
	Output string `hcl:"output,optional"`
}

// OnRunTextnorm trims and capitalizes Description, title-cases Country and
// upper-cases StockCode.
func OnRunTextnorm(ctx context.Context, deps *registry.Deps, input *Input) (*registry.Result, error) {
	return deps.Transform(ctx, input.Output, retail.NormalizeText)
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner(RunnerType, registry.Runner(
		"Trim and normalize the case of text columns.",
		func() *Input { return &Input{Output: "final.parquet"} },
		OnRunTextnorm,
	))
}
