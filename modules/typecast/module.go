// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package typecast fixes the final column types before publishing.
package typecast

import (
	"context"

	"github.com/specialistvlad/retailgrid/internal/registry"
	"github.com/specialistvlad/retailgrid/internal/retail"
)

// RunnerType is the label used in `step "typecast" "<name>"` blocks.
const RunnerType = "typecast"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block.
type Input struct {
	Output string `hcl:"output,optional"`
}

// OnRunTypecast converts InvoiceDate, Quantity, Price and Total Price.
func OnRunTypecast(ctx context.Context, deps *registry.Deps, input *Input) (*registry.Result, error) {
	return deps.Transform(ctx, input.Output, retail.NormalizeTypes)
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner(RunnerType, registry.Runner(
		"Convert columns to their final types.",
		func() *Input { return &Input{Output: "type_converted.parquet"} },
		OnRunTypecast,
	))
}
