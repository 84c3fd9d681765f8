// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package deduplicate drops repeated line items.
package deduplicate

import (
	"context"
	"strconv"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/frame"
	"github.com/specialistvlad/retailgrid/internal/registry"
	"github.com/specialistvlad/retailgrid/internal/retail"
)

// RunnerType is the label used in `step "deduplicate" "<name>"` blocks.
const RunnerType = "deduplicate"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block.
type Input struct {
	Subset []string `hcl:"subset,optional"`
	Output string   `hcl:"output,optional"`
}

// OnRunDeduplicate keeps the first row of every Subset key.
func OnRunDeduplicate(ctx context.Context, deps *registry.Deps, input *Input) (*registry.Result, error) {
	var dropped int
	res, err := deps.Transform(ctx, input.Output, func(f *frame.Frame) (*frame.Frame, error) {
		out, n, err := retail.Deduplicate(f, input.Subset)
		dropped = n
		return out, err
	})
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("Duplicates removed", "dropped", dropped, "subset", input.Subset)
	res.Meta = map[string]string{"dropped": strconv.Itoa(dropped)}
	return res, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner(RunnerType, registry.Runner(
		"Drop rows repeating an earlier row's key columns.",
		func() *Input {
			return &Input{Subset: append([]string(nil), retail.DuplicateKey...), Output: "cleaned.parquet"}
		},
		OnRunDeduplicate,
	))
}
