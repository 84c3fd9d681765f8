// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package impute fills missing cells with per-column defaults.
package impute

import (
	"context"
	"maps"
	"strconv"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/frame"
	"github.com/specialistvlad/retailgrid/internal/registry"
	"github.com/specialistvlad/retailgrid/internal/retail"
)

// RunnerType is the label used in `step "impute" "<name>"` blocks.
const RunnerType = "impute"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block. Defaults maps a
// column name to the text of its fill value; the text is converted to the
// column's type.
type Input struct {
	Defaults map[string]string `hcl:"defaults,optional"`
	Output   string            `hcl:"output,optional"`
}

// OnRunImpute replaces nulls in the configured columns.
func OnRunImpute(ctx context.Context, deps *registry.Deps, input *Input) (*registry.Result, error) {
	var filled map[string]int
	res, err := deps.Transform(ctx, input.Output, func(f *frame.Frame) (*frame.Frame, error) {
		out, counts, err := retail.Impute(f, input.Defaults)
		filled = counts
		return out, err
	})
	if err != nil {
		return nil, err
	}

	res.Meta = make(map[string]string, len(filled))
	total := 0
	for col, n := range filled {
		res.Meta["filled."+col] = strconv.Itoa(n)
		total += n
	}
	ctxlog.FromContext(ctx).Info("Missing values filled", "cells", total, "columns", len(filled))
	return res, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner(RunnerType, registry.Runner(
		"Replace missing values with per-column defaults.",
		func() *Input { return &Input{Defaults: maps.Clone(retail.DefaultFills), Output: "fillna.parquet"} },
		OnRunImpute,
	))
}
