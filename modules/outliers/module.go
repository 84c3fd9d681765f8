// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package outliers drops impossible line items and flags large ones.
package outliers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/frame"
	"github.com/specialistvlad/retailgrid/internal/registry"
	"github.com/specialistvlad/retailgrid/internal/retail"
)

// RunnerType is the label used in `step "outliers" "<name>"` blocks.
const RunnerType = "outliers"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block.
type Input struct {
	ReviewThreshold float64 `hcl:"review_threshold,optional"`
	Output          string  `hcl:"output,optional"`
}

// OnRunOutliers removes rows with a non-positive quantity or price and sets
// Flag For Review on rows whose total exceeds ReviewThreshold.
func OnRunOutliers(ctx context.Context, deps *registry.Deps, input *Input) (*registry.Result, error) {
	if input.ReviewThreshold < 0 {
		return nil, fmt.Errorf("review_threshold must not be negative, got %v", input.ReviewThreshold)
	}

	var dropped int
	res, err := deps.Transform(ctx, input.Output, func(f *frame.Frame) (*frame.Frame, error) {
		out, n, err := retail.FilterOutliers(f, input.ReviewThreshold)
		dropped = n
		return out, err
	})
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("Outliers removed", "dropped", dropped, "threshold", input.ReviewThreshold)
	res.Meta = map[string]string{"dropped": strconv.Itoa(dropped)}
	return res, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner(RunnerType, registry.Runner(
		"Drop non-positive quantities and prices, flag large totals.",
		func() *Input {
			return &Input{ReviewThreshold: retail.DefaultReviewThreshold, Output: "outliers.parquet"}
		},
		OnRunOutliers,
	))
}
