// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package publish uploads the final snapshot to the object store.
package publish

import (
	"context"
	"fmt"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/registry"
)

// RunnerType is the label used in `step "publish" "<name>"` blocks.
const RunnerType = "publish"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block.
type Input struct {
	Object string `hcl:"object,optional"`
}

// OnRunPublish uploads the upstream snapshot as Object. The result's output
// is the object's URI; the object name is kept in Meta for the loader.
func OnRunPublish(ctx context.Context, deps *registry.Deps, input *Input) (*registry.Result, error) {
	if deps.Upstream == "" {
		return nil, fmt.Errorf("step %q: %w", deps.Step, registry.ErrNoUpstream)
	}
	if input.Object == "" {
		return nil, fmt.Errorf("object must not be empty")
	}

	if err := deps.Store.Upload(ctx, deps.Upstream, input.Object); err != nil {
		return nil, err
	}
	uri := deps.Store.URI(input.Object)
	ctxlog.FromContext(ctx).Info("✅ Snapshot published", "uri", uri)
	return &registry.Result{Output: uri, Rows: -1, Meta: map[string]string{"object": input.Object}}, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner(RunnerType, registry.Runner(
		"Upload the final snapshot to the object store.",
		func() *Input { return &Input{Object: "online_retail_processed.parquet"} },
		OnRunPublish,
	))
}
