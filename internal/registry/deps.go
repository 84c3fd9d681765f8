// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/frame"
	"github.com/specialistvlad/retailgrid/internal/objectstore"
	"github.com/specialistvlad/retailgrid/internal/snapshot"
	"github.com/specialistvlad/retailgrid/internal/warehouse"
)

// ErrNoUpstream is returned when a step that consumes a snapshot runs
// without a preceding step's output.
var ErrNoUpstream = errors.New("no upstream output to read")

// Deps are the resources a runner works with. They are shared by all steps of
// a run except for the step-specific fields.
type Deps struct {
	RunID    string
	Pipeline string
	WorkDir  string

	Store     objectstore.Store
	Warehouse warehouse.Loader
	Codec     *snapshot.Codec

	// Dataset and Table are the warehouse destination.
	Dataset string
	Table   string

	// Step is the name of the step being run.
	Step string
	// Upstream is the output reference of the preceding step; empty for the
	// first step.
	Upstream string
	// UpstreamMeta holds every value the preceding step recorded.
	UpstreamMeta map[string]string
}

// ReadUpstream loads the preceding step's snapshot.
func (d *Deps) ReadUpstream(ctx context.Context) (*frame.Frame, error) {
	if d.Upstream == "" {
		return nil, fmt.Errorf("step %q: %w", d.Step, ErrNoUpstream)
	}
	return d.Codec.Read(ctx, d.Upstream)
}

// WriteSnapshot stores f as name inside the work directory and returns the
// result pointing at it.
func (d *Deps) WriteSnapshot(ctx context.Context, name string, f *frame.Frame) (*Result, error) {
	path := snapshot.Path(d.WorkDir, name)
	if err := d.Codec.Write(ctx, path, f); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("Snapshot written", "path", path, "rows", f.NumRows())
	return &Result{Output: path, Rows: int64(f.NumRows())}, nil
}

// Transform reads the upstream snapshot, applies fn and writes the result as
// name. It is the whole body of most runners.
func (d *Deps) Transform(ctx context.Context, name string, fn func(*frame.Frame) (*frame.Frame, error)) (*Result, error) {
	in, err := d.ReadUpstream(ctx)
	if err != nil {
		return nil, err
	}
	out, err := fn(in)
	if err != nil {
		return nil, fmt.Errorf("step %q: %w", d.Step, err)
	}
	return d.WriteSnapshot(ctx, name, out)
}
