// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package ingest implements the first step of the chain: it downloads the
// source CSV from the object store and turns it into the raw snapshot.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/frame"
	"github.com/specialistvlad/retailgrid/internal/registry"
	"github.com/specialistvlad/retailgrid/internal/retail"
)

// RunnerType is the label used in `step "ingest" "<name>"` blocks.
const RunnerType = "ingest"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block.
type Input struct {
	SourceObject string   `hcl:"source_object"`
	DownloadAs   string   `hcl:"download_as,optional"`
	Output       string   `hcl:"output,optional"`
	Delimiter    string   `hcl:"delimiter,optional"`
	TextColumns  []string `hcl:"text_columns,optional"`
	NullTokens   []string `hcl:"null_tokens,optional"`
}

func newInput() *Input {
	return &Input{
		DownloadAs:  "online_retail_II.csv",
		Output:      "raw.parquet",
		Delimiter:   ",",
		TextColumns: []string{retail.ColCustomerID},
	}
}

// OnRunIngest downloads the source object and writes the raw snapshot.
func OnRunIngest(ctx context.Context, deps *registry.Deps, input *Input) (*registry.Result, error) {
	logger := ctxlog.FromContext(ctx).With("runner", RunnerType, "source", input.SourceObject)

	runes := []rune(input.Delimiter)
	if len(runes) != 1 {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", input.Delimiter)
	}
	opts := frame.CSVOptions{Comma: runes[0], NullTokens: input.NullTokens}

	local := filepath.Join(deps.WorkDir, input.DownloadAs)
	if err := deps.Store.Download(ctx, input.SourceObject, local); err != nil {
		return nil, err
	}

	file, err := os.Open(local)
	if err != nil {
		return nil, fmt.Errorf("failed to open downloaded file '%s': %w", local, err)
	}
	defer file.Close()

	f, err := frame.ReadCSV(file, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", local, err)
	}
	logger.Info("Source parsed", "rows", f.NumRows(), "columns", len(f.Columns()))

	if f, err = retail.ToText(f, input.TextColumns...); err != nil {
		return nil, err
	}
	return deps.WriteSnapshot(ctx, input.Output, f)
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner(RunnerType, registry.Runner(
		"Download the source CSV and write the raw snapshot.",
		newInput,
		OnRunIngest,
	))
}
