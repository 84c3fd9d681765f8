// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/retailgrid/internal/config"
	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/fsutil"
)

// fileSchema is the top level of a configuration file. Blocks from all files
// of a directory are merged before decoding.
type fileSchema struct {
	Pipelines  []*config.Pipeline  `hcl:"pipeline,block"`
	Storage    []*config.Storage   `hcl:"storage,block"`
	Warehouses []*config.Warehouse `hcl:"warehouse,block"`
	Notifiers  []*config.Notifier  `hcl:"notify,block"`
	Steps      []*config.Step      `hcl:"step,block"`
}

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.ResolveFiles(path, ".hcl")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find configuration files: %w", err)
	}
	logger.Debug("Found HCL files to load", "files", paths)

	parser := hclparse.NewParser()
	files := make([]*hcl.File, 0, len(paths))
	for _, p := range paths {
		f, diags := parser.ParseHCLFile(p)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", p, diags)
		}
		files = append(files, f)
	}

	model, err := decode(hcl.MergeFiles(files))
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(model); err != nil {
		return nil, nil, err
	}

	logger.Debug("Configuration loaded", "pipeline", model.Pipeline.Name, "steps", len(model.Steps))
	return model, NewConverter(), nil
}

// LoadBytes decodes a single in-memory document. It is used by tests and by
// callers that embed a configuration.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*config.Model, config.Converter, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	model, err := decode(f.Body)
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(model); err != nil {
		return nil, nil, err
	}
	return model, NewConverter(), nil
}

func decode(body hcl.Body) (*config.Model, error) {
	var fs fileSchema
	if diags := gohcl.DecodeBody(body, EvalContext(), &fs); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode configuration: %w", diags)
	}

	model := &config.Model{Notifiers: fs.Notifiers, Steps: fs.Steps}
	var err error
	if model.Pipeline, err = single("pipeline", fs.Pipelines); err != nil {
		return nil, err
	}
	if model.Storage, err = single("storage", fs.Storage); err != nil {
		return nil, err
	}
	if model.Warehouse, err = single("warehouse", fs.Warehouses); err != nil {
		return nil, err
	}
	return model, nil
}

func single[T any](kind string, blocks []*T) (*T, error) {
	switch len(blocks) {
	case 0:
		return nil, fmt.Errorf("a %s block is required", kind)
	case 1:
		return blocks[0], nil
	default:
		return nil, fmt.Errorf("exactly one %s block is allowed, found %d", kind, len(blocks))
	}
}
