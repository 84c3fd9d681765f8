// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/specialistvlad/retailgrid/internal/config"
	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/executor"
	"github.com/specialistvlad/retailgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	ctx       context.Context
	logger    *slog.Logger
	cfg       *Config
	registry  *registry.Registry
	model     *config.Model
	converter config.Converter

	httpServer *http.Server

	mu   sync.RWMutex
	exec *executor.Executor
}

// NewApp is the constructor for the main application. It loads and validates
// the configuration and registers the runners; nothing external is opened
// until Run. With no modules given, the core runners are registered.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, converter, err := loader.Load(ctx, cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded.", "pipeline", model.Pipeline.Name, "steps", len(model.Steps))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.Validate(ctx, model.Steps, converter); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:      outW,
		ctx:       ctx,
		logger:    logger,
		cfg:       cfg,
		registry:  reg,
		model:     model,
		converter: converter,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded configuration.
func (a *App) Model() *config.Model {
	return a.model
}

func (a *App) executor() *executor.Executor {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.exec
}

func (a *App) setExecutor(e *executor.Executor) {
	a.mu.Lock()
	a.exec = e
	a.mu.Unlock()
}
