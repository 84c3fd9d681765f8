// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package warehouse bulk-loads a published Parquet object into a table,
// replacing the table's previous contents.
package warehouse

import (
	"context"
	"fmt"

	"github.com/specialistvlad/retailgrid/internal/objectstore"
	"github.com/specialistvlad/retailgrid/internal/snapshot"
)

// Job describes one bulk load.
type Job struct {
	// Object is the object name inside the store.
	Object string
	// URI is the object's canonical address, as returned by the store.
	URI     string
	Dataset string
	Table   string
}

// Result summarizes a finished load.
type Result struct {
	// Table is the fully qualified destination.
	Table string
	// Rows is the number of rows in the table after the load, or -1 when the
	// backend does not report it.
	Rows int64
}

// Loader runs bulk loads.
type Loader interface {
	Load(ctx context.Context, job Job) (Result, error)
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Backend  string
	Project  string
	Location string
	Path     string
	WorkDir  string
}

// New opens the loader described by cfg. The store is used by backends that
// need the object's bytes locally.
func New(ctx context.Context, cfg Config, store objectstore.Store, codec *snapshot.Codec) (Loader, error) {
	switch cfg.Backend {
	case "bigquery":
		return NewBigQuery(ctx, cfg.Project, cfg.Location, store, cfg.WorkDir)
	case "sqlite":
		return NewSQLite(cfg.Path, store, codec, cfg.WorkDir)
	default:
		return nil, fmt.Errorf("warehouse: unknown backend %q", cfg.Backend)
	}
}
