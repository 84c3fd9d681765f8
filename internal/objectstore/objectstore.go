// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package objectstore moves files between the local work directory and an
// object store. The pipeline only needs whole-object downloads and uploads.
package objectstore

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
)

// Store is a bucket-like object store.
type Store interface {
	// Download copies object into the local file at dest, creating parent
	// directories as needed.
	Download(ctx context.Context, object, dest string) error
	// Upload copies the local file at src to object, replacing it.
	Upload(ctx context.Context, src, object string) error
	// URI returns the canonical address of object, e.g. gs://bucket/name.
	URI(object string) string
	// Close releases any client held by the store.
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Backend string
	Bucket  string
	Root    string
	BaseURL string
}

// New opens the store described by cfg.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "gcs":
		return NewGCS(ctx, cfg.Bucket)
	case "local":
		return NewLocal(cfg.Root)
	case "http":
		return NewHTTP(cfg.BaseURL, nil)
	default:
		return nil, fmt.Errorf("objectstore: unknown backend %q", cfg.Backend)
	}
}

// contentType guesses the MIME type of an object from its extension.
func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".parquet":
		return "application/vnd.apache.parquet"
	case ".csv":
		return "text/csv"
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
