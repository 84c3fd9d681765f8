// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
)

// GCS is a Store backed by a Google Cloud Storage bucket. Credentials come
// from the environment (Application Default Credentials).
type GCS struct {
	client *storage.Client
	bucket string
}

// NewGCS creates a client for bucket.
func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	if bucket == "" {
		return nil, errors.New("objectstore: gcs backend requires a bucket")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("objectstore: creating gcs client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

// Download implements Store.
func (g *GCS) Download(ctx context.Context, object, dest string) error {
	logger := ctxlog.FromContext(ctx).With("backend", "gcs", "bucket", g.bucket)

	r, err := g.client.Bucket(g.bucket).Object(object).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("objectstore: opening %s: %w", g.URI(object), err)
	}
	defer r.Close()

	n, err := writeFile(dest, r)
	if err != nil {
		return err
	}
	logger.Info("Downloaded object", "object", object, "dest", dest, "size", n)
	return nil
}

// Upload implements Store.
func (g *GCS) Upload(ctx context.Context, src, object string) error {
	logger := ctxlog.FromContext(ctx).With("backend", "gcs", "bucket", g.bucket)

	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("objectstore: failed to open source file '%s': %w", src, err)
	}
	defer file.Close()

	w := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType(object)
	n, err := io.Copy(w, file)
	if err != nil {
		w.Close()
		return fmt.Errorf("objectstore: uploading to %s: %w", g.URI(object), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("objectstore: finalizing %s: %w", g.URI(object), err)
	}
	logger.Info("Uploaded object", "source", src, "object", object, "size", n, "contentType", w.ContentType)
	return nil
}

// URI implements Store.
func (g *GCS) URI(object string) string {
	return fmt.Sprintf("gs://%s/%s", g.bucket, object)
}

// Close implements Store.
func (g *GCS) Close() error {
	return g.client.Close()
}

// writeFile streams r into dest through a temporary file in the same
// directory.
func writeFile(dest string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("objectstore: creating directory for %s: %w", dest, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("objectstore: creating temp file for %s: %w", dest, err)
	}
	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("objectstore: writing %s: %w", dest, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("objectstore: renaming into %s: %w", dest, err)
	}
	return n, nil
}
