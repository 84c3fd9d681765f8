// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package objectstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
)

// Local is a Store that keeps objects as files under a root directory. It
// stands in for a bucket in development and tests.
type Local struct {
	root string
}

// NewLocal creates the root directory if needed.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		return nil, errors.New("objectstore: local backend requires a root directory")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("objectstore: resolving %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("objectstore: creating root %s: %w", abs, err)
	}
	return &Local{root: abs}, nil
}

func (l *Local) path(object string) (string, error) {
	p := filepath.Join(l.root, filepath.FromSlash(object))
	if p != l.root && !strings.HasPrefix(p, l.root+string(filepath.Separator)) {
		return "", fmt.Errorf("objectstore: object %q escapes the store root", object)
	}
	return p, nil
}

// Download implements Store.
func (l *Local) Download(ctx context.Context, object, dest string) error {
	src, err := l.path(object)
	if err != nil {
		return err
	}
	n, err := copyFile(src, dest)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("Downloaded object", "backend", "local", "object", object, "dest", dest, "size", n)
	return nil
}

// Upload implements Store.
func (l *Local) Upload(ctx context.Context, src, object string) error {
	dest, err := l.path(object)
	if err != nil {
		return err
	}
	n, err := copyFile(src, dest)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("Uploaded object", "backend", "local", "source", src, "object", object, "size", n)
	return nil
}

// URI implements Store.
func (l *Local) URI(object string) string {
	return "file://" + filepath.ToSlash(filepath.Join(l.root, filepath.FromSlash(object)))
}

// Close implements Store.
func (l *Local) Close() error { return nil }

func copyFile(src, dest string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("objectstore: opening %s: %w", src, err)
	}
	defer in.Close()
	return writeFile(dest, in)
}
