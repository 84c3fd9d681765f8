// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/retailgrid/internal/objectstore"
	"github.com/specialistvlad/retailgrid/internal/registry"
)

func TestOnRunPublish(t *testing.T) {
	// --- Arrange ---
	bucket := t.TempDir()
	store, err := objectstore.NewLocal(bucket)
	require.NoError(t, err)
	src := filepath.Join(t.TempDir(), "final.parquet")
	require.NoError(t, os.WriteFile(src, []byte("PAR1"), 0o644))
	deps := &registry.Deps{Step: "upload_to_gcs", Store: store, Upstream: src}

	// --- Act ---
	res, err := OnRunPublish(context.Background(), deps, &Input{Object: "out/processed.parquet"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, store.URI("out/processed.parquet"), res.Output)
	assert.Equal(t, int64(-1), res.Rows)
	assert.Equal(t, map[string]string{"object": "out/processed.parquet"}, res.Meta)
	got, err := os.ReadFile(filepath.Join(bucket, "out", "processed.parquet"))
	require.NoError(t, err)
	assert.Equal(t, "PAR1", string(got))
}

func TestOnRunPublish_Errors(t *testing.T) {
	_, err := OnRunPublish(context.Background(), &registry.Deps{Step: "upload_to_gcs"}, &Input{Object: "x"})
	assert.ErrorIs(t, err, registry.ErrNoUpstream)

	_, err = OnRunPublish(context.Background(), &registry.Deps{Upstream: "/tmp/final.parquet"}, &Input{})
	assert.ErrorContains(t, err, "object must not be empty")
}
