// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package objectstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_UploadDownloadRoundTrip(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	root := t.TempDir()
	work := t.TempDir()
	store, err := NewLocal(root)
	require.NoError(t, err)

	src := filepath.Join(work, "in.csv")
	require.NoError(t, os.WriteFile(src, []byte("a,b\n1,2\n"), 0o644))

	// --- Act ---
	require.NoError(t, store.Upload(ctx, src, "dags/retail.csv"))
	dest := filepath.Join(work, "nested", "out.csv")
	err = store.Download(ctx, "dags/retail.csv", dest)

	// --- Assert ---
	require.NoError(t, err)
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(got))
	assert.FileExists(t, filepath.Join(root, "dags", "retail.csv"))
	assert.True(t, strings.HasPrefix(store.URI("dags/retail.csv"), "file://"))
}

func TestLocal_RejectsEscapingObject(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	err = store.Download(context.Background(), "../secret", filepath.Join(t.TempDir(), "x"))
	assert.ErrorContains(t, err, "escapes the store root")
}

func TestLocal_MissingObject(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	err = store.Download(context.Background(), "nope.csv", filepath.Join(t.TempDir(), "x"))
	assert.Error(t, err)
}

func TestHTTP_UploadDownload(t *testing.T) {
	// --- Arrange ---
	var (
		mu          sync.Mutex
		objects     = map[string][]byte{}
		contentType string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			objects[r.URL.Path] = body
			contentType = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			body, ok := objects[r.URL.Path]
			if !ok {
				http.NotFound(w, r)
				return
			}
			w.Write(body)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	store, err := NewHTTP(srv.URL+"/bucket", srv.Client())
	require.NoError(t, err)
	work := t.TempDir()
	src := filepath.Join(work, "data.parquet")
	require.NoError(t, os.WriteFile(src, []byte("PAR1"), 0o644))

	// --- Act ---
	require.NoError(t, store.Upload(ctx, src, "out/data.parquet"))
	dest := filepath.Join(work, "copy.parquet")
	require.NoError(t, store.Download(ctx, "out/data.parquet", dest))

	// --- Assert ---
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "PAR1", string(got))
	assert.Equal(t, "application/vnd.apache.parquet", contentType)
	assert.Contains(t, objects, "/bucket/out/data.parquet")
	assert.Equal(t, srv.URL+"/bucket/out/data.parquet", store.URI("out/data.parquet"))

	err = store.Download(ctx, "missing.parquet", dest)
	assert.ErrorContains(t, err, "404")
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), Config{Backend: "ftp"})
	assert.ErrorContains(t, err, `unknown backend "ftp"`)

	_, err = New(context.Background(), Config{Backend: "http", BaseURL: "ftp://x"})
	assert.Error(t, err)
}
