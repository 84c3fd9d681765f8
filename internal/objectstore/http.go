// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package objectstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
)

// HTTP is a Store that talks plain GET/PUT to a base URL, as offered by
// pre-signed bucket URLs or a simple file server.
type HTTP struct {
	base   *url.URL
	client *http.Client
}

// NewHTTP parses baseURL. A nil client selects http.DefaultClient.
func NewHTTP(baseURL string, client *http.Client) (*HTTP, error) {
	if baseURL == "" {
		return nil, errors.New("objectstore: http backend requires a base_url")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("objectstore: parsing base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("objectstore: base_url must be http or https, got %q", u.Scheme)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{base: u, client: client}, nil
}

// URI implements Store.
func (h *HTTP) URI(object string) string {
	return h.base.JoinPath(strings.Split(object, "/")...).String()
}

// Download implements Store.
func (h *HTTP) Download(ctx context.Context, object, dest string) error {
	logger := ctxlog.FromContext(ctx).With("backend", "http", "action", "download")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URI(object), nil)
	if err != nil {
		return fmt.Errorf("objectstore: failed to create download request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("objectstore: failed to execute download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("objectstore: download of %s failed with status: %s", object, resp.Status)
	}

	n, err := writeFile(dest, resp.Body)
	if err != nil {
		return err
	}
	logger.Info("Downloaded object", "object", object, "dest", dest, "size", n)
	return nil
}

// Upload implements Store.
func (h *HTTP) Upload(ctx context.Context, src, object string) error {
	logger := ctxlog.FromContext(ctx).With("backend", "http", "action", "upload")

	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("objectstore: failed to open source file '%s': %w", src, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("objectstore: failed to get file stats for '%s': %w", src, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, h.URI(object), file)
	if err != nil {
		return fmt.Errorf("objectstore: failed to create upload request: %w", err)
	}
	ct := contentType(object)
	req.Header.Set("Content-Type", ct)
	req.ContentLength = stat.Size()

	logger.Info("Uploading object", "source", src, "size", stat.Size(), "contentType", ct)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("objectstore: failed to execute upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("objectstore: upload of %s failed with status: %s", object, resp.Status)
	}
	logger.Info("Successfully uploaded object", "object", object, "status", resp.Status)
	return nil
}

// Close implements Store.
func (h *HTTP) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
