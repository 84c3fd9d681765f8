// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
)

func TestEvent_Fields(t *testing.T) {
	e := Event{
		RunID:     "r",
		Pipeline:  "p",
		Step:      "s",
		Runner:    "ingest",
		State:     "failed",
		Error:     "boom",
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	got := e.Fields()

	assert.Equal(t, "boom", got["error"])
	assert.Equal(t, "2025-01-02T03:04:05Z", got["timestamp"])
	assert.NotContains(t, got, "output")
}

func TestLog_WritesErrorsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	require.NoError(t, Log{}.Notify(ctx, Event{Step: "a", State: "running"}))
	assert.Empty(t, buf.String(), "non-error transitions log at debug")

	require.NoError(t, Log{}.Notify(ctx, Event{Step: "a", State: "failed", Error: "boom"}))
	assert.Contains(t, buf.String(), "error=boom")
}

type errNotifier struct{}

func (errNotifier) Notify(context.Context, Event) error { return errors.New("down") }
func (errNotifier) Close() error                        { return errors.New("close failed") }

func TestMulti_FansOutAndJoinsErrors(t *testing.T) {
	rec := &Recorder{}
	m := Multi{rec, errNotifier{}, Log{}}

	err := m.Notify(context.Background(), Event{Step: "a"})

	assert.ErrorContains(t, err, "down")
	assert.Len(t, rec.Events, 1)
	assert.ErrorContains(t, m.Close(), "close failed")
}

func TestSocketIO_ConnectFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewSocketIO(context.Background(), SocketIOConfig{URL: srv.URL, Timeout: 2 * time.Second})

	assert.Error(t, err)
}

func TestSocketIO_BadURL(t *testing.T) {
	_, err := NewSocketIO(context.Background(), SocketIOConfig{URL: "://nope"})
	assert.ErrorContains(t, err, "failed to parse URL")
}
