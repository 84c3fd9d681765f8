// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/specialistvlad/retailgrid/internal/config"
	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/notify"
	"github.com/specialistvlad/retailgrid/internal/objectstore"
	"github.com/specialistvlad/retailgrid/internal/snapshot"
	"github.com/specialistvlad/retailgrid/internal/warehouse"
)

// resources are the external clients of one run.
type resources struct {
	store     objectstore.Store
	warehouse warehouse.Loader
	codec     *snapshot.Codec
	notifier  notify.Notifier
}

// openResources opens everything the configuration describes. On error, what
// was already opened is closed again.
func openResources(ctx context.Context, m *config.Model) (res *resources, err error) {
	logger := ctxlog.FromContext(ctx)
	res = &resources{codec: snapshot.NewCodec()}
	defer func() {
		if err != nil {
			res.Close()
			res = nil
		}
	}()

	if err := os.MkdirAll(m.Pipeline.WorkDir, 0o755); err != nil {
		return res, fmt.Errorf("failed to create work directory: %w", err)
	}

	res.store, err = objectstore.New(ctx, objectstore.Config{
		Backend: m.Storage.Backend,
		Bucket:  m.Storage.Bucket,
		Root:    m.Storage.Root,
		BaseURL: m.Storage.BaseURL,
	})
	if err != nil {
		return res, err
	}
	logger.Debug("Object store opened.", "backend", m.Storage.Backend)

	res.warehouse, err = warehouse.New(ctx, warehouse.Config{
		Backend:  m.Warehouse.Backend,
		Project:  m.Warehouse.Project,
		Location: m.Warehouse.Location,
		Path:     m.Warehouse.Path,
		WorkDir:  m.Pipeline.WorkDir,
	}, res.store, res.codec)
	if err != nil {
		return res, err
	}
	logger.Debug("Warehouse opened.", "backend", m.Warehouse.Backend)

	res.notifier, err = openNotifiers(ctx, m.Notifiers)
	return res, err
}

// openNotifiers builds the notifier fan-out. Without any notify block, events
// go to the log.
func openNotifiers(ctx context.Context, blocks []*config.Notifier) (notify.Notifier, error) {
	if len(blocks) == 0 {
		return notify.Log{}, nil
	}
	var multi notify.Multi
	for _, b := range blocks {
		switch b.Type {
		case "log":
			multi = append(multi, notify.Log{})
		case "socketio":
			var timeout time.Duration
			if b.Timeout != "" {
				d, err := time.ParseDuration(b.Timeout)
				if err != nil {
					multi.Close()
					return nil, fmt.Errorf("notify %q: invalid timeout: %w", b.Type, err)
				}
				timeout = d
			}
			n, err := notify.NewSocketIO(ctx, notify.SocketIOConfig{
				URL:                b.URL,
				Namespace:          b.Namespace,
				Event:              b.Event,
				Timeout:            timeout,
				InsecureSkipVerify: b.InsecureSkipVerify,
			})
			if err != nil {
				multi.Close()
				return nil, err
			}
			multi = append(multi, n)
		default:
			multi.Close()
			return nil, fmt.Errorf("unknown notifier type %q", b.Type)
		}
	}
	return multi, nil
}

// Close releases every opened client.
func (r *resources) Close() error {
	var errs []error
	if r.notifier != nil {
		errs = append(errs, r.notifier.Close())
	}
	if r.warehouse != nil {
		errs = append(errs, r.warehouse.Close())
	}
	if r.store != nil {
		errs = append(errs, r.store.Close())
	}
	return errors.Join(errs...)
}
