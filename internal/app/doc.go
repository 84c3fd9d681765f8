// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package app wires the configuration, the registered runners and the
// external resources of one pipeline run together. It owns the logger, the
// optional health check server and the lifetime of every client it opens.
package app
