// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the configuration at path (a file or a directory), returns
	// the validated model and the Converter that decodes step arguments.
	Load(ctx context.Context, path string) (*Model, Converter, error)
}

// Converter decodes a step's raw `arguments` body into a runner's input
// struct. Fields the body does not set keep the values already present in
// target, so runners pre-populate their defaults.
type Converter interface {
	DecodeArguments(ctx context.Context, body hcl.Body, target any) error
}
