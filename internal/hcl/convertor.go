// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
)

// Converter is the HCL-specific implementation of the config.Converter interface.
type Converter struct {
	evalCtx *hcl.EvalContext
}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{evalCtx: EvalContext()}
}

// DecodeArguments evaluates the body's attributes and stores them in target,
// which must be a non-nil pointer to a struct with `hcl` tags. Attributes
// that target does not declare are errors.
func (c *Converter) DecodeArguments(ctx context.Context, body hcl.Body, target any) error {
	logger := ctxlog.FromContext(ctx)

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode target must be a non-nil pointer to a struct, got %T", target)
	}
	if body == nil {
		body = hcl.EmptyBody()
	}

	logger.Debug("Starting HCL arguments decoding.", "target", v.Elem().Type().String())
	if diags := gohcl.DecodeBody(body, c.evalCtx, target); diags.HasErrors() {
		return diags
	}
	logger.Debug("Finished HCL arguments decoding successfully.")
	return nil
}
