// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/retailgrid/internal/config"
	"github.com/specialistvlad/retailgrid/internal/ctxlog"
)

// Validate checks that every step names a registered runner and that its
// arguments decode into the runner's input struct.
func (r *Registry) Validate(ctx context.Context, steps []*config.Step, conv config.Converter) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, s := range steps {
		rr, ok := r.runners[s.RunnerType]
		if !ok {
			errs = append(errs, fmt.Sprintf("step '%s': unknown runner type '%s' (registered: %s)", s.Name, s.RunnerType, strings.Join(r.RunnerTypes(), ", ")))
			continue
		}
		if err := conv.DecodeArguments(ctx, s.ArgumentsBody(), rr.NewInput()); err != nil {
			errs = append(errs, fmt.Sprintf("step '%s': invalid arguments for runner '%s': %v", s.Name, s.RunnerType, err))
			continue
		}
		logger.Debug("Step arguments validated.", "step", s.Name, "runner", s.RunnerType)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
