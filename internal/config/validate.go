// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("cronspec", func(fl validator.FieldLevel) bool {
		return ValidCron(fl.Field().String()) == nil
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := time.ParseDuration(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the struct rules of every block and that the steps form a
// single chain.
func Validate(m *Model) error {
	if m.Pipeline == nil {
		return errors.New("config: a pipeline block is required")
	}
	if m.Storage == nil {
		return errors.New("config: a storage block is required")
	}
	if m.Warehouse == nil {
		return errors.New("config: a warehouse block is required")
	}

	var errs []error
	check := func(what string, v any) {
		if err := validate.Struct(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", what, err))
		}
	}
	check(fmt.Sprintf("pipeline %q", m.Pipeline.Name), m.Pipeline)
	check(fmt.Sprintf("storage %q", m.Storage.Backend), m.Storage)
	check(fmt.Sprintf("warehouse %q", m.Warehouse.Backend), m.Warehouse)
	for _, n := range m.Notifiers {
		check(fmt.Sprintf("notify %q", n.Type), n)
	}
	for _, s := range m.Steps {
		check(fmt.Sprintf("step %q", s.Name), s)
	}
	if err := ValidateChain(m.Steps); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateChain checks that step names are unique and that each step depends
// on nothing but its predecessor. A step may omit depends_on; the order of the
// blocks still defines the chain.
func ValidateChain(steps []*Step) error {
	if len(steps) == 0 {
		return errors.New("config: at least one step is required")
	}
	var errs []string
	seen := make(map[string]int, len(steps))
	for i, s := range steps {
		if prev, ok := seen[s.Name]; ok {
			errs = append(errs, fmt.Sprintf("step %q is declared twice (positions %d and %d)", s.Name, prev+1, i+1))
			continue
		}
		seen[s.Name] = i

		if i == 0 {
			if len(s.DependsOn) > 0 {
				errs = append(errs, fmt.Sprintf("step %q is first in the chain and cannot depend on %v", s.Name, s.DependsOn))
			}
			continue
		}
		if len(s.DependsOn) == 0 {
			continue
		}
		want := steps[i-1].Name
		if !slices.Equal(s.DependsOn, []string{want}) {
			errs = append(errs, fmt.Sprintf("step %q must depend only on the preceding step %q, got %v", s.Name, want, s.DependsOn))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid step chain:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// ValidCron checks a standard five-field cron expression, with month and
// weekday names allowed, or a descriptor such as @daily or @every 1h.
func ValidCron(spec string) error {
	if _, err := cron.ParseStandard(strings.TrimSpace(spec)); err != nil {
		return fmt.Errorf("cron: %w", err)
	}
	return nil
}
