// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package config defines the configuration model of a pipeline run (the
// pipeline itself, its object store, warehouse, notifiers and the ordered
// list of steps) and the interfaces a format-specific loader implements.
//
// The model is validated here, independent of the format it was read from:
// struct rules are checked with go-playground/validator and the step list
// must form a single linear chain.
package config
