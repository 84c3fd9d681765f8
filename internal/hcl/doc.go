// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package hcl provides the concrete HCL implementation for the configuration
// loading and argument decoding interfaces defined in the `config` package.
// It is responsible for file discovery and parsing, the expression functions
// available to configuration authors, and binding step arguments to Go
// structs.
package hcl
