// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package registry provides the central "glue" for the module system.
//
// The Registry maps the runner type used in `step "<runner>" "<name>"`
// blocks to the compiled Go handler implementing it. Modules register their
// runners at startup; the registry is then validated against the loaded
// configuration so that a typo in a runner name or an unknown argument fails
// before any step runs.
package registry
