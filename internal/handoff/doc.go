// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package handoff records the values each step hands to the next one within
// a run, keyed by step name and value key.
//
// # Implementations
//
//   - Memory keeps values in a sync.Map for the lifetime of the process. It
//     serves chain mode and tests.
//   - File wraps a Memory and mirrors it to a JSON ledger on disk after every
//     push, so separate processes of the same run (unit mode) can read what
//     earlier steps produced.
//
// Values are plain strings. A step pushes at least an "output" value (the
// snapshot path or object URI it produced) and usually a "rows" count.
package handoff
