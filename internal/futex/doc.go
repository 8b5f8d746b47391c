// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package futex provides the blocking wait-on-address facility.
//
// Wait32 parks the caller while a 32-bit cell still holds an expected value;
// Wake32 releases parked callers. Wait64 and Wake64 are the 64-bit forms.
//
// Backends:
//
//	linux:   Wait32/Wake32 use FUTEX_WAIT_PRIVATE/FUTEX_WAKE_PRIVATE directly
//	         on the cell. The kernel compares the cell under its own lock.
//	others:  Wait32/Wake32 use the hashed parking table.
//	all:     Wait64/Wake64 use the hashed parking table (futex words are 32 bits).
//
// Every backend compares the cell before suspending and waiters re-check
// after every return, so a wake issued after the cell was mutated is never
// lost. Returns with a nil error include spurious wakes.
//
// Layout contract:
// The cell types must start with their value word. The offset is verified
// by tests.
package futex
