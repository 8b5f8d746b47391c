// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package futex

import (
	"time"
	"unsafe"

	"code.hybscloud.com/atomix"
)

// Wait32 blocks while *addr == val, until Wake32 targets addr or the
// timeout elapses. A negative timeout waits indefinitely.
//
// Returns nil when the value already differs or the caller was woken
// (possibly spuriously), ErrTimedOut on timeout.
func Wait32(addr *atomix.Int32, val int32, timeout time.Duration) error {
	return park(uintptr(unsafe.Pointer(addr)), func() bool {
		return addr.LoadAcquire() == val
	}, timeout)
}

// Wake32 releases up to n waiters blocked in Wait32 on addr.
// Use All to release every waiter.
func Wake32(addr *atomix.Int32, n int) int {
	return unpark(uintptr(unsafe.Pointer(addr)), n)
}
