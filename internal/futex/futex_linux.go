// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package futex

import (
	"fmt"
	"time"
	"unsafe"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/unix"
)

// futex(2) operations. Cells are never shared across processes, so the
// private variants skip the kernel's mm lookup.
const (
	futexWait        = 0
	futexWake        = 1
	futexPrivateFlag = 128

	futexWaitPrivate = futexWait | futexPrivateFlag
	futexWakePrivate = futexWake | futexPrivateFlag
)

// Wait32 blocks while *addr == val, until Wake32 targets addr or the
// timeout elapses. A negative timeout waits indefinitely.
//
// errno mapping:
//
//	0          woken (possibly spuriously)  -> nil
//	EAGAIN     value differed at syscall    -> nil
//	EINTR      interrupted by a signal      -> nil
//	ETIMEDOUT  timeout elapsed              -> ErrTimedOut
//	other                                   -> wrapped errno
func Wait32(addr *atomix.Int32, val int32, timeout time.Duration) error {
	if addr.LoadAcquire() != val {
		return nil
	}
	if timeout == 0 {
		return ErrTimedOut
	}

	var ts *unix.Timespec
	if timeout > 0 {
		t := unix.NsecToTimespec(int64(timeout))
		ts = &t
	}

	_, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWaitPrivate,
		uintptr(uint32(val)),
		uintptr(unsafe.Pointer(ts)),
		0, 0,
	)
	switch errno {
	case 0, unix.EAGAIN, unix.EINTR:
		return nil
	case unix.ETIMEDOUT:
		return ErrTimedOut
	default:
		return fmt.Errorf("futex: wait: %w", errno)
	}
}

// Wake32 releases up to n waiters blocked in Wait32 on addr and returns
// the number the kernel reported as woken.
// Use All to release every waiter.
func Wake32(addr *atomix.Int32, n int) int {
	if n <= 0 {
		return 0
	}
	if n > All {
		n = All
	}
	r, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWakePrivate,
		uintptr(n),
		0, 0, 0,
	)
	if errno != 0 {
		return 0
	}
	return int(r)
}
