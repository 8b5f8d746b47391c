// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncx

import (
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/syncx/internal/futex"
)

// Infinite is the timeout that never elapses.
// Any negative duration behaves the same way.
const Infinite time.Duration = -1

// WaitChanged32 blocks the caller while addr holds expected.
//
// It returns nil immediately, without suspending, when addr already
// differs from expected. Otherwise it suspends until a notify targets
// addr, the timeout elapses (ErrTimedOut), or the platform wait fails
// (wrapped OS error). A zero timeout never suspends.
//
// A nil return is a hint to re-check addr, never a proof that it changed:
// spurious and interrupted wakes are folded into nil. Callers should use
// WaitUntilEqual32 or WaitUntilNotEqual32 unless they run their own
// re-check loop.
func WaitChanged32(addr *atomix.Int32, expected int32, timeout time.Duration) error {
	if addr == nil {
		return ErrInvalidArgument
	}
	return futex.Wait32(addr, expected, timeout)
}

// WaitChanged64 is the 64-bit form of WaitChanged32.
func WaitChanged64(addr *atomix.Int64, expected int64, timeout time.Duration) error {
	if addr == nil {
		return ErrInvalidArgument
	}
	return futex.Wait64(addr, expected, timeout)
}

// NotifyOne32 releases one goroutine suspended on addr, if any.
// Which waiter is released is unspecified.
//
// Mutate addr before notifying: a waiter that has not suspended yet only
// skips its wait if it can observe the new value.
func NotifyOne32(addr *atomix.Int32) {
	if addr != nil {
		futex.Wake32(addr, 1)
	}
}

// NotifyAll32 releases every goroutine suspended on addr.
func NotifyAll32(addr *atomix.Int32) {
	if addr != nil {
		futex.Wake32(addr, futex.All)
	}
}

// NotifyOne64 releases one goroutine suspended on addr, if any.
func NotifyOne64(addr *atomix.Int64) {
	if addr != nil {
		futex.Wake64(addr, 1)
	}
}

// NotifyAll64 releases every goroutine suspended on addr.
func NotifyAll64(addr *atomix.Int64) {
	if addr != nil {
		futex.Wake64(addr, futex.All)
	}
}

// deadline spreads one timeout over the waits of a re-check loop.
type deadline struct {
	at      time.Time
	timeout time.Duration
}

func newDeadline(timeout time.Duration) deadline {
	if timeout <= 0 {
		return deadline{timeout: timeout}
	}
	return deadline{at: time.Now().Add(timeout), timeout: timeout}
}

// remaining returns the timeout for the next wait: negative for no limit,
// zero once the deadline has passed.
func (d deadline) remaining() time.Duration {
	if d.timeout <= 0 {
		return d.timeout
	}
	return max(time.Until(d.at), 0)
}
