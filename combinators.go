// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncx

import (
	"math"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"code.hybscloud.com/syncx/internal/futex"
)

// =============================================================================
// Wait Until
// =============================================================================

// WaitUntilEqual32 blocks until addr holds target.
//
// Each iteration either observes target or suspends on the value it just
// read, so the loop never spins. The timeout bounds the whole call; use
// Infinite to wait without limit.
//
// Returns nil once addr == target was observed, ErrTimedOut, a wrapped OS
// error, or ErrInvalidArgument for a nil addr.
func WaitUntilEqual32(addr *atomix.Int32, target int32, timeout time.Duration) error {
	if addr == nil {
		return ErrInvalidArgument
	}
	d := newDeadline(timeout)
	for {
		current := addr.LoadAcquire()
		if current == target {
			return nil
		}
		if err := futex.Wait32(addr, current, d.remaining()); err != nil {
			return err
		}
	}
}

// WaitUntilEqual64 is the 64-bit form of WaitUntilEqual32.
func WaitUntilEqual64(addr *atomix.Int64, target int64, timeout time.Duration) error {
	if addr == nil {
		return ErrInvalidArgument
	}
	d := newDeadline(timeout)
	for {
		current := addr.LoadAcquire()
		if current == target {
			return nil
		}
		if err := futex.Wait64(addr, current, d.remaining()); err != nil {
			return err
		}
	}
}

// WaitUntilNotEqual32 blocks until addr holds any value other than target.
func WaitUntilNotEqual32(addr *atomix.Int32, target int32, timeout time.Duration) error {
	if addr == nil {
		return ErrInvalidArgument
	}
	d := newDeadline(timeout)
	for {
		current := addr.LoadAcquire()
		if current != target {
			return nil
		}
		if err := futex.Wait32(addr, current, d.remaining()); err != nil {
			return err
		}
	}
}

// WaitUntilNotEqual64 is the 64-bit form of WaitUntilNotEqual32.
func WaitUntilNotEqual64(addr *atomix.Int64, target int64, timeout time.Duration) error {
	if addr == nil {
		return ErrInvalidArgument
	}
	d := newDeadline(timeout)
	for {
		current := addr.LoadAcquire()
		if current != target {
			return nil
		}
		if err := futex.Wait64(addr, current, d.remaining()); err != nil {
			return err
		}
	}
}

// =============================================================================
// Conditional Exchange
// =============================================================================

// Predicate32 decides whether ConditionalExchange32 replaces original
// with exchange.
type Predicate32 func(original, exchange int32) bool

// Predicate64 decides whether ConditionalExchange64 replaces original
// with exchange.
type Predicate64 func(original, exchange int64) bool

// ConditionalExchange32 reads target once and, if pred accepts the read
// value, attempts exactly one compare-exchange to exchange.
// A nil pred accepts every value.
//
// Outcomes:
//
//	pred false              -> (original, nil), target untouched
//	exchange stored         -> (original, nil)
//	target moved meanwhile  -> (observed, ErrChanged), target untouched
//
// ErrChanged is not retried here: contention stays visible to the caller.
func ConditionalExchange32(target *atomix.Int32, exchange int32, pred Predicate32) (int32, error) {
	if target == nil {
		return 0, ErrInvalidArgument
	}
	original := target.LoadAcquire()
	if pred != nil && !pred(original, exchange) {
		return original, nil
	}
	if !target.CompareAndSwapAcqRel(original, exchange) {
		return target.LoadAcquire(), ErrChanged
	}
	return original, nil
}

// ConditionalExchange64 is the 64-bit form of ConditionalExchange32.
func ConditionalExchange64(target *atomix.Int64, exchange int64, pred Predicate64) (int64, error) {
	if target == nil {
		return 0, ErrInvalidArgument
	}
	original := target.LoadAcquire()
	if pred != nil && !pred(original, exchange) {
		return original, nil
	}
	if !target.CompareAndSwapAcqRel(original, exchange) {
		return target.LoadAcquire(), ErrChanged
	}
	return original, nil
}

// =============================================================================
// Bounded Add
// =============================================================================

// BoundedAdd32 adds delta to addend unless the sum would overflow int32
// (ErrOverflow) or exceed ceiling (ErrCeiling). It returns the value the
// addition was applied to.
//
// Bounds are re-validated against every freshly observed value; a failed
// compare-and-swap only means another caller made progress. On error the
// last observed value is returned and addend is untouched.
func BoundedAdd32(addend *atomix.Int32, ceiling, delta int32) (int32, error) {
	if addend == nil {
		return 0, ErrInvalidArgument
	}
	sw := spin.Wait{}
	for {
		current := addend.LoadAcquire()
		if (delta > 0 && current > math.MaxInt32-delta) ||
			(delta < 0 && current < math.MinInt32-delta) {
			return current, ErrOverflow
		}
		next := current + delta
		if next > ceiling {
			return current, ErrCeiling
		}
		if addend.CompareAndSwapAcqRel(current, next) {
			return current, nil
		}
		sw.Once()
	}
}

// BoundedAdd64 is the 64-bit form of BoundedAdd32.
func BoundedAdd64(addend *atomix.Int64, ceiling, delta int64) (int64, error) {
	if addend == nil {
		return 0, ErrInvalidArgument
	}
	sw := spin.Wait{}
	for {
		current := addend.LoadAcquire()
		if (delta > 0 && current > math.MaxInt64-delta) ||
			(delta < 0 && current < math.MinInt64-delta) {
			return current, ErrOverflow
		}
		next := current + delta
		if next > ceiling {
			return current, ErrCeiling
		}
		if addend.CompareAndSwapAcqRel(current, next) {
			return current, nil
		}
		sw.Once()
	}
}

// =============================================================================
// Mutate and Notify
// =============================================================================

// The mutation always precedes the wake. Waking first would let a waiter
// that is about to suspend on the old value miss the wake entirely.

// SetAndNotify32 stores v into addr, then releases one waiter.
func SetAndNotify32(addr *atomix.Int32, v int32) error {
	if addr == nil {
		return ErrInvalidArgument
	}
	addr.Store(v)
	futex.Wake32(addr, 1)
	return nil
}

// SetAndNotify64 stores v into addr, then releases one waiter.
func SetAndNotify64(addr *atomix.Int64, v int64) error {
	if addr == nil {
		return ErrInvalidArgument
	}
	addr.Store(v)
	futex.Wake64(addr, 1)
	return nil
}

// SetAndNotifyAll32 stores v into addr, then releases every waiter.
func SetAndNotifyAll32(addr *atomix.Int32, v int32) error {
	if addr == nil {
		return ErrInvalidArgument
	}
	addr.Store(v)
	futex.Wake32(addr, futex.All)
	return nil
}

// SetAndNotifyAll64 stores v into addr, then releases every waiter.
func SetAndNotifyAll64(addr *atomix.Int64, v int64) error {
	if addr == nil {
		return ErrInvalidArgument
	}
	addr.Store(v)
	futex.Wake64(addr, futex.All)
	return nil
}

// DecrementAndNotify32 subtracts one from addr, then releases every
// waiter. Countdowns use it with WaitUntilEqual32(addr, 0, timeout).
func DecrementAndNotify32(addr *atomix.Int32) error {
	if addr == nil {
		return ErrInvalidArgument
	}
	addr.AddAcqRel(-1)
	futex.Wake32(addr, futex.All)
	return nil
}

// DecrementAndNotify64 subtracts one from addr, then releases every waiter.
func DecrementAndNotify64(addr *atomix.Int64) error {
	if addr == nil {
		return ErrInvalidArgument
	}
	addr.AddAcqRel(-1)
	futex.Wake64(addr, futex.All)
	return nil
}
