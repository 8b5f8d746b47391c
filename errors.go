// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncx

import (
	"errors"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/syncx/internal/futex"
)

// ErrTimedOut indicates that a blocking call gave up because its timeout
// elapsed before the watched condition was met.
//
// A timeout is an expected outcome, not a failure. The watched cell is
// unchanged by the call.
var ErrTimedOut = futex.ErrTimedOut

// ErrChanged indicates that ConditionalExchange lost a race: the target
// moved between the read and the compare-exchange.
//
// ErrChanged is a control flow signal, not a failure. The target was not
// written. The caller decides whether and how to retry:
//
//	backoff := iox.Backoff{}
//	for {
//	    _, err := syncx.ConditionalExchange64(&cell, next, pred)
//	    if !syncx.IsChanged(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
var ErrChanged = errors.New("syncx: target changed concurrently")

// ErrInvalidArgument indicates a nil target or slot. No state was mutated.
var ErrInvalidArgument = errors.New("syncx: invalid argument")

// ErrOverflow indicates that BoundedAdd would leave the integer range.
// The addend was not written.
var ErrOverflow = errors.New("syncx: integer overflow")

// ErrCeiling indicates that BoundedAdd would exceed the ceiling.
// The addend was not written.
var ErrCeiling = errors.New("syncx: ceiling exceeded")

// IsTimeout reports whether err is, or wraps, ErrTimedOut.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimedOut)
}

// IsChanged reports whether err is, or wraps, ErrChanged.
func IsChanged(err error) bool {
	return errors.Is(err, ErrChanged)
}

// IsSemantic reports whether err is a control flow signal (not a failure):
// ErrTimedOut, ErrChanged, or any signal recognized by [iox.IsSemantic].
func IsSemantic(err error) bool {
	return IsTimeout(err) || IsChanged(err) || iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrChanged, or anything [iox.IsNonFailure] accepts.
//
// ErrTimedOut is semantic but not a non-failure: the awaited condition
// was not met.
func IsNonFailure(err error) bool {
	return IsChanged(err) || iox.IsNonFailure(err)
}
