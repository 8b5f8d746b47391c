// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package syncx provides lock-free synchronization building blocks:
// wait/wake on an address, retry combinators over atomic cells, and a
// generic reference-counted handle.
//
// The package is organized in layers, leaves first:
//
//   - Atomic primitives: LoadAdd, Exchange, CompareExchange on
//     atomix.Int32 and atomix.Int64 cells
//   - Wait/wake: WaitChanged, NotifyOne, NotifyAll
//   - Combinators: WaitUntilEqual, WaitUntilNotEqual, ConditionalExchange,
//     BoundedAdd, SetAndNotify, SetAndNotifyAll, DecrementAndNotify
//   - Handles: Class, Handle, Assign, Move, Initialize, Release
//
// Every operation exists in a 32-bit and a 64-bit form.
//
// # Quick Start
//
// Signal a completion from one goroutine to another:
//
//	var done atomix.Int32
//
//	go func() {
//	    work()
//	    syncx.SetAndNotifyAll32(&done, 1)
//	}()
//
//	if err := syncx.WaitUntilEqual32(&done, 1, time.Second); syncx.IsTimeout(err) {
//	    // Not finished in time
//	}
//
// Count down outstanding operations:
//
//	var pending atomix.Int32
//	pending.Store(int32(len(reqs)))
//	for _, r := range reqs {
//	    go func() {
//	        r.Do()
//	        syncx.DecrementAndNotify32(&pending)
//	    }()
//	}
//	syncx.WaitUntilEqual32(&pending, 0, syncx.Infinite)
//
// Reserve from a shared limit:
//
//	var inflight atomix.Int64
//	if _, err := syncx.BoundedAdd64(&inflight, 1000, 10); err != nil {
//	    // ErrCeiling: limit reached; ErrOverflow: int64 range exceeded
//	}
//
// # Wait and Wake
//
// WaitChanged suspends the caller only while the cell still holds the
// expected value, so a notify issued after the cell was updated is never
// lost. A nil return is a hint to re-check, never a proof of change:
// spurious and interrupted wakes are reported as nil. The combinators run
// the re-check loop; prefer them over WaitChanged.
//
// Writers must mutate the cell before they notify. SetAndNotify,
// SetAndNotifyAll and DecrementAndNotify do both in that order.
//
// On Linux the 32-bit forms use the futex system call directly; 64-bit
// cells and other platforms use a hashed parking table. A futex wait
// occupies the calling goroutine's OS thread until it returns.
//
// Timeouts are time.Duration values. Infinite (any negative duration)
// waits without limit; zero checks once without suspending. Timeout is
// the only cancellation mechanism: to release a waiter early, change the
// cell and notify.
//
// # Combinators
//
// WaitUntilEqual and WaitUntilNotEqual never spin: every iteration either
// matches or suspends on the value it just read.
//
// ConditionalExchange reads once and attempts exactly one compare-exchange.
// Losing that race returns [ErrChanged] without retrying:
//
//	backoff := iox.Backoff{}
//	for {
//	    _, err := syncx.ConditionalExchange64(&state, next, func(old, _ int64) bool {
//	        return old == want
//	    })
//	    if !syncx.IsChanged(err) {
//	        break
//	    }
//	    backoff.Wait()
//	}
//
// BoundedAdd retries compare-and-swap until it succeeds or the bounds
// reject the freshly observed value. It fails with [ErrOverflow] or
// [ErrCeiling] and leaves the cell untouched.
//
// # Handles
//
// A Class stamps out refcounted objects of one payload type with one
// dispose callback:
//
//	type Buffer struct{ n int }
//
//	buffers := syncx.NewClass[Buffer](func(b *Buffer) { release(b) }).
//	    WithAllocator(syncx.NewBudget(1 << 20))
//
//	var owner, borrower syncx.Handle[Buffer]
//	syncx.Initialize(&owner, buffers.CreateFlex(256, 8)) // 1 alias
//	syncx.Assign(&borrower, owner)                       // 2 aliases
//	syncx.Release(&owner)                                // 1 alias
//	syncx.Release(&borrower)                             // dispose runs here
//
// The dispose callback runs exactly once, on the goroutine whose release
// drops the count from one to zero. Create functions return an empty
// handle when the allocator refuses; CreateFlex checks its size
// arithmetic for overflow before the allocator is consulted.
//
// # Error Handling
//
// Outcomes are errors:
//
//	nil                  OK (condition met, or woken)
//	ErrTimedOut          timeout elapsed; expected, not a failure
//	ErrChanged           ConditionalExchange lost a race; caller decides
//	ErrInvalidArgument   nil target; nothing mutated
//	ErrOverflow          BoundedAdd left the integer range; nothing mutated
//	ErrCeiling           BoundedAdd exceeded the ceiling; nothing mutated
//	other                platform wait failure wrapping the OS error
//
// Classification helpers: [IsTimeout], [IsChanged], [IsSemantic] and
// [IsNonFailure]. The latter two delegate to [code.hybscloud.com/iox].
//
// # Race Detection
//
// Go's race detector does not observe the ordering provided by atomix
// operations. Tests that share atomix cells between goroutines are
// skipped when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic cells with
// explicit memory ordering, [code.hybscloud.com/spin] for contention
// pauses, [code.hybscloud.com/iox] for semantic errors, and
// [golang.org/x/sys/unix] for the Linux futex system call.
package syncx
