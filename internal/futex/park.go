// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futex

import (
	"sync"
	"time"
	"unsafe"

	"code.hybscloud.com/atomix"
)

// tableSize is prime so that word-aligned addresses spread over buckets.
const tableSize = 251

// waiter is one parked goroutine. All fields except ready are guarded by
// the owning bucket's mutex.
type waiter struct {
	addr   uintptr
	ready  chan struct{}
	prev   *waiter
	next   *waiter
	queued bool
}

type bucket struct {
	mu   sync.Mutex
	head *waiter
	tail *waiter
}

// table is the process-wide parking table.
var table [tableSize]struct {
	bucket
	_ [64]byte // False sharing between neighbouring buckets
}

func bucketFor(addr uintptr) *bucket {
	return &table[(addr>>3)%tableSize].bucket
}

func (b *bucket) push(w *waiter) {
	w.queued = true
	w.prev = b.tail
	if b.tail == nil {
		b.head = w
	} else {
		b.tail.next = w
	}
	b.tail = w
}

func (b *bucket) remove(w *waiter) {
	if w.prev == nil {
		b.head = w.next
	} else {
		w.prev.next = w.next
	}
	if w.next == nil {
		b.tail = w.prev
	} else {
		w.next.prev = w.prev
	}
	w.prev, w.next = nil, nil
	w.queued = false
}

// park suspends the caller on addr while unchanged reports true.
//
// unchanged runs under the bucket lock. A waker mutates the cell before it
// takes the same lock in unpark, so either park observes the mutation or
// unpark observes the queued waiter.
func park(addr uintptr, unchanged func() bool, timeout time.Duration) error {
	b := bucketFor(addr)
	b.mu.Lock()
	if !unchanged() {
		b.mu.Unlock()
		return nil
	}
	if timeout == 0 {
		b.mu.Unlock()
		return ErrTimedOut
	}
	w := &waiter{addr: addr, ready: make(chan struct{})}
	b.push(w)
	b.mu.Unlock()

	if timeout < 0 {
		<-w.ready
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-w.ready:
		return nil
	case <-timer.C:
	}

	b.mu.Lock()
	if w.queued {
		b.remove(w)
		b.mu.Unlock()
		return ErrTimedOut
	}
	b.mu.Unlock()
	// Dequeued by unpark while the timer fired.
	return nil
}

// unpark releases up to n waiters parked on addr in FIFO order and
// returns how many were released.
func unpark(addr uintptr, n int) int {
	if n <= 0 {
		return 0
	}
	b := bucketFor(addr)
	woken := 0
	b.mu.Lock()
	for w := b.head; w != nil && woken < n; {
		next := w.next
		if w.addr == addr {
			b.remove(w)
			close(w.ready)
			woken++
		}
		w = next
	}
	b.mu.Unlock()
	return woken
}

// parked reports how many waiters are queued on addr.
func parked(addr uintptr) int {
	b := bucketFor(addr)
	count := 0
	b.mu.Lock()
	for w := b.head; w != nil; w = w.next {
		if w.addr == addr {
			count++
		}
	}
	b.mu.Unlock()
	return count
}

// Wait64 blocks while *addr == val, until Wake64 targets addr or the
// timeout elapses. A negative timeout waits indefinitely.
//
// Returns nil when the value already differs or the caller was woken
// (possibly spuriously), ErrTimedOut on timeout.
func Wait64(addr *atomix.Int64, val int64, timeout time.Duration) error {
	return park(uintptr(unsafe.Pointer(addr)), func() bool {
		return addr.LoadAcquire() == val
	}, timeout)
}

// Wake64 releases up to n waiters blocked in Wait64 on addr.
// Use All to release every waiter.
func Wake64(addr *atomix.Int64, n int) int {
	return unpark(uintptr(unsafe.Pointer(addr)), n)
}

// Parked64 reports how many goroutines are parked in Wait64 on addr.
func Parked64(addr *atomix.Int64) int {
	return parked(uintptr(unsafe.Pointer(addr)))
}
