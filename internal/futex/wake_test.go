// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// Wake tests share atomix cells between goroutines. The race detector
// cannot observe the ordering provided by atomix operations and reports
// false positives, so these tests are excluded from race runs.

package futex_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/syncx/internal/futex"
)

// =============================================================================
// Wake
// =============================================================================

func TestWake32(t *testing.T) {
	var c atomix.Int32
	done := make(chan error, 1)
	go func() {
		for c.LoadAcquire() == 0 {
			if err := futex.Wait32(&c, 0, -1); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	time.Sleep(10 * time.Millisecond)
	c.StoreRelease(1)
	futex.Wake32(&c, futex.All)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait32: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("waiter not released")
	}
}

func TestWake64(t *testing.T) {
	var c atomix.Int64
	const waiters = 3

	var wg sync.WaitGroup
	for range waiters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c.LoadAcquire() == 0 {
				_ = futex.Wait64(&c, 0, -1)
			}
		}()
	}

	deadline := time.Now().Add(5 * time.Second)
	for futex.Parked64(&c) != waiters {
		if time.Now().After(deadline) {
			t.Fatalf("Parked64: got %d, want %d", futex.Parked64(&c), waiters)
		}
		time.Sleep(time.Millisecond)
	}

	if n := futex.Wake64(&c, 0); n != 0 {
		t.Fatalf("Wake64(0): got %d, want 0", n)
	}

	// A wake without a value change only causes a re-check.
	if n := futex.Wake64(&c, 1); n != 1 {
		t.Fatalf("Wake64(1): got %d, want 1", n)
	}

	c.StoreRelease(1)
	futex.Wake64(&c, futex.All)
	wg.Wait()

	if n := futex.Parked64(&c); n != 0 {
		t.Fatalf("Parked64 after release: got %d, want 0", n)
	}
}

// TestWake64SharedBucket verifies that waking one address never releases
// a waiter on a different address hashed to the same bucket.
func TestWake64SharedBucket(t *testing.T) {
	cells := make([]atomix.Int64, 252)
	a, b := &cells[0], &cells[251]

	done := make(chan struct{})
	go func() {
		for a.LoadAcquire() == 0 {
			_ = futex.Wait64(a, 0, -1)
		}
		close(done)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for futex.Parked64(a) != 1 {
		if time.Now().After(deadline) {
			t.Fatal("waiter never parked")
		}
		time.Sleep(time.Millisecond)
	}

	if n := futex.Wake64(b, futex.All); n != 0 {
		t.Fatalf("Wake64 on neighbour: got %d, want 0", n)
	}
	if n := futex.Parked64(a); n != 1 {
		t.Fatalf("Parked64 after neighbour wake: got %d, want 1", n)
	}

	a.StoreRelease(1)
	futex.Wake64(a, futex.All)
	<-done
}
