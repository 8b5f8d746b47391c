// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futex_test

import (
	"errors"
	"reflect"
	"testing"
	"time"
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/syncx/internal/futex"
)

// TestCellLayout verifies that the address of a cell is the address of its
// value word. The kernel and the parking table both key on that address.
func TestCellLayout(t *testing.T) {
	if got := reflect.TypeOf(atomix.Int32{}).Size(); got != 4 {
		t.Fatalf("atomix.Int32 size: got %d, want 4", got)
	}
	if got := reflect.TypeOf(atomix.Int64{}).Size(); got != 8 {
		t.Fatalf("atomix.Int64 size: got %d, want 8", got)
	}

	var c32 atomix.Int32
	c32.Store(0x5a5a1234)
	if got := *(*int32)(unsafe.Pointer(&c32)); got != 0x5a5a1234 {
		t.Fatalf("Int32 value word: got %#x, want %#x", got, 0x5a5a1234)
	}

	var c64 atomix.Int64
	c64.Store(0x0102030405060708)
	if got := *(*int64)(unsafe.Pointer(&c64)); got != 0x0102030405060708 {
		t.Fatalf("Int64 value word: got %#x, want %#x", got, 0x0102030405060708)
	}
}

// =============================================================================
// Immediate Returns
// =============================================================================

func TestWaitValueDiffers(t *testing.T) {
	var c32 atomix.Int32
	var c64 atomix.Int64
	c32.Store(7)
	c64.Store(7)

	start := time.Now()
	if err := futex.Wait32(&c32, 6, -1); err != nil {
		t.Fatalf("Wait32: got %v, want nil", err)
	}
	if err := futex.Wait64(&c64, 6, -1); err != nil {
		t.Fatalf("Wait64: got %v, want nil", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("immediate return took %v", elapsed)
	}
}

func TestWaitZeroTimeout(t *testing.T) {
	var c32 atomix.Int32
	var c64 atomix.Int64

	if err := futex.Wait32(&c32, 0, 0); !errors.Is(err, futex.ErrTimedOut) {
		t.Fatalf("Wait32: got %v, want ErrTimedOut", err)
	}
	if err := futex.Wait64(&c64, 0, 0); !errors.Is(err, futex.ErrTimedOut) {
		t.Fatalf("Wait64: got %v, want ErrTimedOut", err)
	}
}

func TestWaitTimeout(t *testing.T) {
	const timeout = 20 * time.Millisecond

	t.Run("Wait32", func(t *testing.T) {
		var c atomix.Int32
		start := time.Now()
		if err := futex.Wait32(&c, 0, timeout); !errors.Is(err, futex.ErrTimedOut) {
			t.Fatalf("got %v, want ErrTimedOut", err)
		}
		if elapsed := time.Since(start); elapsed < timeout {
			t.Fatalf("returned after %v, want >= %v", elapsed, timeout)
		}
	})

	t.Run("Wait64", func(t *testing.T) {
		var c atomix.Int64
		start := time.Now()
		if err := futex.Wait64(&c, 0, timeout); !errors.Is(err, futex.ErrTimedOut) {
			t.Fatalf("got %v, want ErrTimedOut", err)
		}
		if elapsed := time.Since(start); elapsed < timeout {
			t.Fatalf("returned after %v, want >= %v", elapsed, timeout)
		}
		if n := futex.Parked64(&c); n != 0 {
			t.Fatalf("Parked64 after timeout: got %d, want 0", n)
		}
	})
}
