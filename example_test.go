// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// Examples that share atomix cells between goroutines. These trigger false
// positives with Go's race detector and are excluded from race testing.

package syncx_test

import (
	"errors"
	"fmt"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/syncx"
)

// ExampleWaitUntilEqual32 signals completion from one goroutine to another.
func ExampleWaitUntilEqual32() {
	var done atomix.Int32

	go func() {
		syncx.SetAndNotifyAll32(&done, 1)
	}()

	if err := syncx.WaitUntilEqual32(&done, 1, syncx.Infinite); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("done:", done.Load())

	// Output:
	// done: 1
}

// ExampleDecrementAndNotify32 waits for a batch of workers to finish.
func ExampleDecrementAndNotify32() {
	const workers = 4
	var pending atomix.Int32
	pending.Store(workers)

	results := make([]int, workers)
	for i := range workers {
		go func() {
			results[i] = i * i
			syncx.DecrementAndNotify32(&pending)
		}()
	}

	syncx.WaitUntilEqual32(&pending, 0, syncx.Infinite)
	fmt.Println(results)

	// Output:
	// [0 1 4 9]
}

// ExampleBoundedAdd64 reserves capacity against a fixed ceiling.
func ExampleBoundedAdd64() {
	var inflight atomix.Int64

	for i := range 4 {
		orig, err := syncx.BoundedAdd64(&inflight, 100, 30)
		if errors.Is(err, syncx.ErrCeiling) {
			fmt.Printf("reservation %d rejected at %d\n", i, orig)
			continue
		}
		fmt.Printf("reservation %d: %d -> %d\n", i, orig, orig+30)
	}

	// Output:
	// reservation 0: 0 -> 30
	// reservation 1: 30 -> 60
	// reservation 2: 60 -> 90
	// reservation 3 rejected at 90
}

// ExampleConditionalExchange32 swaps a state only from an expected value.
func ExampleConditionalExchange32() {
	const (
		idle int32 = iota
		running
		stopped
	)
	var state atomix.Int32

	fromIdle := func(original, _ int32) bool { return original == idle }

	orig, err := syncx.ConditionalExchange32(&state, running, fromIdle)
	fmt.Println(orig, err, state.Load())

	// Predicate rejects: not an error, the cell is untouched.
	orig, err = syncx.ConditionalExchange32(&state, stopped, fromIdle)
	fmt.Println(orig, err, state.Load())

	// Output:
	// 0 <nil> 1
	// 1 <nil> 1
}

// ExampleWaitChanged32 shows a bounded wait that times out.
func ExampleWaitChanged32() {
	var cell atomix.Int32

	err := syncx.WaitChanged32(&cell, 0, 10*time.Millisecond)
	fmt.Println(syncx.IsTimeout(err), syncx.IsSemantic(err))

	// Output:
	// true true
}

// ExampleClass shows the lifecycle of a refcounted handle.
func ExampleClass() {
	type buffer struct{ label string }

	class := syncx.NewClass[buffer](func(b *buffer) {
		fmt.Println("dispose", b.label)
	})

	var owner, borrower syncx.Handle[buffer]
	syncx.Initialize(&owner, class.CreateFromContent(&buffer{label: "frame"}))
	syncx.Assign(&borrower, owner)
	fmt.Println("refs:", owner.Refs())

	syncx.Release(&owner)
	fmt.Println("refs:", borrower.Refs())
	syncx.Release(&borrower)
	fmt.Println("empty:", borrower.IsNil())

	// Output:
	// refs: 2
	// refs: 1
	// dispose frame
	// empty: true
}

// ExampleClass_CreateFlex sizes an object for a variable-length tail.
func ExampleClass_CreateFlex() {
	type header struct{ n int }

	budget := syncx.NewBudget(4096)
	class := syncx.NewClass[header](nil).WithAllocator(budget)

	h := class.CreateFlex(16, 8)
	fmt.Println("tail:", len(h.Trailing()))
	fmt.Println("accounted:", budget.InUse() == int64(class.HeaderSize())+16*8)

	syncx.Release(&h)
	fmt.Println("after release:", budget.InUse())

	// Overflowing size arithmetic yields an empty handle.
	huge := class.CreateFlex(1<<62, 1<<3)
	fmt.Println("overflow empty:", huge.IsNil())

	// Output:
	// tail: 128
	// accounted: true
	// after release: 0
	// overflow empty: true
}
