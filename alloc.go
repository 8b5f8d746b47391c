// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncx

import (
	"math"

	"code.hybscloud.com/atomix"
)

// Allocator accounts for the memory behind refcounted objects.
//
// Every Create call asks the class allocator for the full object size
// before allocating, and the destroying release returns the same size.
// Implementations must be safe for concurrent use.
type Allocator interface {
	// Allocate reserves size bytes. It reports false when the request
	// cannot be satisfied, in which case nothing is reserved.
	Allocate(size uintptr) bool

	// Free returns size bytes previously reserved by Allocate.
	Free(size uintptr)
}

// Unbounded is an Allocator that accepts every request.
var Unbounded Allocator = unbounded{}

type unbounded struct{}

func (unbounded) Allocate(uintptr) bool { return true }
func (unbounded) Free(uintptr)          {}

// Budget is an Allocator with a fixed byte limit.
//
// Reservations race through BoundedAdd64, so concurrent callers can never
// push the in-use total above the limit.
type Budget struct {
	_     pad
	inUse atomix.Int64
	_     pad
	limit int64
}

// NewBudget creates a Budget that admits up to limit bytes.
// Panics if limit < 0.
func NewBudget(limit int64) *Budget {
	if limit < 0 {
		panic("syncx: budget limit must be >= 0")
	}
	return &Budget{limit: limit}
}

// Allocate reserves size bytes if they fit in the remaining budget.
func (b *Budget) Allocate(size uintptr) bool {
	if uint64(size) > math.MaxInt64 {
		return false
	}
	_, err := BoundedAdd64(&b.inUse, b.limit, int64(size))
	return err == nil
}

// Free returns size bytes to the budget.
func (b *Budget) Free(size uintptr) {
	LoadAdd64(&b.inUse, -int64(size))
}

// InUse returns the number of reserved bytes.
func (b *Budget) InUse() int64 {
	return b.inUse.LoadAcquire()
}

// Limit returns the budget limit in bytes.
func (b *Budget) Limit() int64 {
	return b.limit
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
