// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncx

import (
	"math"
	"math/bits"
	"unsafe"

	"code.hybscloud.com/atomix"
)

// object is the single allocation behind a Handle: the hidden header,
// then the payload, then the optional trailing region.
type object[T any] struct {
	refs     atomix.Int32
	class    *Class[T]
	alloc    Allocator // Allocator that reserved size; receives it back
	size     uintptr
	payload  T
	trailing []byte
}

// retain adds an alias. The caller must already hold one, so the count
// is never observed at zero while a live alias exists.
func (o *object[T]) retain() {
	o.refs.AddAcqRel(1)
}

// release drops an alias. Exactly one caller observes the 1 -> 0
// transition and destroys the object.
func (o *object[T]) release() {
	if LoadAdd32(&o.refs, -1) != 1 {
		return
	}
	c := o.class
	if c.dispose != nil {
		c.dispose(&o.payload)
	}
	var zero T
	o.payload = zero
	o.trailing = nil
	o.alloc.Free(o.size)
}

// Handle is a shared reference to a refcounted payload of type T.
//
// The zero Handle is empty. A Handle exposes the payload only; the
// refcount header stays hidden. Copying a Handle value does not add an
// alias: store copies with Assign, hand over ownership with Move or
// Initialize, and drop aliases with Release.
//
// Counter overflow past math.MaxInt32 aliases, and releasing more aliases
// than were taken, are caller bugs and are not detected.
type Handle[T any] struct {
	obj *object[T]
}

// IsNil reports whether h is empty.
func (h Handle[T]) IsNil() bool {
	return h.obj == nil
}

// Value returns the payload, or nil for an empty handle.
// The pointer is valid while the caller holds an alias.
func (h Handle[T]) Value() *T {
	if h.obj == nil {
		return nil
	}
	return &h.obj.payload
}

// Trailing returns the variable-length region reserved after the payload.
// It is nil for handles created without one.
func (h Handle[T]) Trailing() []byte {
	if h.obj == nil {
		return nil
	}
	return h.obj.trailing
}

// Refs returns a snapshot of the alias count, 0 for an empty handle.
// Intended for diagnostics; the count may change immediately.
func (h Handle[T]) Refs() int32 {
	if h.obj == nil {
		return 0
	}
	return h.obj.refs.LoadAcquire()
}

// Class creates refcounted objects of type T that share one dispose
// callback and one Allocator.
//
// Example:
//
//	type Timer struct{ fd int }
//
//	timers := syncx.NewClass[Timer](func(t *Timer) { unix.Close(t.fd) })
//	var slot syncx.Handle[Timer]
//	syncx.Initialize(&slot, timers.Create())
//	defer syncx.Release(&slot)
type Class[T any] struct {
	dispose func(*T)
	alloc   Allocator
	base    uintptr
}

// NewClass creates a class whose objects call dispose exactly once, with
// the payload, when their last alias is released. dispose may be nil.
// Objects are accounted against Unbounded until WithAllocator is called.
func NewClass[T any](dispose func(*T)) *Class[T] {
	return &Class[T]{
		dispose: dispose,
		alloc:   Unbounded,
		base:    unsafe.Sizeof(object[T]{}),
	}
}

// WithAllocator sets the allocator for objects created from now on.
// Live objects return their bytes to the allocator they were created
// with. A nil allocator restores Unbounded.
//
// WithAllocator must not race with Create calls on the same class.
func (c *Class[T]) WithAllocator(a Allocator) *Class[T] {
	if a == nil {
		a = Unbounded
	}
	c.alloc = a
	return c
}

// HeaderSize returns the bytes accounted for an object without a
// trailing region: header plus payload.
func (c *Class[T]) HeaderSize() uintptr {
	return c.base
}

// Create allocates a zero payload with one alias.
// Returns an empty handle if the allocator refuses.
func (c *Class[T]) Create() Handle[T] {
	return c.create(c.base, 0)
}

// CreateWithTrailingBytes is Create with n zeroed bytes reserved after
// the payload, reachable through Handle.Trailing.
// Returns an empty handle for negative n or if the allocator refuses.
func (c *Class[T]) CreateWithTrailingBytes(n int) Handle[T] {
	if n < 0 {
		return Handle[T]{}
	}
	size, carry := bits.Add(uint(c.base), uint(n), 0)
	if carry != 0 {
		return Handle[T]{}
	}
	return c.create(uintptr(size), n)
}

// CreateFlex is Create with count elements of elemSize bytes reserved
// after the payload.
//
// count*elemSize plus the header size is checked for overflow before the
// allocator is consulted; an overflowing request returns an empty handle
// and never reaches the allocator.
func (c *Class[T]) CreateFlex(count, elemSize uintptr) Handle[T] {
	hi, n := bits.Mul(uint(count), uint(elemSize))
	if hi != 0 || n > math.MaxInt {
		return Handle[T]{}
	}
	size, carry := bits.Add(n, uint(c.base), 0)
	if carry != 0 {
		return Handle[T]{}
	}
	return c.create(uintptr(size), int(n))
}

// CreateFromContent allocates a new object and shallow-copies *src into
// its payload. Pointers inside the payload are shared, not cloned.
// Returns an empty handle for a nil src or if the allocator refuses.
func (c *Class[T]) CreateFromContent(src *T) Handle[T] {
	if src == nil {
		return Handle[T]{}
	}
	h := c.Create()
	if h.obj != nil {
		h.obj.payload = *src
	}
	return h
}

func (c *Class[T]) create(size uintptr, trailing int) Handle[T] {
	alloc := c.alloc
	if !alloc.Allocate(size) {
		return Handle[T]{}
	}
	o := &object[T]{class: c, alloc: alloc, size: size}
	if trailing > 0 {
		o.trailing = make([]byte, trailing)
	}
	// Exchange, not increment: the count must not depend on prior contents.
	Exchange32(&o.refs, 1)
	return Handle[T]{obj: o}
}

// =============================================================================
// Slot Operations
// =============================================================================

// Assign stores v into slot as a new alias.
//
// The incoming reference is retained before the outgoing one is
// released, so self-assignment and re-assigning an alias already held by
// slot never destroy a live object. Assigning an empty handle only
// releases the previous occupant. A nil slot is ignored.
//
// Concurrent Assign calls on the same slot must be serialized by the
// caller; only the refcount itself is shared lock-free.
func Assign[T any](slot *Handle[T], v Handle[T]) {
	if slot == nil {
		return
	}
	if v.obj != nil {
		v.obj.retain()
	}
	old := *slot
	*slot = v
	if old.obj != nil {
		old.obj.release()
	}
}

// Release empties slot, dropping its alias.
// Equivalent to Assign(slot, Handle[T]{}).
func Release[T any](slot *Handle[T]) {
	Assign(slot, Handle[T]{})
}

// Move transfers the alias held by src into slot without touching the
// count, leaving src empty. The previous occupant of slot is released.
//
// Use Move only when src is exclusively owned by the caller.
func Move[T any](slot, src *Handle[T]) {
	if slot == nil || src == nil || slot == src {
		return
	}
	v := *src
	*src = Handle[T]{}
	old := *slot
	*slot = v
	if old.obj != nil {
		old.obj.release()
	}
}

// Initialize stores v into an empty slot, adopting the caller's alias
// without touching the count. Typically v comes straight from Create.
//
// slot must be empty: a previous occupant is overwritten, not released.
func Initialize[T any](slot *Handle[T], v Handle[T]) {
	if slot == nil {
		return
	}
	*slot = v
}
