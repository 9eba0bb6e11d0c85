package native

import (
	"sync/atomic"

	"github.com/wippyai/runtime-bridge/slot"
)

// Object is a reference-counted native object with an embedded binding slot.
// It stands in for whatever host entity the embedding gives out wrappers
// for; the payload is opaque to the bridge.
type Object struct {
	refs    atomic.Int64
	bind    slot.Slot
	payload any
}

// New creates an object with a reference count of one.
func New(payload any) *Object {
	o := &Object{payload: payload}
	o.refs.Store(1)
	return o
}

// Payload returns the value the object was created with.
func (o *Object) Payload() any {
	return o.payload
}

// Slot returns the object's binding slot. The slot shares the object's
// lifetime; callers must not use it after the last Release.
func (o *Object) Slot() *slot.Slot {
	return &o.bind
}

// Refs returns the current native reference count.
func (o *Object) Refs() int64 {
	return o.refs.Load()
}

// Retain increments the native reference count.
func (o *Object) Retain() {
	if o.refs.Add(1) <= 1 {
		panic("native: retain on a destroyed object")
	}
}

// Release decrements the native reference count. When the count reaches zero
// the object's teardown runs: if its slot owns the cross-reference, that
// reference is handed back to the external runtime exactly once.
func (o *Object) Release() {
	n := o.refs.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		panic("native: release of an already destroyed object")
	}
	o.bind.Release()
}
