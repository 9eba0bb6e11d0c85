package slot

import (
	"sync/atomic"

	runtimebridge "github.com/wippyai/runtime-bridge"
	"github.com/wippyai/runtime-bridge/errors"
)

// ownsBit is packed into the low bit of the state word; the wrapper handle
// occupies the remaining 63 bits. The bit may only be set while the handle
// bits are non-zero.
const ownsBit = 1

// Slot lazily associates a native object with its wrapper in the external
// runtime. It is a value field embedded in the native object and shares its
// lifetime; it is never allocated on its own.
//
// The slot holds two words: a write-once adapter reference identifying which
// external runtime this object is bound to, and a state word combining the
// wrapper handle with an ownership bit. The ownership bit records that the
// native side currently holds the strong cross-reference keeping the wrapper
// alive; when clear, the external runtime (or some other holder) is
// responsible.
//
// The zero Slot is ready to use: unbound, unattached, not owning.
type Slot struct {
	adapter atomic.Pointer[runtimebridge.Adapter]
	state   atomic.Uint64
}

// Bind publishes the adapter for this slot. The first call wins; binding the
// same adapter again is a no-op. Binding a different adapter after the first
// is refused, never silently overwritten, so concurrent readers can treat an
// observed adapter as immutable.
func (s *Slot) Bind(a runtimebridge.Adapter) error {
	if a == nil {
		return errors.InvalidInput(errors.PhaseBind, "adapter must not be nil")
	}
	boxed := &a
	if s.adapter.CompareAndSwap(nil, boxed) {
		return nil
	}
	if cur := s.adapter.Load(); cur != nil && *cur == a {
		return nil
	}
	return errors.AlreadyBound()
}

// Adapter returns the bound adapter, or false if Bind was never called.
// Once it returns true the same adapter is returned forever after, from any
// goroutine.
func (s *Slot) Adapter() (runtimebridge.Adapter, bool) {
	p := s.adapter.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

// RequireAdapter returns the bound adapter or a not_bound error. The caller
// cannot talk to the external runtime without one, so the error must be
// propagated, not swallowed.
func (s *Slot) RequireAdapter() (runtimebridge.Adapter, error) {
	if a, ok := s.Adapter(); ok {
		return a, nil
	}
	return nil, errors.NotBound()
}

// Attach records the wrapper handle for this slot. Like Bind, the first
// attach wins and re-attaching the same handle is a no-op; a different handle
// is refused. The attach leaves the ownership bit clear — claiming ownership
// is a separate step for the caller that acquired the cross-reference.
func (s *Slot) Attach(h runtimebridge.Handle) error {
	if h == 0 {
		return errors.InvalidHandle(errors.PhaseAttach, uint64(h))
	}
	if s.state.CompareAndSwap(0, uint64(h)<<1) {
		return nil
	}
	if cur := s.state.Load(); cur>>1 == uint64(h) {
		return nil
	}
	return errors.AlreadyAttached(uint64(h))
}

// Wrapper returns the attached wrapper handle, or 0 if none. This is a bare
// read with no ownership implication: the handle's liveness must be
// established through the external runtime before use.
func (s *Slot) Wrapper() runtimebridge.Handle {
	return runtimebridge.Handle(s.state.Load() >> 1)
}

// Owns reports whether the native side currently holds the strong
// cross-reference keeping the wrapper alive.
func (s *Slot) Owns() bool {
	return s.state.Load()&ownsBit != 0
}

// SetOwns flips the ownership bit while leaving the handle bits untouched.
// This is the sole ownership-transfer primitive: callers pass true after
// acquiring a strong cross-reference from the external runtime, and false
// after handing it back or after another holder has taken over.
//
// Claiming ownership of an unattached slot is a contract violation and
// panics: allowing it would make teardown release a reference that does not
// exist.
func (s *Slot) SetOwns(owns bool) {
	for {
		old := s.state.Load()
		if owns && old>>1 == 0 {
			panic("slot: cannot take ownership with no wrapper attached")
		}
		var next uint64
		if owns {
			next = old | ownsBit
		} else {
			next = old &^ ownsBit
		}
		if old == next || s.state.CompareAndSwap(old, next) {
			return
		}
	}
}

// Release hands the owning cross-reference back to the external runtime.
// It is invoked from the containing native object's destruction path, after
// its last native reference is gone, and must run at most once. If the slot
// does not own the cross-reference this is a no-op: responsibility for any
// residual wrapper reference lies elsewhere.
func (s *Slot) Release() {
	st := s.state.Load()
	if st&ownsBit == 0 {
		return
	}
	p := s.adapter.Load()
	if p == nil {
		panic("slot: owning slot has no adapter bound")
	}
	h := runtimebridge.Handle(st >> 1)
	if h == 0 {
		panic("slot: owning slot has no wrapper attached")
	}
	(*p).ReleaseRef(h, true)
	// Nothing can reach this slot anymore: the native object has zero
	// remaining owners, and a live wrapper would itself hold a strong
	// reference keeping the native object alive. Clearing the state is a
	// safety net, not a synchronization point.
	s.state.Store(0)
}
