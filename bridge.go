package runtimebridge

// Handle identifies a wrapper object in the external runtime's object table.
// Handle 0 is reserved and always invalid.
type Handle uint64

// Adapter is the narrow hook a binding slot uses to talk to the external
// runtime that owns the wrapper objects. Exactly one adapter is bound per
// slot for the lifetime of its native object.
type Adapter interface {
	// ReleaseRef gives one strong reference on the wrapper back to the
	// external runtime. fromSlot reports whether the release originates from
	// a binding slot's teardown rather than an ordinary holder, so the
	// runtime can apply binding-specific bookkeeping.
	//
	// ReleaseRef must be safe to call exactly once per owned binding at
	// destruction time and must not re-enter the slot it was called from.
	ReleaseRef(h Handle, fromSlot bool)
}
