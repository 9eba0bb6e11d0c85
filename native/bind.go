package native

import (
	runtimebridge "github.com/wippyai/runtime-bridge"
	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/registry"
)

// WrapperRef is the value stored in the runtime's wrapper table for a bound
// object. Its back-pointer to the native object is non-owning: a live
// wrapper that needs the native object alive must hold a native reference of
// its own.
type WrapperRef struct {
	obj *Object
}

// Object returns the native object this wrapper refers to.
func (w *WrapperRef) Object() *Object {
	return w.obj
}

// BindWrapper lazily binds obj to the runtime behind adapter, creating a
// wrapper for it in table on first use. On return the slot is bound,
// attached, and owns the fresh cross-reference. Safe to call from multiple
// goroutines; exactly one wrapper is ever created per object, and repeat
// calls return the existing handle.
func BindWrapper(obj *Object, adapter runtimebridge.Adapter, table *registry.Table) (runtimebridge.Handle, error) {
	s := obj.Slot()
	if err := s.Bind(adapter); err != nil {
		return 0, err
	}
	if h := s.Wrapper(); h != 0 {
		return h, nil
	}

	h, err := table.Create(&WrapperRef{obj: obj})
	if err != nil {
		return 0, err
	}
	if err := s.Attach(h); err != nil {
		// Lost the attach race: another goroutine bound a wrapper first.
		// Back out ours and hand back the winner's handle.
		table.Release(h, false)
		return s.Wrapper(), nil
	}

	s.SetOwns(true)
	return h, nil
}

// TransferToRuntime hands responsibility for the cross-reference to the
// external runtime: the wrapper stays attached but the native side stops
// keeping it alive, so teardown of obj will no longer release it. The caller
// must have arranged for the runtime (or another holder) to account for the
// reference.
func TransferToRuntime(obj *Object) error {
	s := obj.Slot()
	if s.Wrapper() == 0 {
		return errors.InvalidInput(errors.PhaseRelease, "no wrapper attached")
	}
	s.SetOwns(false)
	return nil
}

// TransferToNative takes responsibility for the cross-reference back onto
// the native side, typically after the wrapper was resurrected while the
// runtime still tracked it. Teardown of obj will release it exactly once.
func TransferToNative(obj *Object) error {
	s := obj.Slot()
	if _, err := s.RequireAdapter(); err != nil {
		return err
	}
	if s.Wrapper() == 0 {
		return errors.InvalidInput(errors.PhaseAttach, "no wrapper attached")
	}
	s.SetOwns(true)
	return nil
}
