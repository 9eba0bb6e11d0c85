package slot

import (
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"

	runtimebridge "github.com/wippyai/runtime-bridge"
	"github.com/wippyai/runtime-bridge/errors"
)

// countingAdapter records ReleaseRef calls for destruction scenarios.
type countingAdapter struct {
	calls    atomic.Int64
	lastFrom atomic.Bool
	lastH    atomic.Uint64
}

func (a *countingAdapter) ReleaseRef(h runtimebridge.Handle, fromSlot bool) {
	a.calls.Add(1)
	a.lastFrom.Store(fromSlot)
	a.lastH.Store(uint64(h))
}

func TestSlot_ZeroValue(t *testing.T) {
	var s Slot

	if _, ok := s.Adapter(); ok {
		t.Error("zero slot should have no adapter")
	}
	if s.Wrapper() != 0 {
		t.Error("zero slot should have no wrapper")
	}
	if s.Owns() {
		t.Error("zero slot should not own")
	}
}

func TestSlot_Bind(t *testing.T) {
	var s Slot
	a := &countingAdapter{}

	if err := s.Bind(a); err != nil {
		t.Fatalf("first Bind failed: %v", err)
	}

	got, ok := s.Adapter()
	if !ok {
		t.Fatal("Adapter() should report bound")
	}
	if got != runtimebridge.Adapter(a) {
		t.Fatal("Adapter() returned a different adapter")
	}

	// Same adapter again is a no-op.
	if err := s.Bind(a); err != nil {
		t.Fatalf("rebinding the same adapter should succeed: %v", err)
	}

	// A different adapter is refused, and the original stays bound.
	other := &countingAdapter{}
	err := s.Bind(other)
	if err == nil {
		t.Fatal("binding a different adapter should fail")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBind, Kind: errors.KindAlreadyBound}) {
		t.Fatalf("expected already_bound error, got %v", err)
	}
	if got, _ := s.Adapter(); got != runtimebridge.Adapter(a) {
		t.Fatal("original adapter should remain bound")
	}
}

func TestSlot_Bind_Nil(t *testing.T) {
	var s Slot
	if err := s.Bind(nil); err == nil {
		t.Fatal("binding nil should fail")
	}
	if _, ok := s.Adapter(); ok {
		t.Fatal("failed bind should leave slot unbound")
	}
}

func TestSlot_RequireAdapter_Unbound(t *testing.T) {
	var s Slot

	// Every call fails the same way, with no side effects.
	for i := 0; i < 3; i++ {
		_, err := s.RequireAdapter()
		if err == nil {
			t.Fatal("RequireAdapter on unbound slot should fail")
		}
		if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseQuery, Kind: errors.KindNotBound}) {
			t.Fatalf("expected not_bound error, got %v", err)
		}
	}
	if _, ok := s.Adapter(); ok {
		t.Fatal("RequireAdapter must not bind anything")
	}
}

func TestSlot_Attach(t *testing.T) {
	var s Slot

	if err := s.Attach(42); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if s.Wrapper() != 42 {
		t.Fatalf("Wrapper() = %d, want 42", s.Wrapper())
	}
	if s.Owns() {
		t.Error("Attach must not set ownership")
	}

	// Idempotent for the same handle.
	if err := s.Attach(42); err != nil {
		t.Fatalf("re-attaching the same handle should succeed: %v", err)
	}

	// A different handle is refused.
	if err := s.Attach(43); err == nil {
		t.Fatal("attaching a different handle should fail")
	}
	if s.Wrapper() != 42 {
		t.Fatal("failed attach must not change the handle")
	}

	// Handle 0 is never valid.
	var s2 Slot
	if err := s2.Attach(0); err == nil {
		t.Fatal("attaching handle 0 should fail")
	}
}

func TestSlot_SetOwns(t *testing.T) {
	var s Slot
	if err := s.Attach(7); err != nil {
		t.Fatal(err)
	}

	s.SetOwns(true)
	if !s.Owns() {
		t.Fatal("SetOwns(true) not observed")
	}
	if s.Wrapper() != 7 {
		t.Fatal("SetOwns must preserve the handle bits")
	}

	s.SetOwns(false)
	if s.Owns() {
		t.Fatal("SetOwns(false) not observed")
	}
	if s.Wrapper() != 7 {
		t.Fatal("SetOwns must preserve the handle bits")
	}

	// Repeated queries without mutation are stable.
	for i := 0; i < 5; i++ {
		if s.Owns() || s.Wrapper() != 7 {
			t.Fatal("queries must be idempotent")
		}
	}
}

func TestSlot_SetOwns_Unattached(t *testing.T) {
	var s Slot

	defer func() {
		if recover() == nil {
			t.Fatal("SetOwns(true) on an unattached slot should panic")
		}
	}()
	s.SetOwns(true)
}

func TestSlot_SetOwns_FalseOnUnattached(t *testing.T) {
	var s Slot
	// Clearing ownership on an unattached slot is harmless.
	s.SetOwns(false)
	if s.Owns() || s.Wrapper() != 0 {
		t.Fatal("slot should remain empty")
	}
}

func TestSlot_Release_Owning(t *testing.T) {
	var s Slot
	a := &countingAdapter{}

	if err := s.Bind(a); err != nil {
		t.Fatal(err)
	}
	if err := s.Attach(99); err != nil {
		t.Fatal(err)
	}
	s.SetOwns(true)

	s.Release()

	if got := a.calls.Load(); got != 1 {
		t.Fatalf("expected exactly one release, got %d", got)
	}
	if !a.lastFrom.Load() {
		t.Error("release must report it originates from a binding slot")
	}
	if a.lastH.Load() != 99 {
		t.Errorf("release got handle %d, want 99", a.lastH.Load())
	}
	if s.Wrapper() != 0 {
		t.Error("handle should read as cleared after release")
	}
	if s.Owns() {
		t.Error("ownership should be cleared after release")
	}
}

func TestSlot_Release_NotOwning(t *testing.T) {
	var s Slot
	a := &countingAdapter{}

	if err := s.Bind(a); err != nil {
		t.Fatal(err)
	}
	if err := s.Attach(99); err != nil {
		t.Fatal(err)
	}

	s.Release()

	if got := a.calls.Load(); got != 0 {
		t.Fatalf("non-owning release should be a no-op, got %d calls", got)
	}
	if s.Wrapper() != 99 {
		t.Error("non-owning release must not clear the handle")
	}
}

func TestSlot_Release_NeverBound(t *testing.T) {
	var s Slot
	// Must not panic and must not call anything.
	s.Release()
}

func TestSlot_Bind_Concurrent(t *testing.T) {
	var s Slot

	adapters := make([]*countingAdapter, 8)
	for i := range adapters {
		adapters[i] = &countingAdapter{}
	}

	var wg sync.WaitGroup
	var successes atomic.Int64
	for i := range adapters {
		wg.Add(1)
		go func(a *countingAdapter) {
			defer wg.Done()
			if err := s.Bind(a); err == nil {
				successes.Add(1)
			}
		}(adapters[i])
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Fatalf("exactly one bind should win, got %d", successes.Load())
	}

	// Binding is monotonic: every later read sees the winner.
	winner, ok := s.Adapter()
	if !ok {
		t.Fatal("slot should be bound")
	}
	for i := 0; i < 100; i++ {
		if got, _ := s.Adapter(); got != winner {
			t.Fatal("Adapter() changed after binding")
		}
	}
}

func TestSlot_SetOwns_Race(t *testing.T) {
	var s Slot
	if err := s.Attach(1); err != nil {
		t.Fatal(err)
	}

	const iters = 10000

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < iters; i++ {
			s.SetOwns(true)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iters; i++ {
			s.SetOwns(false)
		}
	}()

	// Concurrent readers: the ownership bit must never be observed set while
	// the handle reads as zero.
	stop := make(chan struct{})
	var violations atomic.Int64
	var readers sync.WaitGroup
	for r := 0; r < 4; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if s.Owns() && s.Wrapper() == 0 {
					violations.Add(1)
				}
			}
		}()
	}

	wg.Wait()
	close(stop)
	readers.Wait()

	if violations.Load() != 0 {
		t.Fatalf("observed owns=true with no wrapper %d times", violations.Load())
	}
	if s.Wrapper() != 1 {
		t.Fatal("handle bits must survive contended flips")
	}
	// The final bit is whichever CAS committed last; both values are legal,
	// but it must be a stable boolean.
	final := s.Owns()
	for i := 0; i < 100; i++ {
		if s.Owns() != final {
			t.Fatal("ownership bit unstable after writers finished")
		}
	}
}

func TestSlot_SetOwns_ManyWriters(t *testing.T) {
	var s Slot
	if err := s.Attach(5); err != nil {
		t.Fatal(err)
	}

	const (
		writers = 8
		iters   = 2000
	)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				s.SetOwns(w%2 == 0)
			}
		}(w)
	}
	wg.Wait()

	if s.Wrapper() != 5 {
		t.Fatal("handle bits must be preserved under contention")
	}
}
