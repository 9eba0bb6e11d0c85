package registry

import (
	"sync"

	"go.uber.org/zap"

	runtimebridge "github.com/wippyai/runtime-bridge"
	"github.com/wippyai/runtime-bridge/errors"
)

// Table is an in-memory wrapper-object table with per-entry reference
// counting. Handles are never zero; dropped handles are recycled through a
// free list.
type Table struct {
	entries   []entry
	freeList  []runtimebridge.Handle
	mu        sync.RWMutex
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	value any
	refs  uint32
	valid bool
}

// NewTable creates a new in-memory wrapper table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]runtimebridge.Handle, 0, 16),
	}
}

// Create stores a wrapper value with a reference count of one and returns
// its handle.
func (t *Table) Create(value any) (runtimebridge.Handle, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, errors.Closed("wrapper table")
	}

	e := entry{value: value, refs: 1, valid: true}

	var handle runtimebridge.Handle
	if len(t.freeList) > 0 {
		handle = t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[handle-1] = e
	} else {
		t.entries = append(t.entries, e)
		handle = runtimebridge.Handle(len(t.entries))
	}
	t.mu.Unlock()

	Logger().Debug("wrapper created", zap.Uint64("handle", uint64(handle)))
	t.notify(Event{Type: EventCreated, Handle: handle, Refs: 1, Value: value})
	return handle, nil
}

// Get retrieves a wrapper value by handle.
func (t *Table) Get(handle runtimebridge.Handle) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.lookup(handle)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Refs returns the current reference count for a handle.
func (t *Table) Refs(handle runtimebridge.Handle) (uint32, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.lookup(handle)
	if !ok {
		return 0, false
	}
	return e.refs, true
}

// Retain increments the reference count for a handle. It reports whether the
// handle was live.
func (t *Table) Retain(handle runtimebridge.Handle) bool {
	t.mu.Lock()
	e, ok := t.lookup(handle)
	if !ok {
		t.mu.Unlock()
		return false
	}
	e.refs++
	refs := e.refs
	value := e.value
	t.mu.Unlock()

	t.notify(Event{Type: EventRetained, Handle: handle, Refs: refs, Value: value})
	return true
}

// Release decrements the reference count for a handle. When the count
// reaches zero the entry is dropped, its handle recycled, and the value's
// Drop hook (if any) invoked. fromSlot records that the release came from a
// binding slot's teardown rather than an ordinary holder.
//
// It reports whether the entry was dropped.
func (t *Table) Release(handle runtimebridge.Handle, fromSlot bool) bool {
	t.mu.Lock()
	e, ok := t.lookup(handle)
	if !ok {
		t.mu.Unlock()
		return false
	}

	e.refs--
	refs := e.refs
	value := e.value

	if refs > 0 {
		t.mu.Unlock()
		t.notify(Event{Type: EventReleased, Handle: handle, Refs: refs, Value: value, FromSlot: fromSlot})
		return false
	}

	e.valid = false
	e.value = nil
	t.freeList = append(t.freeList, handle)
	t.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	Logger().Debug("wrapper dropped",
		zap.Uint64("handle", uint64(handle)),
		zap.Bool("from_slot", fromSlot))
	t.notify(Event{Type: EventDropped, Handle: handle, Value: value, FromSlot: fromSlot})
	return true
}

// Len returns the number of live wrappers.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for i := range t.entries {
		if t.entries[i].valid {
			count++
		}
	}
	return count
}

// Each iterates over all live wrappers.
func (t *Table) Each(fn func(runtimebridge.Handle, any) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.entries {
		if t.entries[i].valid {
			if !fn(runtimebridge.Handle(i+1), t.entries[i].value) {
				break
			}
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close drops all wrappers regardless of their reference counts and stops
// accepting operations.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true

	var dropped []any
	for i := range t.entries {
		if t.entries[i].valid {
			dropped = append(dropped, t.entries[i].value)
			t.entries[i].valid = false
			t.entries[i].value = nil
		}
	}
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()

	for _, value := range dropped {
		if d, ok := value.(Dropper); ok {
			d.Drop()
		}
	}
	return nil
}

// lookup must be called with t.mu held. Returns nil, false for handle 0,
// out-of-range handles, and dropped entries.
func (t *Table) lookup(handle runtimebridge.Handle) (*entry, bool) {
	if handle == 0 {
		return nil, false
	}
	idx := int(handle - 1)
	if idx >= len(t.entries) {
		return nil, false
	}
	e := &t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e, true
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnWrapperEvent(e)
	}
}
