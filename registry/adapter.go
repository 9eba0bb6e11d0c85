package registry

import (
	runtimebridge "github.com/wippyai/runtime-bridge"
)

// Adapter implements runtimebridge.Adapter on top of a Table: releasing a
// cross-reference decrements the wrapper's reference count in the table.
type Adapter struct {
	table *Table
}

// NewAdapter creates an adapter backed by the given table.
func NewAdapter(t *Table) *Adapter {
	return &Adapter{table: t}
}

// ReleaseRef gives one strong reference on the wrapper back to the table.
// Releases originating from a binding slot are tagged through to the table's
// lifecycle events so observers can distinguish slot teardown from ordinary
// holders letting go.
func (a *Adapter) ReleaseRef(h runtimebridge.Handle, fromSlot bool) {
	a.table.Release(h, fromSlot)
}

// Table returns the backing table.
func (a *Adapter) Table() *Table {
	return a.table
}
