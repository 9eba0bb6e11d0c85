// Package registry provides an in-process model of the external runtime's
// wrapper-object table.
//
// The table allocates handles for wrapper objects and tracks the external
// runtime's own reference count for each one. It exists so the binding slot's
// collaborators have a concrete runtime to talk to in-process: production
// embeddings swap in a real runtime through the runtimebridge.Adapter
// interface (see package engine for a WebAssembly-backed one).
//
// Lifecycle observers receive created/retained/released/dropped events,
// which the stress tool uses to verify that teardown releases each owned
// binding exactly once.
package registry
