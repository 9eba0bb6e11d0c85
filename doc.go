// Package runtimebridge provides primitives for binding reference-counted
// Go-side ("native") objects to wrapper objects owned by an external,
// independently-garbage-collected runtime embedded in the same process.
//
// Two reference-counting systems observe the same underlying entity. At any
// moment exactly one side is responsible for keeping the cross-reference
// alive, and that responsibility can migrate between the two sides while
// concurrent readers probe the association from arbitrary goroutines.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	runtimebridge/       Root package with the Handle and Adapter contracts
//	├── slot/            The atomic binding slot embedded in native objects
//	├── registry/        In-process wrapper table modeling the external runtime
//	├── native/          Reference-counted native objects and bind/transfer logic
//	├── engine/          wazero-backed adapter for WebAssembly guest runtimes
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Bind a native object to an in-process wrapper table:
//
//	table := registry.NewTable()
//	adapter := registry.NewAdapter(table)
//
//	obj := native.New("payload")
//	h, err := native.BindWrapper(obj, adapter, table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	obj.Slot().Owns() // true: the native side keeps the wrapper alive
//	obj.Release()     // final decref releases the wrapper exactly once
//
// # Thread Safety
//
// A slot may be read and have its ownership bit flipped by any number of
// goroutines concurrently; no operation on it blocks or allocates. Table and
// Adapter are safe for concurrent use. Each individual slot field is atomic;
// the slot does not provide transactional ordering across an attach performed
// by one goroutine and an ownership claim performed by another — callers that
// need that sequencing must synchronize it themselves.
package runtimebridge
