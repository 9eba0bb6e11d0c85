// Package slot implements the atomic binding slot embedded in native
// objects.
//
// A slot is two atomic words and nothing else. No operation on it blocks,
// allocates, or performs a syscall; the only loop is the compare-and-swap
// retry in SetOwns, which is lock-free under arbitrary contention.
//
// # Memory Model
//
// The adapter reference is published once: a goroutine that observes it
// non-nil also observes a fully constructed adapter. The state word packs
// the wrapper handle with the ownership bit so that both are always read and
// written together; at no observable instant is the ownership bit set while
// no wrapper is attached.
//
// The slot guarantees atomicity of each field individually, not a
// transaction across both. An attach on one goroutine and an ownership claim
// on another require external sequencing if their order matters.
package slot
