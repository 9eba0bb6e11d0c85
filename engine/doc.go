// Package engine adapts a WebAssembly guest, run under wazero, as the
// external runtime behind a binding slot.
//
// The guest owns the wrapper objects; the host informs it of releases by
// calling a single exported function, by default "wrapper-release", with the
// wrapper handle and a flag marking slot-originated releases. Nothing else
// about the guest's object model is assumed.
//
// Release runs on the native object's teardown path, which has no caller
// context, so the adapter captures a context at construction for its guest
// calls.
package engine
