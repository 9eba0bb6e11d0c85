// Package native provides the host side of the bridge: reference-counted
// objects that embed a binding slot and the attach/transfer logic that the
// slot itself deliberately does not contain.
//
// An Object carries an intrusive atomic reference count. When the last
// native reference is released the object's teardown runs the slot's release
// protocol, handing any owned cross-reference back to the external runtime
// exactly once.
//
// BindWrapper performs the lazy first-use binding: publish the adapter,
// create a wrapper in the runtime's table, attach its handle, and claim
// ownership of the fresh cross-reference. The transfer helpers flip which
// side is responsible for keeping the wrapper alive without disturbing the
// binding itself.
package native
