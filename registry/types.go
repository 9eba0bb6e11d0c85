package registry

import (
	runtimebridge "github.com/wippyai/runtime-bridge"
)

// Event types for wrapper lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventRetained
	EventReleased
	EventDropped
)

// Event represents a wrapper lifecycle event. Refs is the reference count
// after the event took effect.
type Event struct {
	Value    any
	Handle   runtimebridge.Handle
	Refs     uint32
	Type     EventType
	FromSlot bool
}

// Observer receives notifications about wrapper lifecycle events.
type Observer interface {
	OnWrapperEvent(Event)
}

// Dropper is optionally implemented by wrapper values that need cleanup when
// their last reference is released.
type Dropper interface {
	Drop()
}
