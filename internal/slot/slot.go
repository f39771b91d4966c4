// Package slot holds the fixed-size set of activation slots and their
// persisted assignments.
//
// A Registry owns exactly N slots. Each slot is bound once to an activation
// handle (the identity of a host command) and carries an optional resource
// identifier. A Store moves the ordered assignments to and from a settings
// backend as one comma-separated value.
package slot

import (
	"errors"

	"github.com/google/uuid"
)

// Count is the number of slots both extensions expose.
const Count = 10

var (
	// PresetLabels are the shortcut keys of the preset slots, in index order.
	PresetLabels = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}
	// ScriptLabels are the shortcut numbers of the script slots, in index order.
	ScriptLabels = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
)

var (
	// ErrIndexOutOfRange is returned for an index outside 0..N-1.
	ErrIndexOutOfRange = errors.New("slot index out of range")
	// ErrAlreadyBound is returned when a slot or a handle is bound twice.
	ErrAlreadyBound = errors.New("slot already bound")
	// ErrNotBound is returned when assigning to a slot that has no handle yet.
	ErrNotBound = errors.New("slot not bound")
	// ErrBindOrder is returned when slots are not bound in index order.
	ErrBindOrder = errors.New("slots must be bound in index order")
	// ErrNilHandle is returned when binding the zero handle.
	ErrNilHandle = errors.New("nil activation handle")
)

// Handle is the opaque identity of a host command bound to a slot.
type Handle = uuid.UUID

// Slot is a copy of one registry entry.
type Slot struct {
	// Index is the immutable position, 0..N-1.
	Index int
	// Label is the user-visible shortcut key for the slot.
	Label string
	// Handle is the bound activation handle, uuid.Nil until bound.
	Handle Handle
	// Assignment is the resource identifier, "" when unassigned.
	Assignment string
}

// Assigned reports whether the slot carries a resource identifier.
func (s Slot) Assigned() bool { return s.Assignment != "" }

// Bound reports whether the slot has an activation handle.
func (s Slot) Bound() bool { return s.Handle != uuid.Nil }
