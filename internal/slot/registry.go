package slot

import (
	"fmt"
)

// Registry is the ordered, fixed-length list of slots.
//
// It is not safe for concurrent use; the host delivers activations and
// editor commits one at a time.
type Registry struct {
	slots    []Slot
	byHandle map[Handle]int
	bound    int
}

// NewRegistry creates a registry with one slot per label.
func NewRegistry(labels []string) *Registry {
	slots := make([]Slot, len(labels))
	for i, label := range labels {
		slots[i] = Slot{Index: i, Label: label}
	}
	return &Registry{
		slots:    slots,
		byHandle: make(map[Handle]int, len(labels)),
	}
}

// Len returns N.
func (r *Registry) Len() int { return len(r.slots) }

func (r *Registry) check(index int) error {
	if index < 0 || index >= len(r.slots) {
		return fmt.Errorf("%w: %d (have %d slots)", ErrIndexOutOfRange, index, len(r.slots))
	}
	return nil
}

// Bind associates an activation handle with the slot at index. Slots are
// bound once each, in index order.
func (r *Registry) Bind(index int, handle Handle) error {
	if err := r.check(index); err != nil {
		return err
	}
	if handle == (Handle{}) {
		return ErrNilHandle
	}
	if r.slots[index].Bound() {
		return fmt.Errorf("%w: index %d", ErrAlreadyBound, index)
	}
	if prev, ok := r.byHandle[handle]; ok {
		return fmt.Errorf("%w: handle %s is bound to index %d", ErrAlreadyBound, handle, prev)
	}
	if index != r.bound {
		return fmt.Errorf("%w: got %d, want %d", ErrBindOrder, index, r.bound)
	}
	r.slots[index].Handle = handle
	r.byHandle[handle] = index
	r.bound++
	return nil
}

// IndexOf resolves an activation handle to its slot index.
func (r *Registry) IndexOf(handle Handle) (int, bool) {
	index, ok := r.byHandle[handle]
	return index, ok
}

// IndexOfLabel returns the index of the slot with the given label.
func (r *Registry) IndexOfLabel(label string) (int, bool) {
	for i, s := range r.slots {
		if s.Label == label {
			return i, true
		}
	}
	return 0, false
}

// Labels returns the slot labels in index order.
func (r *Registry) Labels() []string {
	labels := make([]string, len(r.slots))
	for i, s := range r.slots {
		labels[i] = s.Label
	}
	return labels
}

// Assign sets the resource identifier of a bound slot; "" clears it.
func (r *Registry) Assign(index int, id string) error {
	if err := r.check(index); err != nil {
		return err
	}
	if !r.slots[index].Bound() {
		return fmt.Errorf("%w: index %d", ErrNotBound, index)
	}
	r.slots[index].Assignment = id
	return nil
}

// Assignment returns the identifier at index and whether it is set.
func (r *Registry) Assignment(index int) (string, bool) {
	if r.check(index) != nil {
		return "", false
	}
	id := r.slots[index].Assignment
	return id, id != ""
}

// Slot returns a copy of the slot at index.
func (r *Registry) Slot(index int) (Slot, error) {
	if err := r.check(index); err != nil {
		return Slot{}, err
	}
	return r.slots[index], nil
}

// Slots returns a copy of every slot in index order.
func (r *Registry) Slots() []Slot {
	out := make([]Slot, len(r.slots))
	copy(out, r.slots)
	return out
}

// Snapshot returns the assignments in index order, "" for unassigned.
func (r *Registry) Snapshot() []string {
	out := make([]string, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.Assignment
	}
	return out
}

// Restore replaces every assignment positionally from values. Entries past N
// are ignored, slots past len(values) become unassigned, and identifiers for
// which valid returns false are dropped. A nil valid accepts everything.
//
// Dropping unknown identifiers is the steady state, not an error: resources
// and scripts come and go between sessions.
func (r *Registry) Restore(values []string, valid func(id string) bool) {
	for i := range r.slots {
		var id string
		if i < len(values) {
			id = values[i]
		}
		if id != "" && valid != nil && !valid(id) {
			id = ""
		}
		r.slots[i].Assignment = id
	}
}
