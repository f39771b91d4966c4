package activation

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/ten-slots/internal/slot"
)

type preset string

func (p preset) Name() string { return string(p) }

type fakeResources map[string]bool

func (f fakeResources) Lookup(name string) (Resource, bool) {
	if f[name] {
		return preset(name), true
	}
	return nil, false
}

func (f fakeResources) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type fakeView struct {
	current   string
	switches  []string
	activeErr error
}

func (v *fakeView) CurrentResource() (Resource, bool) {
	if v.current == "" {
		return nil, false
	}
	return preset(v.current), true
}

func (v *fakeView) ActivateResource(r Resource) error {
	if v.activeErr != nil {
		return v.activeErr
	}
	v.switches = append(v.switches, r.Name())
	v.current = r.Name()
	return nil
}

type fakeWindow struct {
	view *fakeView
}

func (w *fakeWindow) ActiveView() (View, error) {
	if w.view == nil {
		return nil, errors.New("no document open")
	}
	return w.view, nil
}

type note struct {
	text     string
	floating bool
	duration time.Duration
}

type fakeNotifier struct {
	notes []note
}

func (n *fakeNotifier) FloatingMessage(text string, d time.Duration) {
	n.notes = append(n.notes, note{text: text, floating: true, duration: d})
}

func (n *fakeNotifier) MessageBox(text string) {
	n.notes = append(n.notes, note{text: text})
}

func newSlots(t *testing.T, labels []string, assignments ...string) *slot.Registry {
	t.Helper()
	r := slot.NewRegistry(labels)
	for i := range labels {
		require.NoError(t, r.Bind(i, uuid.New()))
	}
	r.Restore(assignments, nil)
	return r
}
