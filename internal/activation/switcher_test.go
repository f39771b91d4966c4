package activation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/ten-slots/internal/i18n"
)

type switcherFixture struct {
	view     *fakeView
	window   *fakeWindow
	notifier *fakeNotifier
	switcher *Switcher
}

func newSwitcherFixture(t *testing.T, current string, assignments ...string) *switcherFixture {
	t.Helper()
	f := &switcherFixture{
		view:     &fakeView{current: current},
		notifier: &fakeNotifier{},
	}
	f.window = &fakeWindow{view: f.view}
	resources := fakeResources{"inkbrush": true, "charcoal": true, "airbrush": true}
	f.switcher = NewSwitcher(newSlots(t, []string{"1", "2", "3"}, assignments...), resources, f.window, f.notifier)
	return f
}

func TestSwitcher_FlipFlop(t *testing.T) {
	f := newSwitcherFixture(t, "airbrush", "inkbrush", "", "charcoal")

	require.NoError(t, f.switcher.Activate(0))
	assert.Equal(t, "inkbrush", f.view.current)
	prev, ok := f.switcher.Previous()
	require.True(t, ok)
	assert.Equal(t, "airbrush", prev)

	require.NoError(t, f.switcher.Activate(0))
	assert.Equal(t, "airbrush", f.view.current)

	require.NoError(t, f.switcher.Activate(0))
	assert.Equal(t, "inkbrush", f.view.current)

	assert.Equal(t, []string{"inkbrush", "airbrush", "inkbrush"}, f.view.switches)
	require.Len(t, f.notifier.notes, 3)
	assert.Equal(t, "inkbrush\nselected", f.notifier.notes[0].text)
	assert.Equal(t, "airbrush\nselected", f.notifier.notes[1].text)
	assert.True(t, f.notifier.notes[0].floating)
	assert.Equal(t, ConfirmDuration, f.notifier.notes[0].duration)
}

// Starting with the assigned resource already active and a known previous
// resource, two presses switch away and back again.
func TestSwitcher_FlipFlopFromActive(t *testing.T) {
	f := newSwitcherFixture(t, "charcoal", "inkbrush", "", "charcoal")

	require.NoError(t, f.switcher.Activate(0)) // charcoal -> inkbrush, previous = charcoal
	require.NoError(t, f.switcher.Activate(0))
	assert.Equal(t, "charcoal", f.view.current)
	require.NoError(t, f.switcher.Activate(0))
	assert.Equal(t, "inkbrush", f.view.current)
}

func TestSwitcher_ToggleWithoutPrevious(t *testing.T) {
	f := newSwitcherFixture(t, "inkbrush", "inkbrush")

	require.NoError(t, f.switcher.Activate(0))
	assert.Equal(t, "inkbrush", f.view.current)
	_, ok := f.switcher.Previous()
	assert.False(t, ok)
	require.Len(t, f.notifier.notes, 1)
	assert.Equal(t, "inkbrush\nselected", f.notifier.notes[0].text)
}

func TestSwitcher_ToggleDisabledIsIdempotent(t *testing.T) {
	f := newSwitcherFixture(t, "airbrush", "inkbrush")
	f.switcher.SetToggle(false)
	assert.False(t, f.switcher.Toggle())

	require.NoError(t, f.switcher.Activate(0))
	assert.Equal(t, "inkbrush", f.view.current)
	require.NoError(t, f.switcher.Activate(0))
	assert.Equal(t, "inkbrush", f.view.current)

	prev, _ := f.switcher.Previous()
	assert.Equal(t, "airbrush", prev, "reactivating the same preset does not overwrite previous")
}

func TestSwitcher_LastActivationWins(t *testing.T) {
	f := newSwitcherFixture(t, "airbrush", "inkbrush", "", "charcoal")

	require.NoError(t, f.switcher.Activate(0))
	require.NoError(t, f.switcher.Activate(2))
	prev, _ := f.switcher.Previous()
	assert.Equal(t, "inkbrush", prev)

	require.NoError(t, f.switcher.Activate(2))
	assert.Equal(t, "inkbrush", f.view.current)
}

func TestSwitcher_Unassigned(t *testing.T) {
	f := newSwitcherFixture(t, "airbrush", "inkbrush", "", "charcoal")
	require.NoError(t, f.switcher.Activate(0))
	f.notifier.notes = nil
	f.view.switches = nil

	require.NoError(t, f.switcher.Activate(1))

	assert.Empty(t, f.view.switches)
	require.Len(t, f.notifier.notes, 1)
	assert.Equal(t, i18n.Default().Sprintf(i18n.MsgPresetUnassigned, "2"), f.notifier.notes[0].text)
	prev, _ := f.switcher.Previous()
	assert.Equal(t, "airbrush", prev)
}

func TestSwitcher_StaleAssignment(t *testing.T) {
	f := newSwitcherFixture(t, "airbrush", "deleted-preset")

	require.NoError(t, f.switcher.Activate(0))
	assert.Empty(t, f.view.switches)
	assert.Len(t, f.notifier.notes, 1)
	_, ok := f.switcher.Previous()
	assert.False(t, ok)
}

func TestSwitcher_OutOfRange(t *testing.T) {
	f := newSwitcherFixture(t, "airbrush", "inkbrush")
	require.NoError(t, f.switcher.Activate(42))
	assert.Empty(t, f.view.switches)
	require.Len(t, f.notifier.notes, 1)
}

func TestSwitcher_NoContext(t *testing.T) {
	f := newSwitcherFixture(t, "airbrush", "inkbrush")
	f.window.view = nil

	err := f.switcher.Activate(0)
	assert.ErrorIs(t, err, ErrNoContext)
	assert.Empty(t, f.notifier.notes)
	_, ok := f.switcher.Previous()
	assert.False(t, ok)
}

func TestSwitcher_NoCurrentResource(t *testing.T) {
	f := newSwitcherFixture(t, "", "inkbrush")

	require.NoError(t, f.switcher.Activate(0))
	assert.Equal(t, "inkbrush", f.view.current)
	_, ok := f.switcher.Previous()
	assert.False(t, ok)
}

func TestSwitcher_ActivationFailureKeepsState(t *testing.T) {
	f := newSwitcherFixture(t, "airbrush", "inkbrush")
	f.view.activeErr = errors.New("locked")

	err := f.switcher.Activate(0)
	assert.ErrorContains(t, err, "locked")
	_, ok := f.switcher.Previous()
	assert.False(t, ok)
	assert.Empty(t, f.notifier.notes)
}

func TestSwitcher_GermanConfirmation(t *testing.T) {
	view := &fakeView{current: "airbrush"}
	notifier := &fakeNotifier{}
	s := NewSwitcher(newSlots(t, []string{"1"}, "inkbrush"), fakeResources{"inkbrush": true},
		&fakeWindow{view: view}, notifier, WithPrinter(i18n.NewPrinter("de")))

	require.NoError(t, s.Activate(0))
	require.Len(t, notifier.notes, 1)
	assert.Equal(t, "inkbrush\nausgewählt", notifier.notes[0].text)
}
