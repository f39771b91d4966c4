package slot

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boundRegistry(t *testing.T, labels []string) (*Registry, []Handle) {
	t.Helper()
	r := NewRegistry(labels)
	handles := make([]Handle, len(labels))
	for i := range labels {
		handles[i] = uuid.New()
		require.NoError(t, r.Bind(i, handles[i]))
	}
	return r, handles
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry(PresetLabels)
	require.Equal(t, Count, r.Len())
	for i, s := range r.Slots() {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, PresetLabels[i], s.Label)
		assert.False(t, s.Bound())
		assert.False(t, s.Assigned())
	}
}

func TestBind(t *testing.T) {
	r := NewRegistry([]string{"1", "2", "3"})
	h0, h1 := uuid.New(), uuid.New()

	assert.ErrorIs(t, r.Bind(1, h1), ErrBindOrder)
	assert.ErrorIs(t, r.Bind(0, uuid.Nil), ErrNilHandle)
	assert.ErrorIs(t, r.Bind(3, h0), ErrIndexOutOfRange)
	assert.ErrorIs(t, r.Bind(-1, h0), ErrIndexOutOfRange)

	require.NoError(t, r.Bind(0, h0))
	assert.ErrorIs(t, r.Bind(0, h1), ErrAlreadyBound)
	assert.ErrorIs(t, r.Bind(1, h0), ErrAlreadyBound, "a handle maps to one slot only")
	require.NoError(t, r.Bind(1, h1))

	index, ok := r.IndexOf(h1)
	assert.True(t, ok)
	assert.Equal(t, 1, index)

	_, ok = r.IndexOf(uuid.New())
	assert.False(t, ok)
}

func TestAssign(t *testing.T) {
	r := NewRegistry([]string{"1", "2"})
	require.NoError(t, r.Bind(0, uuid.New()))

	assert.ErrorIs(t, r.Assign(1, "ink"), ErrNotBound)
	assert.ErrorIs(t, r.Assign(2, "ink"), ErrIndexOutOfRange)

	require.NoError(t, r.Assign(0, "ink"))
	id, ok := r.Assignment(0)
	assert.True(t, ok)
	assert.Equal(t, "ink", id)

	require.NoError(t, r.Assign(0, ""))
	_, ok = r.Assignment(0)
	assert.False(t, ok)

	_, ok = r.Assignment(99)
	assert.False(t, ok)
}

func TestSnapshotAllowsDuplicates(t *testing.T) {
	r, _ := boundRegistry(t, []string{"1", "2", "3"})
	require.NoError(t, r.Assign(0, "ink"))
	require.NoError(t, r.Assign(2, "ink"))
	assert.Equal(t, []string{"ink", "", "ink"}, r.Snapshot())
}

func TestRestore(t *testing.T) {
	known := map[string]bool{"inkbrush": true, "charcoal": true}
	valid := func(id string) bool { return known[id] }

	for _, tc := range []struct {
		name   string
		values []string
		valid  func(string) bool
		want   []string
	}{
		{"exact", []string{"inkbrush", "", "charcoal"}, valid, []string{"inkbrush", "", "charcoal"}},
		{"fewer entries leave trailing slots unassigned", []string{"charcoal"}, valid, []string{"charcoal", "", ""}},
		{"excess entries ignored", []string{"inkbrush", "charcoal", "inkbrush", "charcoal"}, valid, []string{"inkbrush", "charcoal", "inkbrush"}},
		{"stale identifiers dropped", []string{"deleted", "inkbrush", "gone"}, valid, []string{"", "inkbrush", ""}},
		{"single empty entry means nothing assigned", []string{""}, valid, []string{"", "", ""}},
		{"nil predicate accepts everything", []string{"/a.js", "/b.js"}, nil, []string{"/a.js", "/b.js", ""}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := boundRegistry(t, []string{"1", "2", "3"})
			require.NoError(t, r.Assign(1, "previous"))
			r.Restore(tc.values, tc.valid)
			assert.Equal(t, tc.want, r.Snapshot())
		})
	}
}

func TestSlotsReturnsCopy(t *testing.T) {
	r, _ := boundRegistry(t, []string{"1"})
	slots := r.Slots()
	slots[0].Assignment = "mutated"
	_, ok := r.Assignment(0)
	assert.False(t, ok)
}

func TestLabels(t *testing.T) {
	r := NewRegistry(PresetLabels)
	assert.Equal(t, PresetLabels, r.Labels())

	index, ok := r.IndexOfLabel("0")
	assert.True(t, ok)
	assert.Equal(t, 9, index)

	_, ok = r.IndexOfLabel("10")
	assert.False(t, ok)
}
