package slot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/ten-slots/internal/settings"
)

func TestStore_LoadMissing(t *testing.T) {
	s := NewStore(settings.NewMemoryBackend())
	assert.Equal(t, []string{""}, s.Load("", "tenbrushes"))
}

func TestStore_SaveLoad(t *testing.T) {
	backend := settings.NewMemoryBackend()
	s := NewStore(backend)

	require.NoError(t, s.Save("tenscripts", "scripts", []string{"/a.js", "", "/c.js"}))

	raw, ok := backend.Lookup("tenscripts", "scripts")
	require.True(t, ok)
	assert.Equal(t, "/a.js,,/c.js", raw)
	assert.Equal(t, []string{"/a.js", "", "/c.js"}, s.Load("tenscripts", "scripts"))
}

func TestStore_SeparatorInIdentifierSplits(t *testing.T) {
	s := NewStore(settings.NewMemoryBackend())
	require.NoError(t, s.Save("", "tenbrushes", []string{"a,b"}))
	assert.Equal(t, []string{"a", "b"}, s.Load("", "tenbrushes"), "separators are not escaped")
}

func TestStore_Flag(t *testing.T) {
	backend := settings.NewMemoryBackend()
	s := NewStore(backend)

	assert.False(t, s.LoadFlag("", "flag", false), "missing key with false default")
	assert.True(t, s.LoadFlag("", "flag", true), "missing key with true default")

	for value, want := range map[string]bool{
		"True":  true,
		"False": false,
		"true":  false,
		"1":     false,
		"":      false,
		"yes":   false,
	} {
		require.NoError(t, backend.WriteSetting("", "flag", value))
		assert.Equal(t, want, s.LoadFlag("", "flag", true), "value %q", value)
	}

	require.NoError(t, s.SaveFlag("", "flag", true))
	raw, _ := backend.Lookup("", "flag")
	assert.Equal(t, "True", raw)
	require.NoError(t, s.SaveFlag("", "flag", false))
	raw, _ = backend.Lookup("", "flag")
	assert.Equal(t, "False", raw)
}

func TestRoundTrip(t *testing.T) {
	valid := func(string) bool { return true }

	for _, assignments := range [][]string{
		{"", "", ""},
		{"inkbrush", "", "charcoal"},
		{"a", "b", "c"},
		{"", "", "only-last"},
	} {
		src, _ := boundRegistry(t, []string{"1", "2", "3"})
		for i, id := range assignments {
			require.NoError(t, src.Assign(i, id))
		}

		s := NewStore(settings.NewMemoryBackend())
		require.NoError(t, s.Save("", "k", src.Snapshot()))

		dst, _ := boundRegistry(t, []string{"1", "2", "3"})
		dst.Restore(s.Load("", "k"), valid)
		assert.Equal(t, src.Snapshot(), dst.Snapshot())
	}
}

func TestRoundTrip_ShorterPersistedList(t *testing.T) {
	s := NewStore(settings.NewMemoryBackend())
	require.NoError(t, s.Save("", "k", []string{"x", "y"}))

	dst, _ := boundRegistry(t, PresetLabels)
	dst.Restore(s.Load("", "k"), nil)

	want := make([]string, Count)
	want[0], want[1] = "x", "y"
	assert.Equal(t, want, dst.Snapshot())
}

func TestStore_ConfigBackendKeepsEdgeWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	backend, err := settings.OpenConfigBackend(path, nil)
	require.NoError(t, err)

	values := []string{" leading.js", "", "trailing.js ", "in side.js"}
	require.NoError(t, NewStore(backend).Save("tenscripts", "scripts", values))

	reopened, err := settings.OpenConfigBackend(path, nil)
	require.NoError(t, err)
	assert.Equal(t, values, NewStore(reopened).Load("tenscripts", "scripts"))
}
