package scripting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeHost struct {
	notes   []string
	presets []string
	active  string
}

func (h *fakeHost) Notify(text string)           { h.notes = append(h.notes, text) }
func (h *fakeHost) Presets() []string            { return h.presets }
func (h *fakeHost) ActivePreset() (string, bool) { return h.active, h.active != "" }

func (h *fakeHost) ActivatePreset(name string) error {
	for _, p := range h.presets {
		if p == name {
			h.active = name
			return nil
		}
	}
	return errors.New("no such preset: " + name)
}

func writeScript(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
