// Package host is the reference host: a preset directory on disk, a
// workspace whose single view remembers its active preset in the settings
// file, and a terminal notification surface.
package host

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joeycumines/ten-slots/internal/activation"
)

// PresetExt is the file extension of a preset resource.
const PresetExt = ".preset"

// Preset is a brush preset file.
type Preset struct {
	name string
	path string
}

func (p Preset) Name() string { return p.name }

// Path returns the preset file.
func (p Preset) Path() string { return p.path }

// PresetDirectory lists the *.preset files of a directory. The directory is
// rescanned on every call, so presets added or deleted on disk are picked up
// without a restart.
type PresetDirectory struct {
	dir string
}

// NewPresetDirectory returns a directory rooted at dir. dir need not exist.
func NewPresetDirectory(dir string) *PresetDirectory {
	return &PresetDirectory{dir: dir}
}

// Dir returns the scanned directory.
func (d *PresetDirectory) Dir() string { return d.dir }

// Names returns the preset names, sorted. An unreadable directory has none.
func (d *PresetDirectory) Names() []string {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := presetName(e); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Lookup returns the preset with the given name.
func (d *PresetDirectory) Lookup(name string) (activation.Resource, bool) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, false
	}
	path := filepath.Join(d.dir, name+PresetExt)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, false
	}
	return Preset{name: name, path: path}, true
}

// Valid reports whether name is a current preset.
func (d *PresetDirectory) Valid(name string) bool {
	_, ok := d.Lookup(name)
	return ok
}

func presetName(e os.DirEntry) (string, bool) {
	if e.IsDir() || !strings.HasSuffix(e.Name(), PresetExt) {
		return "", false
	}
	name := strings.TrimSuffix(e.Name(), PresetExt)
	return name, name != "" && !strings.HasPrefix(name, ".")
}
