package slot

import (
	"strings"

	"github.com/joeycumines/ten-slots/internal/settings"
)

// Separator joins assignments in a persisted value. Identifiers containing
// it are not escaped and will split on the next load; this keeps the format
// readable by the original extensions.
const Separator = ","

// Boolean flags are persisted with these exact spellings.
const (
	True  = "True"
	False = "False"
)

// Store persists ordered assignment lists through a settings backend.
type Store struct {
	backend settings.Backend
}

// NewStore returns a Store over backend.
func NewStore(backend settings.Backend) *Store {
	return &Store{backend: backend}
}

// Load reads group/key and splits it on Separator. An absent setting yields
// a single empty entry, which callers treat as nothing assigned.
func (s *Store) Load(group, key string) []string {
	return Parse(s.backend.ReadSetting(group, key, ""))
}

// Save joins values on Separator and writes them as one setting.
func (s *Store) Save(group, key string, values []string) error {
	return s.backend.WriteSetting(group, key, Format(values))
}

// LoadFlag reads a "True"/"False" flag. Only the exact string "True" is
// true; anything else, including garbage, is false. def is used when the
// setting is absent.
func (s *Store) LoadFlag(group, key string, def bool) bool {
	return s.backend.ReadSetting(group, key, FormatBool(def)) == True
}

// SaveFlag writes a "True"/"False" flag.
func (s *Store) SaveFlag(group, key string, v bool) error {
	return s.backend.WriteSetting(group, key, FormatBool(v))
}

// Parse splits a persisted value.
func Parse(value string) []string {
	return strings.Split(value, Separator)
}

// Format joins assignments for persistence.
func Format(values []string) string {
	return strings.Join(values, Separator)
}

// FormatBool renders v the way LoadFlag expects.
func FormatBool(v bool) string {
	if v {
		return True
	}
	return False
}
