// Package settings adapts the host's generic key/value settings store to the
// group/key/default contract the slot extensions use.
package settings

// Backend is the settings store consumed by the slot extensions.
//
// Values are opaque single-line strings; the caller owns their encoding.
type Backend interface {
	// ReadSetting returns the value stored under group/key, or defaultValue
	// when nothing is stored. Group "" is the global group.
	ReadSetting(group, key, defaultValue string) string

	// WriteSetting stores value under group/key. Each call is persisted
	// before it returns; there is no batching and no auto-save.
	WriteSetting(group, key, value string) error
}
