package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// OptionType represents the expected type of a configuration option value.
type OptionType string

const (
	// TypeString is a plain string value (the default for all config values).
	TypeString OptionType = "string"
	// TypeBool is a boolean value (true/false/yes/no/1/0/on/off).
	TypeBool OptionType = "bool"
	// TypeInt is an integer value.
	TypeInt OptionType = "int"
	// TypeDuration is a Go time.Duration value (e.g. "30s", "5m", "1h").
	TypeDuration OptionType = "duration"
	// TypeList is a comma-separated list, stored verbatim.
	TypeList OptionType = "list"
)

// ConfigOption declares a single configuration option with its type, default,
// documentation, and environment variable override.
type ConfigOption struct {
	// Key is the option name as it appears in the config file.
	Key string
	// Type is the expected value type for validation.
	Type OptionType
	// Default is the default value as a string, or "" for no default.
	Default string
	// Description is a human-readable description of the option.
	Description string
	// Section is "" for global options, or a section name.
	Section string
	// EnvVar is the environment variable that overrides this option, or "".
	EnvVar string
}

// ConfigSchema declares the expected configuration options.
type ConfigSchema struct {
	options   []*ConfigOption
	bySection map[string]map[string]*ConfigOption
}

// NewSchema creates a new empty ConfigSchema.
func NewSchema() *ConfigSchema {
	return &ConfigSchema{
		bySection: make(map[string]map[string]*ConfigOption),
	}
}

// Register adds a ConfigOption to the schema. Duplicate keys within the same
// section are silently overwritten (last registration wins).
func (s *ConfigSchema) Register(opt ConfigOption) {
	ref := new(ConfigOption)
	*ref = opt
	s.options = append(s.options, ref)
	if s.bySection[opt.Section] == nil {
		s.bySection[opt.Section] = make(map[string]*ConfigOption)
	}
	s.bySection[opt.Section][opt.Key] = ref
}

// RegisterAll adds multiple ConfigOptions to the schema.
func (s *ConfigSchema) RegisterAll(opts []ConfigOption) {
	for _, opt := range opts {
		s.Register(opt)
	}
}

// Lookup returns the ConfigOption for a key in a given section ("" for global).
// Returns nil if the key is not registered.
func (s *ConfigSchema) Lookup(section, key string) *ConfigOption {
	if sec, ok := s.bySection[section]; ok {
		return sec[key]
	}
	return nil
}

// IsKnown returns true if the key is registered in the given section.
func (s *ConfigSchema) IsKnown(section, key string) bool {
	return s.Lookup(section, key) != nil
}

// SectionOptions returns all registered options for a specific section.
func (s *ConfigSchema) SectionOptions(section string) []ConfigOption {
	var out []ConfigOption
	for _, o := range s.options {
		if o.Section == section {
			out = append(out, *o)
		}
	}
	return out
}

// Sections returns a sorted list of all registered non-empty section names.
func (s *ConfigSchema) Sections() []string {
	out := make([]string, 0, len(s.bySection))
	for sec := range s.bySection {
		if sec != "" {
			out = append(out, sec)
		}
	}
	sort.Strings(out)
	return out
}

// Resolve returns the effective value for a key by checking, in order: the
// environment variable declared in the schema, the config value, and the
// schema default. Returns "" if the key is not found anywhere.
func (s *ConfigSchema) Resolve(c *Config, section, key string) string {
	opt := s.Lookup(section, key)
	if opt != nil && opt.EnvVar != "" {
		if v, ok := os.LookupEnv(opt.EnvVar); ok {
			return v
		}
	}
	if c != nil {
		if v, ok := c.GetOption(section, key); ok {
			return v
		}
	}
	if opt != nil {
		return opt.Default
	}
	return ""
}

// ValidateConfig checks a loaded Config against the schema and returns a list
// of human-readable issues (empty if the config is valid).
func ValidateConfig(c *Config, s *ConfigSchema) []string {
	var issues []string

	check := func(section, key, value string) {
		opt := s.Lookup(section, key)
		if opt == nil {
			if section == "" {
				issues = append(issues, fmt.Sprintf("unknown global option: %q (value: %q)", key, value))
			} else {
				issues = append(issues, fmt.Sprintf("unknown option in [%s]: %q (value: %q)", section, key, value))
			}
			return
		}
		if err := validateType(opt.Type, value); err != nil {
			if section == "" {
				issues = append(issues, fmt.Sprintf("global option %q: %v", key, err))
			} else {
				issues = append(issues, fmt.Sprintf("option %q in [%s]: %v", key, section, err))
			}
		}
	}

	for key, value := range c.Global {
		check("", key, value)
	}
	for section, opts := range c.Sections {
		for key, value := range opts {
			check(section, key, value)
		}
	}

	sort.Strings(issues)
	return issues
}

// validateType checks that a string value matches the expected OptionType.
func validateType(t OptionType, value string) error {
	switch t {
	case TypeString, TypeList, "":
		return nil
	case TypeBool:
		if _, err := parseBool(value); err != nil {
			return fmt.Errorf("expected bool, got %q", value)
		}
	case TypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("expected int, got %q", value)
		}
	case TypeDuration:
		if value == "" {
			return nil
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("expected duration, got %q", value)
		}
	default:
		return fmt.Errorf("unknown option type %q", t)
	}
	return nil
}

// --- Typed resolution ---

// ResolveBool resolves key like Resolve and parses it as a bool. Values that
// do not parse fall back to the schema default.
func (s *ConfigSchema) ResolveBool(c *Config, section, key string) bool {
	if b, err := parseBool(s.Resolve(c, section, key)); err == nil {
		return b
	}
	b, _ := parseBool(s.defaultOf(section, key))
	return b
}

// ResolveInt resolves key like Resolve and parses it as an int. Values that
// do not parse fall back to the schema default.
func (s *ConfigSchema) ResolveInt(c *Config, section, key string) int {
	if i, err := strconv.Atoi(strings.TrimSpace(s.Resolve(c, section, key))); err == nil {
		return i
	}
	i, _ := strconv.Atoi(s.defaultOf(section, key))
	return i
}

// ResolveDuration resolves key like Resolve and parses it as a duration. An
// empty value is zero; a value that does not parse is an error.
func (s *ConfigSchema) ResolveDuration(c *Config, section, key string) (time.Duration, error) {
	v := strings.TrimSpace(s.Resolve(c, section, key))
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("option %q: %w", key, err)
	}
	return d, nil
}

func (s *ConfigSchema) defaultOf(section, key string) string {
	if opt := s.Lookup(section, key); opt != nil {
		return opt.Default
	}
	return ""
}

// --- Help text generation ---

// FormatHelp returns a formatted, human-readable reference of all registered
// options in the schema, grouped by section.
func (s *ConfigSchema) FormatHelp() string {
	var b strings.Builder

	if globals := s.SectionOptions(""); len(globals) > 0 {
		b.WriteString("Global Options:\n")
		for _, o := range globals {
			writeOptionHelp(&b, o)
		}
	}

	for _, sec := range s.Sections() {
		opts := s.SectionOptions(sec)
		if len(opts) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n[%s] Options:\n", sec)
		for _, o := range opts {
			writeOptionHelp(&b, o)
		}
	}

	return b.String()
}

func writeOptionHelp(b *strings.Builder, o ConfigOption) {
	fmt.Fprintf(b, "  %-35s %s", o.Key, o.Description)
	parts := make([]string, 0, 3)
	if o.Type != "" && o.Type != TypeString {
		parts = append(parts, fmt.Sprintf("type: %s", o.Type))
	}
	if o.Default != "" {
		parts = append(parts, fmt.Sprintf("default: %s", o.Default))
	}
	if o.EnvVar != "" {
		parts = append(parts, fmt.Sprintf("env: %s", o.EnvVar))
	}
	if len(parts) > 0 {
		fmt.Fprintf(b, " (%s)", strings.Join(parts, ", "))
	}
	b.WriteString("\n")
}

// --- Default schema ---

// Settings keys shared between the extensions and the schema. The names match
// the settings written by the original ten brushes / ten scripts extensions,
// so existing settings files stay readable.
const (
	BrushesGroup     = ""
	BrushesKey       = "tenbrushes"
	BrushesToggleKey = "tenbrushesActivatePrev2ndPress"
	ScriptsGroup     = "tenscripts"
	ScriptsKey       = "scripts"
	HostGroup        = "host"
	ActivePresetKey  = "activePreset"
)

// DefaultSchema returns the canonical schema declaring all known options.
func DefaultSchema() *ConfigSchema {
	s := NewSchema()
	s.RegisterAll(defaultGlobalOptions())
	s.RegisterAll(defaultSectionOptions())
	return s
}

func defaultGlobalOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "verbose", Type: TypeBool, Default: "false", Description: "Log at debug level unless log.level is given on the command line"},
		{Key: "lang", Type: TypeString, Default: "en", Description: "Language for user-visible messages", EnvVar: "TENSLOTS_LANG"},
		{Key: "presets.dir", Type: TypeString, Default: "", Description: "Directory scanned for *.preset resources (default ~/.ten-slots/presets)", EnvVar: "TENSLOTS_PRESETS_DIR"},
		{Key: "scripts.dir", Type: TypeString, Default: "", Description: "Directory offered by the script assignment editor (default ~/.ten-slots/scripts)"},
		{Key: "scripts.timeout", Type: TypeDuration, Default: "", Description: "Interrupt scripts running longer than this (empty: never)"},

		{Key: "log.file", Type: TypeString, Default: "", Description: "Log file path (JSON output)", EnvVar: "TENSLOTS_LOG_FILE"},
		{Key: "log.level", Type: TypeString, Default: "info", Description: "Log level: debug, info, warn, error", EnvVar: "TENSLOTS_LOG_LEVEL"},
		{Key: "log.max-size-mb", Type: TypeInt, Default: "10", Description: "Max log file size in MB before rotation"},
		{Key: "log.max-files", Type: TypeInt, Default: "5", Description: "Max number of rotated log backup files"},

		{Key: BrushesKey, Type: TypeList, Default: "", Description: "Brush preset assigned to each of the ten preset slots"},
		{Key: BrushesToggleKey, Type: TypeString, Default: "True", Description: "Second press of a preset shortcut restores the previous preset (True/False)"},
	}
}

func defaultSectionOptions() []ConfigOption {
	return []ConfigOption{
		{Key: ScriptsKey, Section: ScriptsGroup, Type: TypeList, Default: "", Description: "Script file assigned to each of the ten script slots"},
		{Key: ActivePresetKey, Section: HostGroup, Type: TypeString, Default: "", Description: "Preset currently active in the reference host"},
	}
}
