package config

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Config is the parsed settings file.
//
// The file uses a dnsmasq-style format: one `optionName value` pair per line,
// `#` comments, and `[section]` headers. Options before the first header
// belong to the global section, which is addressed as section "".
type Config struct {
	// Global holds options that appear before any section header.
	Global map[string]string
	// Sections holds options keyed by section name, then option name.
	Sections map[string]map[string]string
	// Warnings contains any warnings generated during config loading.
	Warnings []string
}

// NewConfig creates a new empty configuration.
func NewConfig() *Config {
	return &Config{
		Global:   make(map[string]string),
		Sections: make(map[string]map[string]string),
		Warnings: make([]string, 0),
	}
}

// Load loads configuration from the default config file path.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads configuration from the specified file path. A missing
// file yields an empty configuration.
//
// Symlinks are rejected so the settings writer can never be pointed at an
// unrelated file.
func LoadFromPath(path string) (*Config, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if fi.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("symlink not allowed in config path: %s", path)
	}

	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader loads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	config := NewConfig()
	scanner := bufio.NewScanner(r)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if isSectionHeader(line) {
			currentSection = sectionName(line)
			if currentSection != "" && config.Sections[currentSection] == nil {
				config.Sections[currentSection] = make(map[string]string)
			}
			continue
		}

		optionName, value := splitOption(line)

		if currentSection == "" {
			config.Global[optionName] = value
		} else {
			config.Sections[currentSection][optionName] = value
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	for _, issue := range ValidateConfig(config, DefaultSchema()) {
		config.addWarning("%s", issue)
	}

	return config, nil
}

func isSectionHeader(line string) bool {
	return strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")
}

func sectionName(line string) string {
	return strings.TrimSpace(strings.Trim(line, "[]"))
}

// splitOption parses `optionName remainingLineIsTheValue`. A value written
// in double quotes is unquoted, which is how edge whitespace survives.
func splitOption(line string) (name, value string) {
	parts := strings.SplitN(line, " ", 2)
	name = parts[0]
	if len(parts) > 1 {
		value = strings.TrimSpace(parts[1])
	}
	if isQuoted(value) {
		if v, err := strconv.Unquote(value); err == nil {
			value = v
		}
	}
	return name, value
}

func isQuoted(v string) bool {
	return len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"'
}

// quoteValue quotes v when the line format would otherwise lose or
// misread it.
func quoteValue(v string) string {
	if v != strings.TrimSpace(v) || isQuoted(v) {
		return strconv.Quote(v)
	}
	return v
}

// addWarning adds a warning to the config's warnings list.
func (c *Config) addWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.Warnings = append(c.Warnings, msg)
	slog.Warn("[Config] " + msg)
}

// parseBool parses a boolean value from string.
// Accepts: true, false, 1, 0, yes, no, on, off (case-insensitive)
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}

// GetGlobalOption returns a global configuration option.
func (c *Config) GetGlobalOption(name string) (string, bool) {
	value, exists := c.Global[name]
	return value, exists
}

// GetOption returns the option stored under section and name. Section "" is
// the global section. Unlike command options in a CLI config, there is no
// fallback from a named section to the global one: settings groups are
// independent namespaces.
func (c *Config) GetOption(section, name string) (string, bool) {
	if section == "" {
		return c.GetGlobalOption(name)
	}
	if opts, exists := c.Sections[section]; exists {
		value, exists := opts[name]
		return value, exists
	}
	return "", false
}

// SetGlobalOption sets a global configuration option.
func (c *Config) SetGlobalOption(name, value string) {
	c.Global[name] = value
}

// SetOption sets an option in the given section ("" for global).
func (c *Config) SetOption(section, name, value string) {
	if section == "" {
		c.SetGlobalOption(name, value)
		return
	}
	if c.Sections[section] == nil {
		c.Sections[section] = make(map[string]string)
	}
	c.Sections[section][name] = value
}

// SectionNames returns the named sections in sorted order.
func (c *Config) SectionNames() []string {
	names := make([]string, 0, len(c.Sections))
	for name := range c.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
