package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeycumines/ten-slots/internal/storage"
)

// SetSectionKeyInFile updates or adds key inside section ("" for the global
// section) of the config file at path, preserving comments, ordering and
// every other line.
//
// An existing key is replaced in place. A new global key is inserted before
// the first section header; a new key in an existing section is inserted
// after that section's last non-blank line; a missing section is appended.
func SetSectionKeyInFile(path, section, key, value string) error {
	if key == "" || strings.ContainsAny(key, " \t\r\n") {
		return fmt.Errorf("invalid config key %q", key)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("config value for %q must be a single line", key)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config file: %w", err)
	}

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(string(data), "\n")
	}

	lines = setKeyInLines(lines, section, key, formatOption(key, value))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return storage.AtomicWriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func formatOption(key, value string) string {
	if value == "" {
		return key
	}
	return key + " " + quoteValue(value)
}

func setKeyInLines(lines []string, section, key, newLine string) []string {
	current := ""
	sectionFound := section == ""
	// insertIndex is where a new key for the target section goes.
	insertIndex := -1
	if section == "" {
		insertIndex = len(lines)
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if isSectionHeader(trimmed) {
			if current == section && section == "" && insertIndex == len(lines) {
				insertIndex = i
			}
			current = sectionName(trimmed)
			if current == section {
				sectionFound = true
				insertIndex = i + 1
			}
			continue
		}

		if current != section || trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if section != "" {
			insertIndex = i + 1
		}

		if name, _ := splitOption(trimmed); name == key {
			lines[i] = newLine
			return lines
		}
	}

	if !sectionFound {
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = lines[:n-1]
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		return append(lines, "["+section+"]", newLine, "")
	}

	if section == "" && insertIndex == len(lines) {
		// Keep the trailing newline produced by a final "\n".
		if n := len(lines); n > 0 && lines[n-1] == "" {
			return append(lines[:n-1], newLine, "")
		}
		return append(lines, newLine)
	}

	lines = append(lines, "")
	copy(lines[insertIndex+1:], lines[insertIndex:])
	lines[insertIndex] = newLine
	return lines
}
