package config

import (
	"os"
	"path/filepath"
)

// ConfigEnvVar overrides the settings file location.
const ConfigEnvVar = "TENSLOTS_CONFIG"

// GetConfigPath returns the settings file path. The TENSLOTS_CONFIG
// environment variable wins; otherwise the file lives at ~/.ten-slots/config.
func GetConfigPath() (string, error) {
	if configPath := os.Getenv(ConfigEnvVar); configPath != "" {
		return configPath, nil
	}

	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config"), nil
}

// GetConfigDir returns ~/.ten-slots, the base for the default settings file,
// presets directory and scripts directory.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".ten-slots"), nil
}
