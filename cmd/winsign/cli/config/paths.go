// Package config provides configuration management for the winsign CLI.
package config

import (
	"os"
	"path/filepath"
)

// Dir returns the winsign config directory.
// Uses XDG_CONFIG_HOME/winsign, defaulting to ~/.config/winsign.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "winsign"), nil
}

// Path returns the winsign config file path inside Dir.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
