package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/uv/config.yml
// - macOS: ~/Library/Application Support/uv/config.yml
// - Windows: %APPDATA%\uv\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "uv", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .uv/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".uv", "config.yml")
}
