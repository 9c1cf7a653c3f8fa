// Package config provides hierarchical configuration management for uv using
// koanf. Configuration is loaded with priority: environment variables >
// project config (.uv/config.yml) > user config (~/.config/uv/config.yml) >
// defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/skshetry/uv/internal/python"
)

// Settings represents the uv CLI tool configuration.
type Settings struct {
	// Python is the default interpreter request used when `uv init` is run
	// without --python. Empty means any interpreter.
	// Can be set via UV_PYTHON env var.
	Python string `koanf:"python"`

	// PythonPreference orders managed interpreters against system ones.
	// Valid values: only-managed, managed, system, only-system.
	PythonPreference string `koanf:"python_preference"`

	// PythonFetch controls downloading of missing interpreters.
	// Valid values: automatic, manual, never.
	PythonFetch string `koanf:"python_fetch"`

	// Offline disables all network access. Can be set via UV_OFFLINE.
	Offline bool `koanf:"offline"`

	// NativeTLS verifies downloads against the platform certificate store.
	NativeTLS bool `koanf:"native_tls"`

	// PythonIndexURL overrides the interpreter release index.
	PythonIndexURL string `koanf:"python_index_url"`

	// CacheDir overrides the managed interpreter cache location.
	// Empty means the platform cache directory.
	CacheDir string `koanf:"cache_dir"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .uv/config.yml)
	ProjectConfigPath string
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Settings, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Settings, error) {
	k := koanf.New(".")

	loadDefaults(k)

	userPath, _ := UserConfigPath()
	if err := loadFileConfig(k, userPath, "user"); err != nil {
		return nil, err
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
	}
	if err := loadFileConfig(k, projectPath, "project"); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("UV_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks that enum-valued settings carry recognized spellings.
func Validate(s *Settings) error {
	if _, err := python.ParsePreference(s.PythonPreference); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := python.ParseFetchPolicy(s.PythonFetch); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadFileConfig loads a YAML config file if it exists. A missing file means
// the layer contributes nothing.
func loadFileConfig(k *koanf.Koanf, path, configType string) error {
	if path == "" || !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: UV_PYTHON_PREFERENCE -> python_preference
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "UV_"))
}
