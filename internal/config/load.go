package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile looks for the viewer config in the working directory, then
// in the per-user config directory.
func findConfigFile() string {
	candidates := []string{
		"./sceneviewer.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Fusee")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Fusee")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "fusee")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "fusee")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// Relative scene and texture paths in the file are resolved against the
// file's directory so a config can sit next to its scenes.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	cfg.Scene.Path = resolvePath(dir, cfg.Scene.Path)
	cfg.Scene.TextureDir = resolvePath(dir, cfg.Scene.TextureDir)
	return nil
}

// resolvePath joins a relative p onto dir. Empty and absolute paths are kept.
func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
