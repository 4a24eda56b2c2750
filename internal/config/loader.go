package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, the journal and logs.
const AppDir = ".gaterunner"

// LoadGates loads the gate runner configuration.
// Search order: customPath -> ~/.gaterunner/configs/gates.yaml -> ./configs/gates.yaml -> embedded default.
// Files only need to list the values they change; everything else keeps its default.
func LoadGates(customPath string) (GatesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GatesConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseGates(data)
		if err != nil {
			return GatesConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("gates.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseGates(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "gates.yaml")); err == nil {
		if cfg, err := ParseGates(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseGates(defaultGatesYAML)
	if err != nil {
		return DefaultGatesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseGates decodes YAML on top of the defaults and validates the result.
func ParseGates(data []byte) (GatesConfig, error) {
	cfg := DefaultGatesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GatesConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return GatesConfig{}, err
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg GatesConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// UserPath returns a path under ~/.gaterunner, or empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func userConfigPath(filename string) string {
	return UserPath("configs", filename)
}
