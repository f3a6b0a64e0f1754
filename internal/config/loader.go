package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config search path.
const ConfigFile = "bearrun.yaml"

// LoadRun loads the Bear Run configuration.
// Search order: customPath -> ~/.bearrun/configs/bearrun.yaml -> ./configs/bearrun.yaml -> embedded default
func LoadRun(customPath string) (RunConfig, error) {
	// A custom path must load, anything else falls through silently
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseRun(data)
		if err != nil {
			return RunConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseRun(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parseRun(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseRun(defaultRunYAML)
	if err != nil {
		return DefaultRunConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseRun decodes a YAML document on top of the built-in defaults, so a
// partial file only overrides the keys it names.
func parseRun(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// Marshal renders the config as YAML.
func (c RunConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bearrun", "configs", filename)
}
