package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the config file name looked up in the search directories.
const ConfigFile = "orbfall.yaml"

// Load loads the orbfall configuration.
// Search order: customPath -> ~/.orbfall/configs/orbfall.yaml -> ./configs/orbfall.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides
// the keys it sets. The result is validated.
func Load(customPath string) (OrbfallConfig, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (OrbfallConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultOrbfallConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := decode(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultOrbfallYAML)
	if err != nil {
		return DefaultOrbfallConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode unmarshals data on top of the built-in defaults.
func decode(data []byte) (OrbfallConfig, error) {
	cfg := DefaultOrbfallConfig()
	// A symbols list in the file replaces the default palette; yaml.v3
	// allocates a fresh slice for sequences.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultOrbfallConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".orbfall", "configs", filename)
}
