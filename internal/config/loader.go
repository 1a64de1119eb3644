package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the driftfield tuning.
// Search order: customPath -> ~/.driftfield/configs/driftfield.yaml ->
// ./configs/driftfield.yaml -> embedded default.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		return parse(data, customPath)
	}

	if userPath := userConfigPath("driftfield.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if cfg, err := parse(data, userPath); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/driftfield.yaml"); err == nil {
		if cfg, err := parse(data, "configs/driftfield.yaml"); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultYAML, "embedded default"); err == nil {
		return cfg, nil
	}
	return Default(), nil
}

func parse(data []byte, source string) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: cannot parse %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w (from %s)", err, source)
	}
	return cfg, nil
}

// userConfigPath returns the per-user config location, or empty if the
// home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".driftfield", "configs", filename)
}
