package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source labels for Config.Source.
const (
	SourceEmbedded  = "embedded"
	SourceHardcoded = "hardcoded"
)

// Load loads the difficulty configuration.
// Search order: customPath -> ~/.circuit/configs/difficulty.yaml -> ./configs/difficulty.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		f, err := readFile(customPath)
		if err != nil {
			return Config{}, err
		}
		return build(f, customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("difficulty.yaml"); userCfgPath != "" {
		if f, err := readFile(userCfgPath); err == nil {
			if cfg, err := build(f, userCfgPath); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if f, err := readFile(filepath.Join("configs", "difficulty.yaml")); err == nil {
		if cfg, err := build(f, "configs/difficulty.yaml"); err == nil {
			return cfg, nil
		}
	}

	return LoadDefault()
}

// LoadDefault returns the embedded configuration, falling back to the
// hardcoded presets if the embedded YAML cannot be used.
func LoadDefault() (Config, error) {
	var f File
	if err := yaml.Unmarshal(defaultDifficultyYAML, &f); err == nil {
		if cfg, err := build(f, SourceEmbedded); err == nil {
			return cfg, nil
		}
	}
	return build(DefaultFile(), SourceHardcoded)
}

// Parse decodes and validates configuration from YAML bytes.
func Parse(data []byte) (Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse: %w", err)
	}
	return build(f, "")
}

// Marshal encodes a configuration file as YAML.
func Marshal(f File) ([]byte, error) {
	return yaml.Marshal(f)
}

func readFile(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return f, nil
}

func build(f File, source string) (Config, error) {
	presets, err := NewPresets(f)
	if err != nil {
		if source != "" {
			return Config{}, fmt.Errorf("%s: %w", source, err)
		}
		return Config{}, err
	}
	return Config{
		Generator: f.Generator.GenParams(),
		Presets:   presets,
		Source:    source,
	}, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".circuit", "configs", filename)
}
