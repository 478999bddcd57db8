package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in every directory.
const FileName = "skirmish.yaml"

// Load loads the battle configuration.
// Search order: customPath -> ~/.skirmish/configs/skirmish.yaml ->
// ./configs/skirmish.yaml -> embedded default -> DefaultConfig.
// Only a bad customPath is an error; broken files elsewhere are skipped.
func Load(customPath string) (SkirmishConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SkirmishConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return SkirmishConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if path := userConfigPath(FileName); path != "" {
		if cfg, ok := tryFile(path); ok {
			return cfg, nil
		}
	}
	if cfg, ok := tryFile(filepath.Join("configs", FileName)); ok {
		return cfg, nil
	}

	cfg, err := parse(defaultSkirmishYAML)
	if err != nil {
		return DefaultConfig(), nil
	}
	return cfg, nil
}

func tryFile(path string) (SkirmishConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SkirmishConfig{}, false
	}
	cfg, err := parse(data)
	if err != nil {
		return SkirmishConfig{}, false
	}
	return cfg, true
}

// parse decodes YAML over DefaultConfig so omitted sections keep their
// defaults, then validates the result.
func parse(data []byte) (SkirmishConfig, error) {
	cfg := DefaultConfig()
	cfg.Scenarios = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SkirmishConfig{}, err
	}
	if len(cfg.Scenarios) == 0 {
		cfg.Scenarios = DefaultConfig().Scenarios
	}
	if err := cfg.Validate(); err != nil {
		return SkirmishConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns ~/.skirmish/configs/<filename>, or "" without a home.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skirmish", "configs", filename)
}

// DataDir returns ~/.skirmish, falling back to the working directory.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skirmish"
	}
	return filepath.Join(home, ".skirmish")
}
