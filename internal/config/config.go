package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "sarmaya.yaml"

// Config represents the top-level sarmaya.yaml configuration.
type Config struct {
	Branch BranchConfig `yaml:"branch"`
	Data   DataConfig   `yaml:"data"`
}

// BranchConfig identifies the branch operating this loan book.
type BranchConfig struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
}

// DataConfig controls where and how the ledger files are loaded.
type DataConfig struct {
	Dir string `yaml:"dir"`
	// StrictLoad fails startup on a malformed CSV line instead of
	// dropping it. Meant for data-integrity audits.
	StrictLoad bool `yaml:"strict_load"`
}

// Load reads a sarmaya.yaml file, then applies environment overrides.
// A .env file in the working directory is honored; SARMAYA_DATA_DIR
// overrides the data directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	applyEnv(&cfg)
	return &cfg, nil
}

// LoadOrDefault is Load, falling back to defaults when the file is missing.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default("")
		applyEnv(cfg)
		return cfg, nil
	}
	return Load(path)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new loan book.
func Default(branchName string) *Config {
	return &Config{
		Branch: BranchConfig{
			Name: branchName,
			Code: "001",
		},
		Data: DataConfig{
			Dir: "data",
		},
	}
}

func applyEnv(cfg *Config) {
	_ = godotenv.Load()
	if dir := os.Getenv("SARMAYA_DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}
}
