package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config controls where practice data lives and how it is shown.
type Config struct {
	DataDir  string   `yaml:"data_dir"`
	LogPath  string   `yaml:"log_path"`
	Backend  string   `yaml:"backend"`
	PlanPath string   `yaml:"plan_path"`
	UI       UIConfig `yaml:"ui"`
}

type UIConfig struct {
	StyleVariant string `yaml:"style_variant"`
	ASCIIOnly    bool   `yaml:"ascii_only"`
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

func DefaultConfig() Config {
	return Config{
		Backend: BackendSQLite,
		UI: UIConfig{
			StyleVariant: "modern_arcade",
		},
	}
}

// LoadConfigFile overlays the YAML file at path onto DefaultConfig. Keys the
// file omits keep their defaults.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "", BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("invalid backend %q", c.Backend)
	}
	if c.Backend == "" {
		c.Backend = BackendSQLite
	}
	switch c.UI.StyleVariant {
	case "", "modern_arcade", "cozy_clean", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "modern_arcade"
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "acordiario")
	}

	return nil
}
