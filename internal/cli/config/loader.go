package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/custrack-go/internal/infra/confloader"
)

// DefaultConfigPath returns the default CLI config file location.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".custrack", "config.yaml")
}

// Load reads the CLI configuration. The file layer is optional: a
// missing file yields the defaults, still subject to environment and
// flag overrides. Priority: flags > env > file > defaults.
func Load(path string, overrides map[string]any) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	opts := []confloader.Option{}
	if _, err := os.Stat(path); err == nil {
		opts = append(opts, confloader.WithConfigFile(path))
	}

	l := confloader.NewLoader(opts...)
	cfg := Default()
	if err := l.Load(cfg); err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := l.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := l.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML with owner-only permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// EnsureClientID fills in a generated client ID if the configuration
// has none, persisting it so the installation keeps a stable identity
// across runs. Returns true when a new ID was generated.
func EnsureClientID(cfg *CLIConfig, path string) (bool, error) {
	if cfg.ClientID != "" {
		return false, nil
	}
	cfg.ClientID = uuid.NewString()
	if err := Save(cfg, path); err != nil {
		return false, fmt.Errorf("persist client id: %w", err)
	}
	return true, nil
}
