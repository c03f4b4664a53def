// Package config defines the custrack CLI configuration.
package config

import (
	"fmt"
	"time"
)

// CLIConfig is the configuration for custrack, loaded from
// ~/.custrack/config.yaml and CUSTRACK_* environment variables.
type CLIConfig struct {
	// Server is the CRM API base URL.
	Server string `koanf:"server" yaml:"server"`

	// Output selects the default rendering: table, json or yaml.
	Output string `koanf:"output" yaml:"output"`

	// Timeout bounds each API request.
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`

	// CredentialDir holds the sealed credential and its key file.
	// Empty means the default ~/.custrack.
	CredentialDir string `koanf:"credential_dir" yaml:"credential_dir,omitempty"`

	// ClientID identifies this installation to the server. Generated
	// on first run and persisted.
	ClientID string `koanf:"client_id" yaml:"client_id,omitempty"`

	// HistoryFile stores interactive shell history.
	HistoryFile string `koanf:"history_file" yaml:"history_file,omitempty"`

	Log LogSection `koanf:"log" yaml:"log"`

	TLS TLSSection `koanf:"tls" yaml:"tls,omitempty"`
}

// LogSection configures CLI logging.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// TLSSection configures trust for HTTPS servers with private CAs.
type TLSSection struct {
	// CAFile is a PEM bundle appended to the system roots.
	CAFile string `koanf:"ca_file" yaml:"ca_file,omitempty"`

	// CADir holds .pem/.crt/.cer files appended to the system roots.
	CADir string `koanf:"ca_dir" yaml:"ca_dir,omitempty"`
}

// Enabled reports whether any custom trust is configured.
func (t TLSSection) Enabled() bool {
	return t.CAFile != "" || t.CADir != ""
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:  "http://localhost:3000",
		Output:  "table",
		Timeout: 10 * time.Second,
		Log: LogSection{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Validate checks the loaded configuration.
func (c *CLIConfig) Validate() error {
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (want table, json or yaml)", c.Output)
	}
	if c.Server == "" {
		return fmt.Errorf("server must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}
