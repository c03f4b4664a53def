// Package config provides custrack CLI configuration.
//
// Configuration lives at ~/.custrack/config.yaml and can be
// overridden per key with CUSTRACK_* environment variables and
// command-line flags. The first run generates a client ID that is
// persisted alongside the rest of the settings.
package config
