package config

import (
	"fmt"
	"sync/atomic"
)

// current is the configuration of the running command. The CLI replaces it
// once per invocation; readers never see a partially loaded value.
var current atomic.Pointer[Config]

// GetConfig returns the active configuration, or nil before the first
// successful ReloadConfig or SetConfig.
func GetConfig() *Config {
	return current.Load()
}

// SetConfig installs cfg as the active configuration.
func SetConfig(cfg *Config) {
	current.Store(cfg)
}

// ReloadConfig loads path with environment overrides (defaults when the file
// does not exist) and installs the result. On error the active
// configuration is left untouched.
func ReloadConfig(path string) error {
	cfg, err := LoadConfigOrDefaults(path)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}
	current.Store(cfg)
	return nil
}
