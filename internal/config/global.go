// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	globalMu     sync.Mutex
	globalConfig *Config
	configPath   string

	// configFilePathOverride forces loading from a specific file (--config flag).
	configFilePathOverride string

	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
)

// Load reads the configuration, caching the result for subsequent Get calls.
func Load() (*Config, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	configPath = path
	return cfg, nil
}

// Get returns the cached configuration, loading it on first use.
// Falls back to defaults when loading fails.
func Get() *Config {
	globalMu.Lock()
	cached := globalConfig
	globalMu.Unlock()

	if cached != nil {
		return cached
	}

	cfg, err := Load()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// Path returns the path of the loaded config file, or "" when running
// on defaults.
func Path() string {
	globalMu.Lock()
	defer globalMu.Unlock()
	return configPath
}

// Reset clears the cached config and all overrides. Call from test cleanup
// to restore defaults.
func Reset() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = nil
	configPath = ""
	configFilePathOverride = ""
	configDirOverride = ""
}

// SetConfigFilePathOverride forces subsequent loads to read the given file.
// Used by the --config persistent flag.
func SetConfigFilePathOverride(path string) {
	globalMu.Lock()
	defer globalMu.Unlock()
	configFilePathOverride = path
	globalConfig = nil
	configPath = ""
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	globalMu.Lock()
	defer globalMu.Unlock()
	configDirOverride = dir
	globalConfig = nil
	configPath = ""
}
