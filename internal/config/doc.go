// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/pyembed/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/pyembed/config.cue on macOS, %APPDATA%\pyembed\config.cue
// on Windows). The package provides type-safe configuration access and covers extra
// site-packages directories, package exclusions, the default output suffix, and UI settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
