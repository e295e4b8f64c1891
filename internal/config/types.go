// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidSiteDirPath is the sentinel error wrapped by InvalidSiteDirPathError.
	ErrInvalidSiteDirPath = errors.New("invalid site dir path")
	// ErrInvalidOutputSuffix is returned when an OutputSuffix value is malformed.
	ErrInvalidOutputSuffix = errors.New("invalid output suffix")
	// ErrInvalidPackageName is returned when an exclusion entry is empty or contains separators.
	ErrInvalidPackageName = errors.New("invalid package name")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// SiteDirPath represents a filesystem path to a site-packages directory that
	// is searched in addition to the entries derived from PYTHONPATH.
	// A valid path must be non-empty and not whitespace-only.
	SiteDirPath string

	// InvalidSiteDirPathError is returned when a SiteDirPath value is empty or
	// whitespace-only. It wraps ErrInvalidSiteDirPath for errors.Is().
	InvalidSiteDirPathError struct {
		Value SiteDirPath
	}

	// OutputSuffix is the token spliced into derived output file names
	// (tool.py becomes tool.<suffix>.py). A valid suffix is non-empty and
	// contains no path separators or dots.
	OutputSuffix string

	// InvalidOutputSuffixError is returned when an OutputSuffix value is empty
	// or contains separators. It wraps ErrInvalidOutputSuffix for errors.Is().
	InvalidOutputSuffixError struct {
		Value OutputSuffix
	}

	// PackageName is a Python package name used in exclusion lists.
	// A valid name is non-empty and contains no path separators.
	PackageName string

	// InvalidPackageNameError is returned when a PackageName value is empty or
	// contains separators. It wraps ErrInvalidPackageName for errors.Is().
	InvalidPackageNameError struct {
		Value PackageName
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// SiteDirs lists extra site-packages directories searched in addition
		// to the entries derived from PYTHONPATH.
		SiteDirs []SiteDirPath `json:"site_dirs" mapstructure:"site_dirs"`
		// ExcludePackages lists package names that are never embedded, on top
		// of the built-in exclusions.
		ExcludePackages []PackageName `json:"exclude_packages" mapstructure:"exclude_packages"`
		// OutputSuffix sets the token used when deriving output file names.
		OutputSuffix OutputSuffix `json:"output_suffix" mapstructure:"output_suffix"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to each SiteDirs entry's IsValid(), each ExcludePackages
// entry's IsValid(), OutputSuffix.IsValid(), and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, dir := range c.SiteDirs {
		if valid, fieldErrs := dir.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	for _, name := range c.ExcludePackages {
		if valid, fieldErrs := name.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.OutputSuffix.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the SiteDirPath.
func (p SiteDirPath) String() string { return string(p) }

// IsValid returns whether the SiteDirPath is valid.
// A valid path must be non-empty and not whitespace-only.
func (p SiteDirPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidSiteDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSiteDirPathError.
func (e *InvalidSiteDirPathError) Error() string {
	return fmt.Sprintf("invalid site dir path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidSiteDirPath for errors.Is() compatibility.
func (e *InvalidSiteDirPathError) Unwrap() error { return ErrInvalidSiteDirPath }

// String returns the string representation of the OutputSuffix.
func (s OutputSuffix) String() string { return string(s) }

// IsValid returns whether the OutputSuffix is valid.
// A valid suffix is non-empty and contains no path separators or dots.
func (s OutputSuffix) IsValid() (bool, []error) {
	if strings.TrimSpace(string(s)) == "" || strings.ContainsAny(string(s), "/\\.") {
		return false, []error{&InvalidOutputSuffixError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputSuffixError.
func (e *InvalidOutputSuffixError) Error() string {
	return fmt.Sprintf("invalid output suffix %q: must be non-empty without separators or dots", e.Value)
}

// Unwrap returns ErrInvalidOutputSuffix for errors.Is() compatibility.
func (e *InvalidOutputSuffixError) Unwrap() error { return ErrInvalidOutputSuffix }

// String returns the string representation of the PackageName.
func (n PackageName) String() string { return string(n) }

// IsValid returns whether the PackageName is valid.
// A valid name is non-empty and contains no path separators.
func (n PackageName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" || strings.ContainsAny(string(n), "/\\") {
		return false, []error{&InvalidPackageNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPackageNameError.
func (e *InvalidPackageNameError) Error() string {
	return fmt.Sprintf("invalid package name %q: must be non-empty without separators", e.Value)
}

// Unwrap returns ErrInvalidPackageName for errors.Is() compatibility.
func (e *InvalidPackageNameError) Unwrap() error { return ErrInvalidPackageName }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		SiteDirs:        []SiteDirPath{},
		ExcludePackages: []PackageName{},
		OutputSuffix:    "embedded",
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
