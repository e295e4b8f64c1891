// SPDX-License-Identifier: EPL-2.0

package tui

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Theme represents the visual theme for TUI components.
type Theme string

const (
	// ThemeDefault uses the default huh theme.
	ThemeDefault Theme = "default"
	// ThemeCharm uses the Charm theme.
	ThemeCharm Theme = "charm"
	// ThemeDracula uses the Dracula theme.
	ThemeDracula Theme = "dracula"
	// ThemeCatppuccin uses the Catppuccin theme.
	ThemeCatppuccin Theme = "catppuccin"
	// ThemeBase16 uses the Base16 theme.
	ThemeBase16 Theme = "base16"
)

// ErrCancelled is returned when the user dismisses a prompt without answering.
var ErrCancelled = errors.New("prompt cancelled")

// Config holds common configuration for TUI components.
type Config struct {
	// Theme specifies the visual theme to use.
	Theme Theme
	// Accessible enables accessible mode for screen readers.
	Accessible bool
	// Output specifies where to write the component output.
	Output io.Writer
}

// DefaultConfig returns the default configuration for TUI components.
// Accessible mode is enabled when stdin is not a terminal or the ACCESSIBLE
// environment variable is set; in that case output goes to stderr so prompts
// aren't captured by command substitution ($() or backticks).
func DefaultConfig() Config {
	accessible := !isInputTerminal() || os.Getenv("ACCESSIBLE") != ""

	var output io.Writer = os.Stdout
	if accessible {
		output = os.Stderr
	}

	return Config{
		Theme:      ThemeDefault,
		Accessible: accessible,
		Output:     output,
	}
}

// isInputTerminal reports whether stdin is connected to a terminal.
func isInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// getHuhTheme maps a Theme name to the corresponding huh theme.
func getHuhTheme(theme Theme) *huh.Theme {
	switch theme {
	case ThemeCharm:
		return huh.ThemeCharm()
	case ThemeDracula:
		return huh.ThemeDracula()
	case ThemeCatppuccin:
		return huh.ThemeCatppuccin()
	case ThemeBase16:
		return huh.ThemeBase16()
	default:
		return huh.ThemeBase()
	}
}

// mapRunError converts huh's abort error into ErrCancelled and passes
// everything else through.
func mapRunError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}
