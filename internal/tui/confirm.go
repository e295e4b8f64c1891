// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/charmbracelet/huh"
)

// ConfirmOptions configures the Confirm prompt.
type ConfirmOptions struct {
	// Title is the question to display.
	Title string
	// Description provides additional context below the title.
	Description string
	// Affirmative is the text for the affirmative option (default: "Yes").
	Affirmative string
	// Negative is the text for the negative option (default: "No").
	Negative string
	// Default is the preselected answer.
	Default bool
	// Config holds common TUI configuration.
	Config Config
}

// Confirm prompts the user with a yes/no question.
// Returns ErrCancelled when the user dismisses the prompt.
func Confirm(opts ConfirmOptions) (bool, error) {
	affirmative := opts.Affirmative
	if affirmative == "" {
		affirmative = "Yes"
	}
	negative := opts.Negative
	if negative == "" {
		negative = "No"
	}

	result := opts.Default
	confirm := huh.NewConfirm().
		Title(opts.Title).
		Description(opts.Description).
		Affirmative(affirmative).
		Negative(negative).
		Value(&result)

	form := huh.NewForm(huh.NewGroup(confirm)).
		WithTheme(getHuhTheme(opts.Config.Theme)).
		WithAccessible(opts.Config.Accessible)

	if err := form.Run(); err != nil {
		return false, mapRunError(err)
	}

	return result, nil
}
