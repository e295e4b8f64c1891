// SPDX-License-Identifier: EPL-2.0

package tui

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrNoOptions is returned when a selection prompt has nothing to offer.
var ErrNoOptions = errors.New("no options to choose from")

// MultiSelectOptions configures the MultiSelect prompt.
type MultiSelectOptions struct {
	// Title is the prompt displayed above the options.
	Title string
	// Description provides additional context below the title.
	Description string
	// Options is the list of values to choose from.
	Options []string
	// Preselected marks options that start out selected.
	Preselected []string
	// Limit is the maximum number of selections (0 for unlimited).
	Limit int
	// Height limits the number of visible options (0 for auto).
	Height int
	// Config holds common TUI configuration.
	Config Config
}

// MultiSelect prompts the user to pick zero or more of the given options.
// The returned slice preserves the order in which options were listed.
// Returns ErrCancelled when the user dismisses the prompt.
func MultiSelect(opts MultiSelectOptions) ([]string, error) {
	if len(opts.Options) == 0 {
		return nil, ErrNoOptions
	}

	preselected := make(map[string]bool, len(opts.Preselected))
	for _, p := range opts.Preselected {
		preselected[p] = true
	}

	var results []string
	huhOpts := make([]huh.Option[string], len(opts.Options))
	for i, opt := range opts.Options {
		huhOpts[i] = huh.NewOption(opt, opt).Selected(preselected[opt])
	}

	sel := huh.NewMultiSelect[string]().
		Title(opts.Title).
		Description(opts.Description).
		Options(huhOpts...).
		Value(&results)

	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	if opts.Height > 0 {
		sel = sel.Height(opts.Height)
	}

	form := huh.NewForm(huh.NewGroup(sel)).
		WithTheme(getHuhTheme(opts.Config.Theme)).
		WithAccessible(opts.Config.Accessible)

	if err := form.Run(); err != nil {
		return nil, mapRunError(err)
	}

	return results, nil
}
