// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"pyembed/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		got := formatErrorForDisplay(errors.New("boom"), false)
		if got != "boom" {
			t.Errorf("formatErrorForDisplay() = %q, want %q", got, "boom")
		}
	})

	t.Run("actionable error uses Format", func(t *testing.T) {
		err := issue.NewErrorContext().
			WithOperation("read script").
			WithSuggestion("check the path").
			BuildError()

		got := formatErrorForDisplay(err, false)
		if got == "" || got == err.Error() {
			t.Errorf("expected formatted output with suggestions, got %q", got)
		}
	})
}

func TestRootCommandTree(t *testing.T) {
	expected := []string{"scan", "embed", "pick", "config"}

	for _, name := range expected {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}
