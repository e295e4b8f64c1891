// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"pyembed/internal/config"
	"pyembed/internal/issue"
	"pyembed/internal/tui"
	"pyembed/pkg/embedder"

	"github.com/spf13/cobra"
)

var (
	pickOutput   string
	pickAllFiles bool

	// pickCmd runs the embed workflow with interactive package selection.
	pickCmd = &cobra.Command{
		Use:   "pick <script>",
		Short: "Choose packages to embed interactively",
		Long: `Scan a script for embeddable imports and choose which to bundle from an
interactive list. Each selected package is then asked whether an installed
copy should win over the embedded one at runtime.`,
		Args: cobra.ExactArgs(1),
		RunE: runPick,
	}
)

func init() {
	pickCmd.Flags().StringVarP(&pickOutput, "output", "o", "",
		"output path (default: <script>.<suffix>.py next to the input)")
	pickCmd.Flags().BoolVar(&pickAllFiles, "all-files", false,
		"carry data files too, not just .py sources")
}

func runPick(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]
	cfg := config.Get()

	if !fileExistsCheck(scriptPath) {
		renderIssue(issue.ScriptNotFoundId)
		return &ExitError{Code: 1, Err: fmt.Errorf("script not found: %s", scriptPath)}
	}

	scanned, err := scanScript(cfg, scriptPath)
	if err != nil {
		renderIssue(issue.ScriptReadFailedId)
		return &ExitError{Code: 1, Err: issue.WrapWithContext(err, "scan imports", scriptPath)}
	}
	if len(scanned) == 0 {
		renderIssue(issue.NoEmbeddablePackagesId)
		return &ExitError{Code: 1, Err: errors.New("no embeddable packages")}
	}

	tuiCfg := tui.DefaultConfig()

	selected, err := tui.MultiSelect(tui.MultiSelectOptions{
		Title:       "Packages to embed",
		Description: fmt.Sprintf("Imports of %s that can be bundled", scriptPath),
		Options:     scanned,
		Preselected: scanned,
		Config:      tuiCfg,
	})
	if err != nil {
		if errors.Is(err, tui.ErrCancelled) {
			fmt.Fprintln(cmd.ErrOrStderr(), SubtitleStyle.Render("Cancelled."))
			return &ExitError{Code: 130, Err: err}
		}
		return &ExitError{Code: 1, Err: err}
	}
	if len(selected) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("Nothing selected; nothing to do."))
		return nil
	}

	requests := make([]embedder.Request, 0, len(selected))
	for _, pkg := range selected {
		preferInstalled, err := tui.Confirm(tui.ConfirmOptions{
			Title:       fmt.Sprintf("Prefer an installed copy of %s?", pkg),
			Description: "Yes: an installed copy wins at runtime. No: the embedded copy always wins.",
			Config:      tuiCfg,
		})
		if err != nil {
			if errors.Is(err, tui.ErrCancelled) {
				fmt.Fprintln(cmd.ErrOrStderr(), SubtitleStyle.Render("Cancelled."))
				return &ExitError{Code: 130, Err: err}
			}
			return &ExitError{Code: 1, Err: err}
		}

		requests = append(requests, embedder.Request{
			Package:         pkg,
			PreferInstalled: preferInstalled,
			TextFilesOnly:   !pickAllFiles,
		})
	}

	result, err := embedder.Embed(embedder.Options{
		InputPath:    scriptPath,
		OutputPath:   pickOutput,
		OutputSuffix: string(cfg.OutputSuffix),
		Requests:     requests,
		Resolver:     buildSearchPath(cfg),
	})
	if err != nil {
		renderIssue(issue.OutputWriteFailedId)
		return &ExitError{Code: 1, Err: issue.WrapWithContext(err, "embed packages", scriptPath)}
	}

	reportResult(cmd, result, len(requests))
	return nil
}
