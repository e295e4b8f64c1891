// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"pyembed/internal/config"
	"pyembed/internal/issue"
	"pyembed/pkg/embedder"

	"github.com/spf13/cobra"
)

var (
	embedPackages        []string
	embedPreferInstalled []bool
	embedAllFiles        []bool
	embedOutput          string

	// embedCmd rewrites a script with its packages bundled inside.
	embedCmd = &cobra.Command{
		Use:   "embed <script>",
		Short: "Rewrite a script with its packages bundled inside",
		Long: `Rewrite a Python script so the requested packages travel inside it as
compressed blobs, unpacked into a scratch directory when the result runs.

Without -p, every embeddable import found by 'pyembed scan' is bundled.
Packages that cannot be located are skipped with a warning; the output is
always a runnable script.

The per-package flags --prefer-installed and --all-files broadcast: give
one value to apply it to every package, or repeat the flag once per
package in -p order.`,
		Example: `  pyembed embed tool.py
  pyembed embed tool.py -p mylib -p helpers
  pyembed embed tool.py -p mylib --all-files -o dist/tool.py
  pyembed embed tool.py -p a -p b --prefer-installed=true,false`,
		Args: cobra.ExactArgs(1),
		RunE: runEmbed,
	}
)

func init() {
	embedCmd.Flags().StringArrayVarP(&embedPackages, "package", "p", nil,
		"package to embed (repeatable; default: every embeddable import)")
	embedCmd.Flags().BoolSliceVar(&embedPreferInstalled, "prefer-installed", nil,
		"use an installed copy when present at runtime (broadcasts)")
	embedCmd.Flags().BoolSliceVar(&embedAllFiles, "all-files", nil,
		"carry data files too, not just .py sources (broadcasts)")
	embedCmd.Flags().StringVarP(&embedOutput, "output", "o", "",
		"output path (default: <script>.<suffix>.py next to the input)")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]
	cfg := config.Get()

	if !fileExistsCheck(scriptPath) {
		renderIssue(issue.ScriptNotFoundId)
		return &ExitError{Code: 1, Err: fmt.Errorf("script not found: %s", scriptPath)}
	}

	packages := embedPackages
	if len(packages) == 0 {
		scanned, err := scanScript(cfg, scriptPath)
		if err != nil {
			renderIssue(issue.ScriptReadFailedId)
			return &ExitError{Code: 1, Err: issue.WrapWithContext(err, "scan imports", scriptPath)}
		}
		packages = scanned
	}
	if len(packages) == 0 {
		renderIssue(issue.NoEmbeddablePackagesId)
		return &ExitError{Code: 1, Err: errors.New("no embeddable packages")}
	}

	requests, err := buildRequests(packages, embedPreferInstalled, embedAllFiles)
	if err != nil {
		if errors.Is(err, embedder.ErrFlagLength) {
			renderIssue(issue.FlagCountMismatchId)
		}
		return &ExitError{Code: 1, Err: err}
	}

	result, err := embedder.Embed(embedder.Options{
		InputPath:    scriptPath,
		OutputPath:   embedOutput,
		OutputSuffix: string(cfg.OutputSuffix),
		Requests:     requests,
		Resolver:     buildSearchPath(cfg),
	})
	if err != nil {
		if errors.Is(err, embedder.ErrDuplicatePackage) {
			fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+err.Error())
		} else {
			renderIssue(issue.OutputWriteFailedId)
		}
		return &ExitError{Code: 1, Err: issue.WrapWithContext(err, "embed packages", scriptPath)}
	}

	reportResult(cmd, result, len(packages))
	return nil
}

// buildRequests pairs the package list with its broadcast per-package flags.
func buildRequests(packages []string, preferInstalled, allFiles []bool) ([]embedder.Request, error) {
	prefer, err := embedder.BroadcastBools("prefer-installed", len(packages), preferInstalled, false)
	if err != nil {
		return nil, err
	}
	all, err := embedder.BroadcastBools("all-files", len(packages), allFiles, false)
	if err != nil {
		return nil, err
	}

	requests := make([]embedder.Request, len(packages))
	for i, pkg := range packages {
		requests[i] = embedder.Request{
			Package:         pkg,
			PreferInstalled: prefer[i],
			TextFilesOnly:   !all[i],
		}
	}
	return requests, nil
}

// reportResult prints the outcome of an embedding run.
func reportResult(cmd *cobra.Command, result *embedder.Result, requested int) {
	out := cmd.OutOrStdout()

	if len(result.Packages) == 0 {
		fmt.Fprintln(out, WarningStyle.Render("No packages could be embedded; output is an unchanged copy."))
	} else {
		fmt.Fprintf(out, "%s %s\n",
			SuccessStyle.Render("Embedded"),
			CmdStyle.Render(strings.Join(result.Packages, ", ")))
		if skipped := requested - len(result.Packages); skipped > 0 {
			fmt.Fprintln(out, WarningStyle.Render(fmt.Sprintf("Skipped %d package(s) that could not be located.", skipped)))
		}
	}
	fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("Output:"), result.OutputPath)
}
