// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"pyembed/internal/config"
	"pyembed/internal/issue"

	"github.com/spf13/cobra"
)

// scanCmd lists the packages a script imports that can be embedded.
var scanCmd = &cobra.Command{
	Use:   "scan <script>",
	Short: "List a script's embeddable imports",
	Long: `List the packages a Python script imports that can be embedded.

A package is embeddable when the script imports it, it is not on the
exclusion list, and it can be located on the module search path (the current
working directory, directories on PYTHONPATH whose last component is
site-packages, plus any configured site_dirs).

Output is one package name per line, sorted case-insensitively, suitable
for piping into 'pyembed embed -p'.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]
	if !fileExistsCheck(scriptPath) {
		renderIssue(issue.ScriptNotFoundId)
		return &ExitError{Code: 1, Err: fmt.Errorf("script not found: %s", scriptPath)}
	}

	names, err := scanScript(config.Get(), scriptPath)
	if err != nil {
		renderIssue(issue.ScriptReadFailedId)
		return &ExitError{Code: 1, Err: issue.WrapWithContext(err, "scan imports", scriptPath)}
	}

	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
