// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"pyembed/internal/config"
	"pyembed/internal/issue"
	"pyembed/pkg/pypath"
	"pyembed/pkg/pyscan"
)

// buildSearchPath derives the package search path from PYTHONPATH plus the
// extra site directories from the configuration.
func buildSearchPath(cfg *config.Config) pypath.SearchPath {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	sp := pypath.FromEnv(wd)
	if len(cfg.SiteDirs) == 0 {
		return sp
	}

	dirs := make([]string, 0, len(cfg.SiteDirs))
	for _, d := range cfg.SiteDirs {
		dirs = append(dirs, string(d))
	}
	return sp.WithSites(dirs...)
}

// extraExcludes converts the configured exclusion list for the scanner.
func extraExcludes(cfg *config.Config) []string {
	out := make([]string, 0, len(cfg.ExcludePackages))
	for _, name := range cfg.ExcludePackages {
		out = append(out, string(name))
	}
	return out
}

// scanScript lists the embeddable imports of a script: scanned from the
// source, minus exclusions, filtered to locally resolvable packages.
func scanScript(cfg *config.Config, scriptPath string) ([]string, error) {
	return pyscan.Scan(scriptPath, buildSearchPath(cfg), pyscan.Options{
		Exclude: extraExcludes(cfg),
	})
}

// renderIssue prints a rendered issue card to stderr. Rendering failures fall
// back to the raw markdown so the user always sees something.
func renderIssue(id issue.Id) {
	i := issue.Get(id)
	if i == nil {
		return
	}

	rendered, err := i.Render(glamourStyle(config.Get().UI.ColorScheme))
	if err != nil {
		fmt.Fprintln(os.Stderr, string(i.MarkdownMsg()))
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}

// glamourStyle maps the configured color scheme to a glamour style name.
func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
