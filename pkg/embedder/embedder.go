// SPDX-License-Identifier: MPL-2.0

// Package embedder rewrites a standalone Python script so that its locally
// resolvable dependencies travel inside it.
//
// The generated script carries each requested package as a table of
// (relative path, compressed blob) pairs plus a small bootstrap routine that,
// on first execution, materializes the files into a scratch directory under
// the temp dir and splices that directory into sys.path before the original
// top-level code runs. Whether the embedded copy shadows an installed one is
// decided per package ("prefer installed" vs "always embedded") at the
// consumer's runtime, not at embedding time.
package embedder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"pyembed/pkg/pypath"
)

const (
	// shebangPrefix marks an interpreter directive on the first input line.
	shebangPrefix = "#!"

	// futurePrefix marks a future-behavior declaration line. These must
	// precede all other executable statements, so the orchestrator hoists
	// them above the original body once the bootstrap blocks are inserted.
	futurePrefix = "from __future__ import"

	// DefaultOutputSuffix is inserted before the final extension to derive
	// the default output path (script.py -> script.embedded.py).
	DefaultOutputSuffix = "embedded"
)

// ErrFlagLength is the sentinel error wrapped when a per-package flag list
// does not match the package list length.
var ErrFlagLength = errors.New("flag list length mismatch")

// ErrDuplicatePackage is the sentinel error wrapped when the same package is
// requested twice in one embedding run.
var ErrDuplicatePackage = errors.New("duplicate package request")

type (
	// Request asks for one package to be embedded.
	Request struct {
		// Package is the top-level module name. Unique per run.
		Package string
		// PreferInstalled marks the package to use an installed copy when
		// one is present at the consumer's runtime, falling back to the
		// embedded copy. When false the embedded copy always wins.
		PreferInstalled bool
		// TextFilesOnly embeds only .py files. Disable to carry data files,
		// fonts, and other package assets.
		TextFilesOnly bool
	}

	// Options configures one embedding run.
	Options struct {
		// InputPath is the script to rewrite.
		InputPath string
		// OutputPath is the destination; empty derives
		// "<stem>.<suffix><ext>" next to the input.
		OutputPath string
		// OutputSuffix overrides DefaultOutputSuffix for derived paths.
		OutputSuffix string
		// Requests are the packages to embed, emitted in order.
		Requests []Request
		// Resolver locates requested packages. Required.
		Resolver pypath.Resolver
	}

	// Result describes a finished embedding run.
	Result struct {
		// OutputPath is the file that was written.
		OutputPath string
		// Packages are the names actually embedded, in request order.
		// Requested packages that did not resolve or could not be
		// serialized are absent.
		Packages []string
	}

	// serializedPackage pairs a request with its encoded file table.
	serializedPackage struct {
		req     Request
		entries []FileEntry
	}
)

// BroadcastBools expands a scalar-or-list flag to the package count: no
// values means the fallback everywhere, one value is applied to all packages,
// n values are matched positionally. Any other length wraps ErrFlagLength.
func BroadcastBools(name string, count int, values []bool, fallback bool) ([]bool, error) {
	switch len(values) {
	case 0:
		values = []bool{fallback}
		fallthrough
	case 1:
		out := make([]bool, count)
		for i := range out {
			out[i] = values[0]
		}
		return out, nil
	case count:
		return values, nil
	default:
		return nil, fmt.Errorf("%w: %d %s value(s) for %d package(s)", ErrFlagLength, len(values), name, count)
	}
}

// DefaultOutputPath derives the output path from the input path by inserting
// the suffix before the final extension.
func DefaultOutputPath(inputPath, suffix string) string {
	if suffix == "" {
		suffix = DefaultOutputSuffix
	}
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return stem + "." + suffix + ext
}

// Embed rewrites the input script with the requested packages bundled inside
// and returns the packages actually embedded.
//
// Requested packages that cannot be resolved, or whose files cannot all be
// read, are dropped from the run (with a logged warning) rather than aborting
// it; the remainder is still embedded and the output is always a runnable
// script. All validation and all file reading happen before the output file
// is created, so a detectable failure never leaves a corrupt output behind.
func Embed(opts Options) (*Result, error) {
	if opts.InputPath == "" {
		return nil, errors.New("input path is required")
	}
	if opts.Resolver == nil {
		return nil, errors.New("resolver is required")
	}
	if err := validateRequests(opts.Requests); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input script: %w", err)
	}
	lines := strings.Split(string(data), "\n")

	// Interpreter directive stays on line 1 of the output, ahead of the
	// generated header.
	shebang := ""
	if len(lines) > 0 && strings.HasPrefix(lines[0], shebangPrefix) {
		shebang = lines[0]
		lines = lines[1:]
	}

	// Serialize everything up front; a package whose files cannot be read is
	// unembeddable as a whole (partial packages are not representable).
	var packages []serializedPackage
	for _, req := range opts.Requests {
		loc, found := opts.Resolver.Locate(req.Package)
		if !found {
			log.Debug("package not found on local search path, skipping", "package", req.Package)
			continue
		}
		entries, err := Serialize(loc, req.TextFilesOnly)
		if err != nil {
			log.Warn("package could not be serialized, skipping", "package", req.Package, "err", err)
			continue
		}
		packages = append(packages, serializedPackage{req: req, entries: entries})
	}

	futures, body := hoistFutureLines(lines)

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = DefaultOutputPath(opts.InputPath, opts.OutputSuffix)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := writeEmbedded(out, opts.InputPath, shebang, futures, body, packages); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	result := &Result{OutputPath: outputPath, Packages: make([]string, 0, len(packages))}
	for _, p := range packages {
		result.Packages = append(result.Packages, p.req.Package)
	}
	return result, nil
}

// validateRequests rejects empty names and duplicate package requests before
// any I/O happens.
func validateRequests(reqs []Request) error {
	seen := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		if req.Package == "" {
			return errors.New("package name cannot be empty")
		}
		if seen[req.Package] {
			return fmt.Errorf("%w: %s", ErrDuplicatePackage, req.Package)
		}
		seen[req.Package] = true
	}
	return nil
}

// hoistFutureLines splits future-behavior declarations out of the body,
// preserving their order. Each declaration is hoisted exactly once; the body
// keeps everything else, including blank lines, in original order.
func hoistFutureLines(lines []string) (futures, body []string) {
	body = make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, futurePrefix) {
			futures = append(futures, line)
			continue
		}
		body = append(body, line)
	}
	return futures, body
}

// writeEmbedded renders the output layout: shebang, generated-by header,
// bootstrap routine, package blocks, bootstrap deletion, hoisted future
// declarations, then the original body verbatim.
func writeEmbedded(w io.Writer, inputPath, shebang string, futures, body []string, packages []serializedPackage) error {
	if shebang != "" {
		if _, err := fmt.Fprintln(w, shebang); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(packages))
	for _, p := range packages {
		names = append(names, p.req.Package)
	}
	if _, err := fmt.Fprintf(w, "#  file generated by pyembed from\n#      source file: %s\n#      packages embedded: %s\n\n",
		inputPath, strings.Join(names, ", ")); err != nil {
		return err
	}

	if err := writeBootstrap(w); err != nil {
		return err
	}

	for _, p := range packages {
		if err := writePackageBlock(w, p.req.Package, p.req.PreferInstalled, p.entries); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "del %s\n", BootstrapName); err != nil {
		return err
	}

	for _, line := range futures {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	for _, line := range body {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
