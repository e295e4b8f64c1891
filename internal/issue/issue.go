// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ScriptNotFoundId Id = iota + 1
	ScriptReadFailedId
	PackageNotFoundId
	NoEmbeddablePackagesId
	PackageSerializeFailedId
	FlagCountMismatchId
	OutputWriteFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	scriptNotFoundIssue = &Issue{
		id: ScriptNotFoundId,
		mdMsg: `
# Script not found!

The Python script you asked to process does not exist.

## Things you can try:
- Check the path for typos:
~~~
$ pyembed embed ./tool.py -p requests
~~~

- Run from the directory that contains the script:
~~~
$ cd /path/to/project
$ pyembed embed tool.py -p requests
~~~`,
	}

	scriptReadFailedIssue = &Issue{
		id: ScriptReadFailedId,
		mdMsg: `
# Failed to read script!

The script exists but could not be read.

## Common causes:
- Permission denied
- The path points to a directory, not a file

## Things you can try:
- Check file permissions:
~~~
$ ls -l tool.py
~~~

- Make sure the path names a regular file`,
	}

	packageNotFoundIssue = &Issue{
		id: PackageNotFoundId,
		mdMsg: `
# Package not found!

A requested package could not be located on the module search path.

## Where we look:
1. Directories on PYTHONPATH whose last component is site-packages
2. The current working directory, when it appears on PYTHONPATH

A directory qualifies when it contains ` + "`<package>/__init__.py`" + ` or
` + "`<package>.py`" + `.

## Things you can try:
- Install the package so it lands in site-packages:
~~~
$ pip install <package>
~~~

- Check your PYTHONPATH includes the package's site-packages directory:
~~~
$ python -c "import sys; print(sys.path)"
~~~

- Check the package name for typos`,
	}

	noEmbeddablePackagesIssue = &Issue{
		id: NoEmbeddablePackagesId,
		mdMsg: `
# Nothing to embed!

None of the requested packages could be resolved, so the output would be
an unchanged copy of the input.

## Common causes:
- All requested packages are on the exclusion list (numpy, PIL, scipy,
  pandas, cv2 by default)
- None of the packages are installed where we can find them

## Things you can try:
- List the packages the script actually imports:
~~~
$ pyembed scan tool.py
~~~

- Pass package names explicitly:
~~~
$ pyembed embed tool.py -p mylib -p helpers
~~~`,
	}

	packageSerializeFailedIssue = &Issue{
		id: PackageSerializeFailedId,
		mdMsg: `
# Failed to serialize package!

A package was located but one of its files could not be read.

## Common causes:
- Unreadable files inside the package directory
- Broken symlinks under the package tree

## Things you can try:
- Check permissions on the package directory:
~~~
$ ls -lR /path/to/site-packages/<package>
~~~

- Use --text-only to skip binary payloads:
~~~
$ pyembed embed tool.py -p mylib --text-only
~~~`,
	}

	flagCountMismatchIssue = &Issue{
		id: FlagCountMismatchId,
		mdMsg: `
# Flag count mismatch!

A per-package flag was repeated a number of times that does not line up
with the number of packages.

## The rule:
- Give a flag **once** to apply it to every package
- Or give it **once per package**, in the same order as -p

## Example:
~~~
$ pyembed embed tool.py -p alpha -p beta --prefer-installed
$ pyembed embed tool.py -p alpha -p beta --prefer-installed=true --prefer-installed=false
~~~`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write output!

The embedded script could not be written to disk.

## Common causes:
- The output directory does not exist
- Permission denied on the output path
- Disk full

## Things you can try:
- Pick an output path in a writable directory:
~~~
$ pyembed embed tool.py -p mylib -o /tmp/tool.embedded.py
~~~

- Check free space and permissions`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the pyembed configuration file.

## Configuration file locations:
- Linux: ~/.config/pyembed/config.cue
- macOS: ~/Library/Application Support/pyembed/config.cue
- Windows: %APPDATA%\pyembed\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ pyembed config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/pyembed/config.cue
~~~

## Example configuration:
~~~cue
site_dirs: [
    "/home/user/.venv/lib/python3.12/site-packages"
]
exclude_packages: ["numpy", "scipy"]
output_suffix: "embedded"

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	issues = map[Id]*Issue{
		scriptNotFoundIssue.Id():         scriptNotFoundIssue,
		scriptReadFailedIssue.Id():       scriptReadFailedIssue,
		packageNotFoundIssue.Id():        packageNotFoundIssue,
		noEmbeddablePackagesIssue.Id():   noEmbeddablePackagesIssue,
		packageSerializeFailedIssue.Id(): packageSerializeFailedIssue,
		flagCountMismatchIssue.Id():      flagCountMismatchIssue,
		outputWriteFailedIssue.Id():      outputWriteFailedIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
