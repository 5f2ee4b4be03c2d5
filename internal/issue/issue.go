// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	SourceNotFoundId Id = iota + 1
	TooFewSourcesId
	UnsupportedShapeId
	InvalidFilterPatternId
	ConfigLoadFailedId
	ReportWriteFailedId
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

	sourceNotFoundIssue = &Issue{
		id: SourceNotFoundId,
		mdMsg: `
# Source file not found!

One or more of the configuration files you asked to compare does not exist
(or is a directory).

## Things you can try:
- Check the paths for typos
- Verify the files are readable:
~~~
$ ls -l <path>
~~~
- When comparing snapshots fetched from remote hosts, confirm the fetch
  actually produced files before running the comparison`,
	}

	tooFewSourcesIssue = &Issue{
		id: TooFewSourcesId,
		mdMsg: `
# Not enough sources to compare!

A comparison needs at least two **distinct** configuration files. Duplicate
paths are collapsed, so passing the same file twice counts as one source.

## Example:
~~~
$ config-compare node1/app.properties node2/app.properties
~~~`,
	}

	unsupportedShapeIssue = &Issue{
		id: UnsupportedShapeId,
		mdMsg: `
# Unsupported configuration shape!

One of the sources contains a list whose elements are themselves structured
records (e.g., a JSON array of objects). List elements are compared as an
unordered set of leaf values, so there is no meaningful way to align
record-shaped elements across sources.

## Things you can try:
- Restructure the list as a keyed mapping (one entry per record)
- Exclude the offending subtree from the files before comparing
- Compare the files pairwise with a positional diff tool instead:
~~~
$ diff a.json b.json
~~~`,
	}

	invalidFilterPatternIssue = &Issue{
		id: InvalidFilterPatternId,
		mdMsg: `
# Invalid filter pattern!

The --include or --exclude value is not a valid regular expression.

## Notes:
- Patterns use Go RE2 syntax (no backreferences, no lookahead)
- Patterns match anywhere in the row label; anchor with ^ and $ as needed
- Quote the pattern to protect it from the shell:
~~~
$ config-compare -e 'log4j\.' a.xml b.xml
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the config-compare configuration file.

## Configuration file locations:
- Linux: ~/.config/config-compare/config.cue
- macOS: ~/Library/Application Support/config-compare/config.cue
- Windows: %APPDATA%\config-compare\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ config-compare config init
~~~

- Validate the file against the schema:
~~~
$ config-compare config validate <path>
~~~

- Remove the config file to use defaults

## Example configuration:
~~~cue
short_value_length: 60

filters: {
	exclude: "ssl"
}

ui: {
	debug: false
}
~~~`,
	}

	reportWriteFailedIssue = &Issue{
		id: ReportWriteFailedId,
		mdMsg: `
# Failed to write the report!

The output file given with --output could not be created or written.

## Things you can try:
- Check that the parent directory exists and is writable
- Check free disk space
- Omit --output to write the report to standard output:
~~~
$ config-compare a.json b.json > report.tsv
~~~`,
	}

	issues = map[Id]*Issue{
		sourceNotFoundIssue.Id():       sourceNotFoundIssue,
		tooFewSourcesIssue.Id():        tooFewSourcesIssue,
		unsupportedShapeIssue.Id():     unsupportedShapeIssue,
		invalidFilterPatternIssue.Id(): invalidFilterPatternIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		reportWriteFailedIssue.Id():    reportWriteFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
