// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a well-known failure class.
type Id int

const (
	CorefileNotFoundId Id = iota + 1
	CorefileParseErrorId
	CoreNotFoundId
	TargetNotFoundId
	DependencyCycleId
	ConfigLoadFailedId
	ToolNotFoundId
)

// Issue is one catalog entry: a markdown help page for a failure class.
type Issue struct {
	id    Id
	mdMsg string
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() string {
	return i.mdMsg
}

// Render returns the help page rendered for the terminal.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.mdMsg, stylePath)
}

var (
	render = glamour.Render

	corefileNotFoundIssue = &Issue{
		id: CorefileNotFoundId,
		mdMsg: `
# No corefiles found!

We searched the configured paths but found no core description files.

## Search locations (in order of precedence):
1. Current directory and its subdirectories
2. Paths listed under 'search_paths' in your config file

## Things you can try:
- Create a core description next to your sources, e.g. ` + "`fifo.core.cue`" + `:
~~~cue
name: "fifo"
filesets: {
	rtl: {
		file_type: "systemVerilogSource"
		files: [{path: "rtl/fifo.sv"}]
	}
}
targets: {
	default: {
		filesets: [{name: "rtl"}]
		toplevel: "fifo"
	}
}
~~~
- Or point corekit at your library checkout:
~~~cue
// config.cue
search_paths: ["/path/to/ip-library"]
~~~`,
	}

	corefileParseErrorIssue = &Issue{
		id: CorefileParseErrorId,
		mdMsg: `
# Failed to parse a corefile!

A core description contains syntax errors or invalid fields.

## Common issues:
- Invalid CUE syntax (missing quotes, braces)
- A target referencing a fileset that is not defined
- A file entry without a path

## Things you can try:
- Check the error message above for the offending field
- Validate a single file in isolation:
~~~
$ corekit validate path/to/broken.core.cue
~~~`,
	}

	coreNotFoundIssue = &Issue{
		id: CoreNotFoundId,
		mdMsg: `
# Core not found!

The core you named is not in the registry.

## Things you can try:
- List all discovered cores:
~~~
$ corekit list
~~~
- Check for typos in the core name
- Verify the core's directory is covered by 'search_paths'`,
	}

	targetNotFoundIssue = &Issue{
		id: TargetNotFoundId,
		mdMsg: `
# Target not found!

The selected core does not define the requested target.

## Things you can try:
- List the core's targets:
~~~
$ corekit list
~~~
- Most cores define a ` + "`default`" + ` target; try omitting --target`,
	}

	dependencyCycleIssue = &Issue{
		id: DependencyCycleId,
		mdMsg: `
# Dependency cycle detected!

The dependency graph reachable from your core loops back on itself, so no
build order exists. The error message above names the cycle path.

## Example of a cycle:
~~~cue
// a.core.cue
targets: default: depends_on: [{core: "b"}]
// b.core.cue
targets: default: depends_on: [{core: "a"}]  // cycle: a -> b -> a
~~~

## Things you can try:
- Follow the printed path and break one of the edges
- Move shared files into a third core both sides depend on`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config.cue could not be read or validated.

## Things you can try:
- Check the error message above for the offending field
- Show the effective configuration:
~~~
$ corekit config show
~~~
- Delete or rename the config file to fall back to defaults`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Tool not found!

The selected flow needs a downstream tool that corekit does not know.

## Built-in tools:
- **flist**: writes a flat ` + "`.f`" + ` file list
- **verilator**, **xcelium**: lint invocations

## Things you can try:
- Pick a tool with ` + "`--tool`" + `
- Check the 'flows' section of your config for a tool override`,
	}

	issues = map[Id]*Issue{
		corefileNotFoundIssue.Id():   corefileNotFoundIssue,
		corefileParseErrorIssue.Id(): corefileParseErrorIssue,
		coreNotFoundIssue.Id():       coreNotFoundIssue,
		targetNotFoundIssue.Id():     targetNotFoundIssue,
		dependencyCycleIssue.Id():    dependencyCycleIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		toolNotFoundIssue.Id():       toolNotFoundIssue,
	}
)

// Values returns every cataloged issue.
func Values() []*Issue {
	return maps.Values(issues)
}

// Get returns the issue for an id, or nil if the id is not cataloged.
func Get(id Id) *Issue {
	return issues[id]
}

// Ids returns all cataloged ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	return ids
}
