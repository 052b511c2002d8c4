// SPDX-License-Identifier: MPL-2.0

package corefile

// DefaultTargetName is the target a dependency reference resolves to when it
// does not name one explicitly.
const DefaultTargetName = "default"

type (
	// DependencyRef is a guarded reference to another core. Target defaults
	// to DefaultTargetName when empty.
	DependencyRef struct {
		Core   string     `json:"core"`
		Target string     `json:"target,omitempty"`
		Cond   *Condition `json:"cond,omitempty"`
	}

	// Target is a named build configuration. A target may extend another
	// target of the same core with copy-then-override semantics: the derived
	// target starts from the base's fileset and dependency lists and appends
	// its own, and its scalar fields win where set.
	Target struct {
		// Extends names the base target within the same core.
		Extends string `json:"extends,omitempty"`
		// Filesets are guarded fileset references, in declaration order.
		Filesets []FilesetRef `json:"filesets,omitempty"`
		// DependsOn are guarded references to other cores, in declaration order.
		DependsOn []DependencyRef `json:"depends_on,omitempty"`
		// Toplevel is the designated top-level entry (module name) for this target.
		Toplevel string `json:"toplevel,omitempty"`
		// Defines are preprocessor defines handed to the downstream tool.
		Defines map[string]string `json:"defines,omitempty"`
		// Params are elaboration-time parameter overrides for the toplevel.
		Params map[string]string `json:"params,omitempty"`
		// Flow selects the default flow when the CLI does not.
		Flow string `json:"flow,omitempty"`
		// Tool selects the default tool when the CLI does not.
		Tool string `json:"tool,omitempty"`
		// ToolOptions is an opaque option bag passed through to the tool runner.
		ToolOptions map[string]string `json:"tool_options,omitempty"`
	}
)

// DependencyTarget returns the target name a dependency reference points at.
func (d DependencyRef) DependencyTarget() string {
	if d.Target != "" {
		return d.Target
	}
	return DefaultTargetName
}
