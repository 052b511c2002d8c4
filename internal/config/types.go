// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Flow describes one consumption category: which file types the flow
	// accepts (by prefix) and which tool runs it by default.
	Flow struct {
		// AcceptedTypes lists file type prefixes the flow admits. Empty means
		// every type is accepted.
		AcceptedTypes []string `mapstructure:"accepted_types" json:"accepted_types,omitempty"`
		// Tool is the flow's default tool; the CLI --tool flag wins over it.
		Tool string `mapstructure:"tool" json:"tool,omitempty"`
	}

	// Config is the effective workspace configuration.
	Config struct {
		// SearchPaths are directories scanned for *.core.cue files, in
		// addition to the current directory.
		SearchPaths []string `mapstructure:"search_paths" json:"search_paths,omitempty"`
		// BuildRoot is where tool runners place their outputs.
		BuildRoot string `mapstructure:"build_root" json:"build_root"`
		// DefaultTool is used when neither the CLI nor the target picks one.
		DefaultTool string `mapstructure:"default_tool" json:"default_tool"`
		// DefaultFlow is used when neither the CLI nor the target picks one.
		DefaultFlow string `mapstructure:"default_flow" json:"default_flow"`
		// Flows maps flow names to their definitions. Entries here extend or
		// override the built-in generic/lint/export flows.
		Flows map[string]Flow `mapstructure:"flows" json:"flows,omitempty"`
		// Verbose enables verbose output without passing --verbose.
		Verbose bool `mapstructure:"verbose" json:"verbose"`
	}
)

// rtlTypes are the source type families every HDL flow understands.
// Prefix matching admits dialect variants such as vhdlSource-2008.
var rtlTypes = []string{
	"systemVerilogSource",
	"verilogSource",
	"vhdlSource",
}

// DefaultConfig returns the built-in defaults used when no config file
// exists.
func DefaultConfig() *Config {
	return &Config{
		BuildRoot:   ".corekit",
		DefaultTool: "verilator",
		DefaultFlow: "generic",
		Flows: map[string]Flow{
			// generic: flat file-list export; waiver files ride along so the
			// list is usable with verilator directly.
			"generic": {
				AcceptedTypes: append(append([]string{}, rtlTypes...), "vlt", "cppSource"),
				Tool:          "flist",
			},
			// lint: same inputs, but the tool is an actual linter.
			"lint": {
				AcceptedTypes: append(append([]string{}, rtlTypes...), "vlt"),
				Tool:          "verilator",
			},
			// export: structured manifest dump, nothing filtered.
			"export": {},
		},
	}
}

// FlowByName returns the flow definition, falling back to an accept-all flow
// for names the config does not mention. A resolution run never fails on an
// unknown flow name; it just stops filtering.
func (c *Config) FlowByName(name string) Flow {
	if f, ok := c.Flows[name]; ok {
		return f
	}
	return Flow{}
}

// ToolFor picks the tool for a flow: the explicit choice if non-empty, then
// the flow's default, then the config-wide default.
func (c *Config) ToolFor(flowName, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if f, ok := c.Flows[flowName]; ok && f.Tool != "" {
		return f.Tool
	}
	return c.DefaultTool
}
