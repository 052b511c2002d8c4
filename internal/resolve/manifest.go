// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"strings"

	"corekit/internal/registry"
	"corekit/pkg/corefile"
)

type (
	// Entry is one manifest line: a file path with its type tag and the core
	// that contributed it. Path is kept exactly as declared (relative to the
	// contributing corefile) so deduplication matches the declaration; Dir
	// holds the corefile's directory for runners that need real locations.
	Entry struct {
		Core          string `json:"core" yaml:"core" toml:"core"`
		Path          string `json:"path" yaml:"path" toml:"path"`
		Type          string `json:"type" yaml:"type" toml:"type"`
		IsIncludeFile bool   `json:"is_include_file,omitempty" yaml:"is_include_file,omitempty" toml:"is_include_file,omitempty"`
		Dir           string `json:"-" yaml:"-" toml:"-"`
	}

	// Manifest is the final ordered, deduplicated, type-filtered file list
	// for one resolution run, plus the root target's metadata a tool runner
	// needs. It is immutable once returned.
	Manifest struct {
		Core     string `json:"core" yaml:"core" toml:"core"`
		Target   string `json:"target" yaml:"target" toml:"target"`
		Tool     string `json:"tool,omitempty" yaml:"tool,omitempty" toml:"tool,omitempty"`
		Flow     string `json:"flow,omitempty" yaml:"flow,omitempty" toml:"flow,omitempty"`
		Toplevel string `json:"toplevel,omitempty" yaml:"toplevel,omitempty" toml:"toplevel,omitempty"`

		Defines     map[string]string `json:"defines,omitempty" yaml:"defines,omitempty" toml:"defines,omitempty"`
		Params      map[string]string `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
		ToolOptions map[string]string `json:"tool_options,omitempty" yaml:"tool_options,omitempty" toml:"tool_options,omitempty"`

		Entries []Entry `json:"files" yaml:"files" toml:"files"`
	}

	// Builder aggregates per-core file lists into a Manifest. acceptedTypes
	// holds type prefixes the active flow understands; an empty list accepts
	// everything.
	Builder struct {
		reg      *registry.Registry
		accepted []string
	}
)

// NewBuilder creates a Builder. acceptedTypes entries match by prefix, so
// "vhdlSource" also admits "vhdlSource-2008" (tool-recognized types form an
// open set).
func NewBuilder(reg *registry.Registry, acceptedTypes []string) *Builder {
	return &Builder{reg: reg, accepted: acceptedTypes}
}

// Build composes every (core, target) pair in resolver order, drops entries
// whose type the flow does not accept, and deduplicates by path with the
// first contribution winning. The root target's toplevel, defines, params
// and tool options are recorded from its materialized form. An empty result
// is valid and signals "nothing to build".
func (b *Builder) Build(order []Node, ctx corefile.Context) (*Manifest, error) {
	composer := &Composer{reg: b.reg, scope: scopeOf(order)}

	m := &Manifest{
		Core:   ctx.Core,
		Target: ctx.Target,
		Tool:   ctx.Tool,
		Flow:   ctx.Flow,
	}

	seen := make(map[string]bool)
	for _, n := range order {
		files, err := composer.Compose(n.Core, n.Target, ctx)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !b.accepts(f.Type) {
				continue
			}
			if seen[f.Path] {
				continue
			}
			seen[f.Path] = true
			m.Entries = append(m.Entries, Entry{
				Core:          n.Core,
				Path:          f.Path,
				Type:          f.Type,
				IsIncludeFile: f.IsIncludeFile,
				Dir:           f.Dir,
			})
		}
	}

	root, err := b.reg.Lookup(ctx.Core)
	if err != nil {
		return nil, err
	}
	rootTarget, err := materializeTarget(root, ctx.Target)
	if err != nil {
		return nil, err
	}
	m.Toplevel = rootTarget.Toplevel
	m.Defines = rootTarget.Defines
	m.Params = rootTarget.Params
	m.ToolOptions = rootTarget.ToolOptions

	return m, nil
}

// accepts reports whether the flow admits a file type. Matching is by
// prefix, mirroring how downstream tools group type families.
func (b *Builder) accepts(fileType string) bool {
	if len(b.accepted) == 0 {
		return true
	}
	for _, prefix := range b.accepted {
		if strings.HasPrefix(fileType, prefix) {
			return true
		}
	}
	return false
}

func scopeOf(order []Node) map[string]bool {
	scope := make(map[string]bool, len(order))
	for _, n := range order {
		scope[n.Core] = true
	}
	return scope
}

// EffectiveContext fills an unset Tool or Flow in ctx from the root
// target's declared defaults (after inheritance). Values already present
// in ctx keep priority, so callers get flag > target > config precedence
// by filling config defaults only after this call.
func EffectiveContext(reg *registry.Registry, ctx corefile.Context) (corefile.Context, error) {
	cf, err := reg.Lookup(ctx.Core)
	if err != nil {
		return ctx, err
	}
	target, err := materializeTarget(cf, ctx.Target)
	if err != nil {
		return ctx, err
	}
	if ctx.Flow == "" {
		ctx.Flow = target.Flow
	}
	if ctx.Tool == "" {
		ctx.Tool = target.Tool
	}
	return ctx, nil
}

// Run is the whole pipeline in one call: fill the context from the root
// target's declared defaults, resolve the dependency graph from
// (ctx.Core, ctx.Target), then build the manifest. This is what the CLI and
// the tool runners use. Guards see the effective tool and flow.
func Run(reg *registry.Registry, ctx corefile.Context, acceptedTypes []string) (*Manifest, error) {
	ctx, err := EffectiveContext(reg, ctx)
	if err != nil {
		return nil, err
	}
	order, err := NewResolver(reg).Resolve(Node{Core: ctx.Core, Target: ctx.Target}, ctx)
	if err != nil {
		return nil, err
	}
	return NewBuilder(reg, acceptedTypes).Build(order, ctx)
}
