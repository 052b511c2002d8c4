// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"slices"

	"corekit/internal/registry"
	"corekit/pkg/corefile"
)

type (
	// FileEntry is one composed file with its effective type tag. Dir is the
	// directory of the corefile that owns the file (which differs from the
	// composing core for qualified references).
	FileEntry struct {
		Path          string
		Type          string
		IsIncludeFile bool
		Dir           string
	}

	// Composer flattens a core's target into an ordered, typed file list.
	// A non-nil scope restricts qualified fileset references to the cores
	// that were actually resolved as dependencies.
	Composer struct {
		reg   *registry.Registry
		scope map[string]bool
	}
)

// NewComposer creates a Composer without a dependency scope; qualified
// references may reach any registered core. The manifest builder installs a
// scope covering exactly the resolved dependency set.
func NewComposer(reg *registry.Registry) *Composer {
	return &Composer{reg: reg}
}

// Compose selects the named target of the named core, materializes its
// inheritance chain, evaluates each reference's guard against ctx, and expands
// the included filesets (including nested bundles) into a flat ordered file
// list. Files keep declaration order; no deduplication happens here.
func (c *Composer) Compose(coreName, targetName string, ctx corefile.Context) ([]FileEntry, error) {
	cf, err := c.reg.Lookup(coreName)
	if err != nil {
		return nil, err
	}

	target, err := materializeTarget(cf, targetName)
	if err != nil {
		return nil, err
	}

	var out []FileEntry
	for _, ref := range target.Filesets {
		if !ref.Cond.Eval(ctx) {
			continue
		}
		if err := c.expandRef(cf, ref.Name, ctx, nil, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// expandRef appends the files of one fileset reference. Nested references
// expand depth-first ahead of the fileset's own files, each behind its own
// guard. stack tracks the expansion chain for cycle detection.
func (c *Composer) expandRef(cf *corefile.Corefile, refName string, ctx corefile.Context, stack []string, out *[]FileEntry) error {
	owner := cf
	qualifier, name := corefile.SplitQualifiedRef(refName)
	if qualifier != "" && qualifier != cf.Name {
		if c.scope != nil && !c.scope[qualifier] {
			return &UnknownFilesetError{
				Core:    cf.Name,
				Fileset: refName,
				Reason:  "core " + qualifier + " is not among the resolved dependencies",
			}
		}
		other, err := c.reg.Lookup(qualifier)
		if err != nil {
			return &UnknownFilesetError{Core: cf.Name, Fileset: refName, Reason: err.Error()}
		}
		owner = other
	}

	fs := owner.Fileset(name)
	if fs == nil {
		return &UnknownFilesetError{Core: owner.Name, Fileset: name}
	}

	key := owner.Name + ":" + name
	if slices.Contains(stack, key) {
		return &FilesetCycleError{Core: owner.Name, Path: append(slices.Clone(stack), key)}
	}
	stack = append(stack, key)

	for _, nested := range fs.Filesets {
		if !nested.Cond.Eval(ctx) {
			continue
		}
		if err := c.expandRef(owner, nested.Name, ctx, stack, out); err != nil {
			return err
		}
	}

	for _, f := range fs.Files {
		*out = append(*out, FileEntry{
			Path:          f.Path,
			Type:          f.Type(fs.FileType),
			IsIncludeFile: f.IsIncludeFile,
			Dir:           owner.Dir(),
		})
	}
	return nil
}

// materializeTarget resolves a target's inheritance chain into a standalone
// target value: the base's reference lists first, then the derived target's
// appended; scalar fields fall back to the base where the derived target
// leaves them unset; option maps merge with the derived entries winning.
//
// Fails with UnknownTargetError or InheritanceCycleError. The input corefile
// is never mutated.
func materializeTarget(cf *corefile.Corefile, name string) (*corefile.Target, error) {
	return materializeChain(cf, name, nil)
}

func materializeChain(cf *corefile.Corefile, name string, chain []string) (*corefile.Target, error) {
	if slices.Contains(chain, name) {
		return nil, &InheritanceCycleError{Core: cf.Name, Path: append(slices.Clone(chain), name)}
	}

	target := cf.Target(name)
	if target == nil {
		return nil, &UnknownTargetError{Core: cf.Name, Target: name}
	}
	if target.Extends == "" {
		return cloneTarget(target), nil
	}

	base, err := materializeChain(cf, target.Extends, append(chain, name))
	if err != nil {
		return nil, err
	}

	merged := base
	merged.Extends = ""
	merged.Filesets = append(merged.Filesets, target.Filesets...)
	merged.DependsOn = append(merged.DependsOn, target.DependsOn...)
	if target.Toplevel != "" {
		merged.Toplevel = target.Toplevel
	}
	if target.Flow != "" {
		merged.Flow = target.Flow
	}
	if target.Tool != "" {
		merged.Tool = target.Tool
	}
	merged.Defines = mergeOptions(merged.Defines, target.Defines)
	merged.Params = mergeOptions(merged.Params, target.Params)
	merged.ToolOptions = mergeOptions(merged.ToolOptions, target.ToolOptions)
	return merged, nil
}

// cloneTarget copies a target deeply enough that merging never writes into
// registry-owned slices or maps.
func cloneTarget(t *corefile.Target) *corefile.Target {
	clone := *t
	clone.Filesets = slices.Clone(t.Filesets)
	clone.DependsOn = slices.Clone(t.DependsOn)
	clone.Defines = mergeOptions(nil, t.Defines)
	clone.Params = mergeOptions(nil, t.Params)
	clone.ToolOptions = mergeOptions(nil, t.ToolOptions)
	return &clone
}

func mergeOptions(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
