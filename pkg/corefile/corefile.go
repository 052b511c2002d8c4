// SPDX-License-Identifier: MPL-2.0

package corefile

import (
	"path/filepath"
	"slices"
	"strings"
)

// Suffix is the file name suffix corekit recognizes for core descriptions
// (e.g. "fifo.core.cue").
const Suffix = ".core.cue"

// Corefile represents one parsed core description. It is created once at
// load time and never mutated afterwards; every resolution run reads the
// same frozen value.
type Corefile struct {
	// Name is the core identifier, unique within a registry.
	Name string `json:"name"`
	// Version is informational; the registry does not resolve version ranges.
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	// Filesets maps fileset name to its definition.
	Filesets map[string]*Fileset `json:"filesets,omitempty"`
	// Targets maps target name to its definition.
	Targets map[string]*Target `json:"targets"`

	// FilePath stores where this corefile was loaded from (not in CUE).
	FilePath string `json:"-"`
}

// DisplayID returns "name@version", or just the name when no version is set.
func (c *Corefile) DisplayID() string {
	if c.Version == "" {
		return c.Name
	}
	return c.Name + "@" + c.Version
}

// Target returns the named target, or nil if the core does not define it.
func (c *Corefile) Target(name string) *Target {
	return c.Targets[name]
}

// Fileset returns the named fileset, or nil if the core does not define it.
func (c *Corefile) Fileset(name string) *Fileset {
	return c.Filesets[name]
}

// TargetNames returns the target names in sorted order for stable listings.
func (c *Corefile) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dir returns the directory containing the corefile. File paths inside
// filesets are relative to it.
func (c *Corefile) Dir() string {
	return filepath.Dir(c.FilePath)
}

// SplitQualifiedRef splits a fileset reference of the form "core:fileset".
// For unqualified references it returns an empty core name.
func SplitQualifiedRef(name string) (core, fileset string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
