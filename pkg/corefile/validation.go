// SPDX-License-Identifier: MPL-2.0

package corefile

import (
	"fmt"
)

// validate performs the structural checks that need no registry: local
// fileset references must name defined filesets, inheritance bases must
// exist, and a core must offer at least one target. Qualified references
// ("othercore:fileset") are checked at compose time, once the dependency
// graph is known.
func (c *Corefile) validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("core %q defines no targets", c.Name)
	}

	for name, fs := range c.Filesets {
		if fs == nil {
			return fmt.Errorf("fileset %q is empty", name)
		}
		for _, ref := range fs.Filesets {
			if err := c.checkLocalRef(ref.Name); err != nil {
				return fmt.Errorf("fileset %q: %w", name, err)
			}
		}
	}

	for name, t := range c.Targets {
		if t == nil {
			return fmt.Errorf("target %q is empty", name)
		}
		if t.Extends != "" {
			if _, ok := c.Targets[t.Extends]; !ok {
				return fmt.Errorf("target %q extends unknown target %q", name, t.Extends)
			}
			if t.Extends == name {
				return fmt.Errorf("target %q extends itself", name)
			}
		}
		for _, ref := range t.Filesets {
			if err := c.checkLocalRef(ref.Name); err != nil {
				return fmt.Errorf("target %q: %w", name, err)
			}
		}
		for _, dep := range t.DependsOn {
			if dep.Core == c.Name {
				return fmt.Errorf("target %q: core %q depends on itself", name, c.Name)
			}
		}
	}

	return nil
}

// checkLocalRef verifies that an unqualified fileset reference names a
// fileset of this core. Qualified references are deferred to resolution.
func (c *Corefile) checkLocalRef(name string) error {
	core, fileset := SplitQualifiedRef(name)
	if core != "" {
		return nil
	}
	if _, ok := c.Filesets[fileset]; !ok {
		return fmt.Errorf("reference to unknown fileset %q", fileset)
	}
	return nil
}
