// SPDX-License-Identifier: MPL-2.0

// Package registry holds the frozen set of cores a resolution run operates
// over. The registry is populated once during the load phase (a single
// writer) and read-only afterwards, so any number of resolutions may share
// it concurrently without locking.
package registry

import (
	"fmt"
	"slices"

	"corekit/pkg/corefile"
)

type (
	// DuplicateError is returned when two cores claim the same name.
	DuplicateError struct {
		Name         string
		FirstSource  string
		SecondSource string
	}

	// UnknownCoreError is returned when a lookup names a core the registry
	// does not hold.
	UnknownCoreError struct {
		Name string
	}

	// Registry maps core names to their parsed corefiles. The zero value is
	// not usable; call New.
	Registry struct {
		cores  map[string]*corefile.Corefile
		frozen bool
	}
)

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf(
		"core name collision: %q defined in both:\n  - %s\n  - %s",
		e.Name, e.FirstSource, e.SecondSource)
}

// Error implements the error interface.
func (e *UnknownCoreError) Error() string {
	return fmt.Sprintf("unknown core %q", e.Name)
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{cores: make(map[string]*corefile.Corefile)}
}

// Register adds a core. It fails with DuplicateError if the name is already
// taken and panics if called after Freeze — registration is strictly a load
// phase concern.
func (r *Registry) Register(cf *corefile.Corefile) error {
	if r.frozen {
		panic("registry: Register called after Freeze")
	}
	if existing, ok := r.cores[cf.Name]; ok {
		return &DuplicateError{
			Name:         cf.Name,
			FirstSource:  existing.FilePath,
			SecondSource: cf.FilePath,
		}
	}
	r.cores[cf.Name] = cf
	return nil
}

// Freeze marks the end of the load phase. After Freeze the registry is safe
// for concurrent readers.
func (r *Registry) Freeze() *Registry {
	r.frozen = true
	return r
}

// Lookup returns the named core or UnknownCoreError.
func (r *Registry) Lookup(name string) (*corefile.Corefile, error) {
	cf, ok := r.cores[name]
	if !ok {
		return nil, &UnknownCoreError{Name: name}
	}
	return cf, nil
}

// Names returns all registered core names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cores))
	for name := range r.cores {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered cores.
func (r *Registry) Len() int {
	return len(r.cores)
}
