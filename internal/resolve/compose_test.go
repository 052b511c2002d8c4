// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"testing"

	"corekit/pkg/corefile"
)

func paths(entries []FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func filesetOf(fileType string, pathList ...string) *corefile.Fileset {
	fs := &corefile.Fileset{FileType: fileType}
	for _, p := range pathList {
		fs.Files = append(fs.Files, corefile.File{Path: p})
	}
	return fs
}

func TestCompose_GuardedFilesets(t *testing.T) {
	t.Parallel()
	cf := &corefile.Corefile{
		Name: "fifo",
		Filesets: map[string]*corefile.Fileset{
			"rtl":     filesetOf("systemVerilogSource", "rtl/fifo.sv"),
			"waivers": filesetOf("vlt", "lint/fifo.vlt"),
		},
		Targets: map[string]*corefile.Target{
			"default": {Filesets: []corefile.FilesetRef{
				{Name: "rtl"},
				{Name: "waivers", Cond: &corefile.Condition{Tool: "verilator"}},
			}},
		},
	}
	c := NewComposer(buildRegistry(t, cf))

	got, err := c.Compose("fifo", "default", corefile.Context{Tool: "generic"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Path != "rtl/fifo.sv" {
		t.Errorf("generic tool should only see rtl, got %v", paths(got))
	}

	got, err = c.Compose("fifo", "default", corefile.Context{Tool: "verilator"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1].Path != "lint/fifo.vlt" || got[1].Type != "vlt" {
		t.Errorf("verilator should see waivers after rtl, got %+v", got)
	}
}

func TestCompose_TargetInheritanceAppends(t *testing.T) {
	t.Parallel()
	cf := &corefile.Corefile{
		Name: "fifo",
		Filesets: map[string]*corefile.Fileset{
			"rtl": filesetOf("systemVerilogSource", "rtl/a.sv", "rtl/b.sv"),
			"tb":  filesetOf("systemVerilogSource", "tb/tb.sv"),
		},
		Targets: map[string]*corefile.Target{
			"default": {
				Filesets: []corefile.FilesetRef{{Name: "rtl"}},
				Toplevel: "fifo",
				Defines:  map[string]string{"WIDTH": "8"},
			},
			"sim": {
				Extends:  "default",
				Filesets: []corefile.FilesetRef{{Name: "tb"}},
				Toplevel: "fifo_tb",
				Defines:  map[string]string{"SIM": "1"},
			},
		},
	}
	reg := buildRegistry(t, cf)

	got, err := NewComposer(reg).Compose("fifo", "sim", corefile.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"rtl/a.sv", "rtl/b.sv", "tb/tb.sv"}
	for i, p := range want {
		if got[i].Path != p {
			t.Fatalf("base references must come first: got %v, want %v", paths(got), want)
		}
	}

	target, err := materializeTarget(cf, "sim")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Toplevel != "fifo_tb" {
		t.Errorf("derived toplevel should win, got %q", target.Toplevel)
	}
	if target.Defines["WIDTH"] != "8" || target.Defines["SIM"] != "1" {
		t.Errorf("defines should merge, got %v", target.Defines)
	}
	// Materialization must not leak into the registry-owned target.
	if cf.Targets["default"].Toplevel != "fifo" || len(cf.Targets["default"].Filesets) != 1 {
		t.Error("materialization mutated the base target")
	}
}

func TestCompose_InheritanceCycle(t *testing.T) {
	t.Parallel()
	cf := &corefile.Corefile{
		Name: "x",
		Targets: map[string]*corefile.Target{
			"a": {Extends: "b"},
			"b": {Extends: "a"},
		},
	}
	reg := buildRegistry(t, cf)

	_, err := NewComposer(reg).Compose("x", "a", corefile.Context{})
	var cycle *InheritanceCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected InheritanceCycleError, got %v", err)
	}
	if cycle.Core != "x" || len(cycle.Path) < 3 {
		t.Errorf("cycle should name the chain, got %+v", cycle)
	}
}

func TestCompose_NestedFilesets(t *testing.T) {
	t.Parallel()
	cf := &corefile.Corefile{
		Name: "fifo",
		Filesets: map[string]*corefile.Fileset{
			"pkg": filesetOf("systemVerilogSource", "rtl/pkg.sv"),
			"rtl": filesetOf("systemVerilogSource", "rtl/fifo.sv"),
			"all": {
				Filesets: []corefile.FilesetRef{
					{Name: "pkg"},
					{Name: "rtl", Cond: &corefile.Condition{Flow: "lint"}},
				},
				Files: []corefile.File{{Path: "extra/top.sv", FileType: "systemVerilogSource"}},
			},
		},
		Targets: map[string]*corefile.Target{
			"default": {Filesets: []corefile.FilesetRef{{Name: "all"}}},
		},
	}
	c := NewComposer(buildRegistry(t, cf))

	got, err := c.Compose("fifo", "default", corefile.Context{Flow: "lint"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"rtl/pkg.sv", "rtl/fifo.sv", "extra/top.sv"}
	for i, p := range want {
		if got[i].Path != p {
			t.Fatalf("nested expansion order wrong: got %v, want %v", paths(got), want)
		}
	}

	got, err = c.Compose("fifo", "default", corefile.Context{Flow: "generic"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("guarded nested fileset should be skipped, got %v", paths(got))
	}
}

func TestCompose_FilesetCycle(t *testing.T) {
	t.Parallel()
	cf := &corefile.Corefile{
		Name: "x",
		Filesets: map[string]*corefile.Fileset{
			"a": {Filesets: []corefile.FilesetRef{{Name: "b"}}},
			"b": {Filesets: []corefile.FilesetRef{{Name: "a"}}},
		},
		Targets: map[string]*corefile.Target{
			"default": {Filesets: []corefile.FilesetRef{{Name: "a"}}},
		},
	}

	_, err := NewComposer(buildRegistry(t, cf)).Compose("x", "default", corefile.Context{})
	var cycle *FilesetCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected FilesetCycleError, got %v", err)
	}
}

func TestCompose_UnknownFileset(t *testing.T) {
	t.Parallel()
	cf := &corefile.Corefile{
		Name: "x",
		Targets: map[string]*corefile.Target{
			"default": {Filesets: []corefile.FilesetRef{{Name: "missing"}}},
		},
	}

	_, err := NewComposer(buildRegistry(t, cf)).Compose("x", "default", corefile.Context{})
	var unknown *UnknownFilesetError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownFilesetError, got %v", err)
	}
	if unknown.Core != "x" || unknown.Fileset != "missing" {
		t.Errorf("error = %+v", unknown)
	}
}

func TestCompose_QualifiedReference(t *testing.T) {
	t.Parallel()
	prim := &corefile.Corefile{
		Name: "prim",
		Filesets: map[string]*corefile.Fileset{
			"rtl": filesetOf("verilogSource", "prim/cells.v"),
		},
		Targets: map[string]*corefile.Target{"default": {}},
	}
	top := &corefile.Corefile{
		Name: "top",
		Filesets: map[string]*corefile.Fileset{
			"rtl": filesetOf("systemVerilogSource", "rtl/top.sv"),
		},
		Targets: map[string]*corefile.Target{
			"default": {
				DependsOn: []corefile.DependencyRef{{Core: "prim"}},
				Filesets: []corefile.FilesetRef{
					{Name: "prim:rtl"},
					{Name: "rtl"},
				},
			},
		},
	}
	reg := buildRegistry(t, prim, top)

	got, err := NewComposer(reg).Compose("top", "default", corefile.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Path != "prim/cells.v" || got[0].Type != "verilogSource" {
		t.Errorf("qualified ref should pull the dependency fileset first, got %+v", got)
	}
}

func TestCompose_QualifiedReferenceOutsideScope(t *testing.T) {
	t.Parallel()
	other := &corefile.Corefile{
		Name: "other",
		Filesets: map[string]*corefile.Fileset{
			"rtl": filesetOf("verilogSource", "other/x.v"),
		},
		Targets: map[string]*corefile.Target{"default": {}},
	}
	top := &corefile.Corefile{
		Name: "top",
		Targets: map[string]*corefile.Target{
			"default": {Filesets: []corefile.FilesetRef{{Name: "other:rtl"}}},
		},
	}
	reg := buildRegistry(t, other, top)

	// Unscoped composer may reach any registered core.
	if _, err := NewComposer(reg).Compose("top", "default", corefile.Context{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The builder's scoped composer must reject it: "other" is not among the
	// resolved dependencies of top.
	scoped := &Composer{reg: reg, scope: map[string]bool{"top": true}}
	_, err := scoped.Compose("top", "default", corefile.Context{})
	var unknown *UnknownFilesetError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownFilesetError, got %v", err)
	}
}
