// SPDX-License-Identifier: MPL-2.0

package corefile

import (
	"strings"
	"testing"
)

const fifoCorefile = `
name:        "fifo"
version:     "1.2.0"
description: "Synchronizing FIFO"

filesets: {
	rtl: {
		file_type: "systemVerilogSource"
		files: [
			{path: "rtl/fifo_pkg.sv"},
			{path: "rtl/fifo.sv"},
			{path: "rtl/fifo_if.svh", is_include_file: true},
		]
	}
	waivers: {
		file_type: "vlt"
		files: [{path: "lint/fifo.vlt"}]
	}
	tb: {
		file_type: "systemVerilogSource"
		filesets: [{name: "rtl"}]
		files: [{path: "tb/fifo_tb.sv"}, {path: "tb/helpers.cc", file_type: "cppSource"}]
	}
}

targets: {
	default: {
		filesets: [
			{name: "rtl"},
			{name: "waivers", cond: {tool: "verilator"}},
		]
		toplevel: "fifo"
	}
	lint: {
		extends: "default"
		depends_on: [{core: "prim"}]
		defines: {LINT: "1"}
		flow: "lint"
	}
}
`

func TestParseBytes_Valid(t *testing.T) {
	t.Parallel()
	cf, err := ParseBytes([]byte(fifoCorefile), "fifo.core.cue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cf.Name != "fifo" || cf.Version != "1.2.0" {
		t.Errorf("got %s, want fifo@1.2.0", cf.DisplayID())
	}
	if cf.FilePath != "fifo.core.cue" {
		t.Errorf("FilePath = %q", cf.FilePath)
	}

	rtl := cf.Fileset("rtl")
	if rtl == nil {
		t.Fatal("fileset rtl missing")
	}
	if len(rtl.Files) != 3 {
		t.Fatalf("rtl has %d files, want 3", len(rtl.Files))
	}
	if rtl.Files[0].Path != "rtl/fifo_pkg.sv" {
		t.Errorf("declaration order not preserved: %q first", rtl.Files[0].Path)
	}
	if !rtl.Files[2].IsIncludeFile {
		t.Error("fifo_if.svh should be an include file")
	}

	tb := cf.Fileset("tb")
	if got := tb.Files[1].Type(tb.FileType); got != "cppSource" {
		t.Errorf("per-file type override = %q, want cppSource", got)
	}
	if got := tb.Files[0].Type(tb.FileType); got != "systemVerilogSource" {
		t.Errorf("fileset default type = %q, want systemVerilogSource", got)
	}

	lint := cf.Target("lint")
	if lint == nil || lint.Extends != "default" {
		t.Fatalf("target lint should extend default, got %+v", lint)
	}
	if lint.DependsOn[0].DependencyTarget() != DefaultTargetName {
		t.Error("dependency without explicit target should default to \"default\"")
	}
}

func TestParseBytes_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			"missing name",
			`targets: {default: {}}`,
			"name",
		},
		{
			"no targets",
			`name: "empty"`,
			"targets",
		},
		{
			"bad core name",
			`name: "1badname", targets: {default: {}}`,
			"name",
		},
		{
			"target references unknown fileset",
			`name: "x", targets: {default: {filesets: [{name: "nope"}]}}`,
			`unknown fileset "nope"`,
		},
		{
			"fileset nests unknown fileset",
			`name: "x", filesets: {a: {filesets: [{name: "ghost"}]}}, targets: {default: {}}`,
			`unknown fileset "ghost"`,
		},
		{
			"extends unknown target",
			`name: "x", targets: {lint: {extends: "default"}}`,
			`extends unknown target "default"`,
		},
		{
			"self dependency",
			`name: "x", targets: {default: {depends_on: [{core: "x"}]}}`,
			"depends on itself",
		},
		{
			"empty file path",
			`name: "x", filesets: {a: {files: [{path: ""}]}}, targets: {default: {}}`,
			"path",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseBytes([]byte(tt.src), "test.core.cue")
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseBytes_QualifiedRefDeferred(t *testing.T) {
	t.Parallel()
	// References into dependency cores cannot be checked locally; parsing
	// must accept them and leave validation to the composer.
	src := `name: "top", targets: {default: {
		depends_on: [{core: "prim"}]
		filesets: [{name: "prim:rtl"}]
	}}`
	if _, err := ParseBytes([]byte(src), "top.core.cue"); err != nil {
		t.Fatalf("qualified reference should parse: %v", err)
	}
}

func TestSplitQualifiedRef(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, core, fileset string
	}{
		{"rtl", "", "rtl"},
		{"prim:rtl", "prim", "rtl"},
		{"prim:", "prim", ""},
	}
	for _, tt := range tests {
		core, fileset := SplitQualifiedRef(tt.in)
		if core != tt.core || fileset != tt.fileset {
			t.Errorf("SplitQualifiedRef(%q) = (%q, %q), want (%q, %q)", tt.in, core, fileset, tt.core, tt.fileset)
		}
	}
}

func TestTargetNames_Sorted(t *testing.T) {
	t.Parallel()
	cf, err := ParseBytes([]byte(fifoCorefile), "fifo.core.cue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := cf.TargetNames()
	if len(names) != 2 || names[0] != "default" || names[1] != "lint" {
		t.Errorf("TargetNames() = %v, want [default lint]", names)
	}
}
