// SPDX-License-Identifier: MPL-2.0

package corefile

import "testing"

func TestCondition_NilAlwaysMatches(t *testing.T) {
	t.Parallel()
	var c *Condition
	if !c.Eval(Context{Tool: "verilator"}) {
		t.Error("nil condition should always match")
	}
}

func TestCondition_Atoms(t *testing.T) {
	t.Parallel()
	ctx := Context{Core: "fifo", Target: "lint", Tool: "verilator", Flow: "lint"}

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"empty matches", Condition{}, true},
		{"tool match", Condition{Tool: "verilator"}, true},
		{"tool mismatch", Condition{Tool: "xcelium"}, false},
		{"flow match", Condition{Flow: "lint"}, true},
		{"flow mismatch", Condition{Flow: "generic"}, false},
		{"target match", Condition{Target: "lint"}, true},
		{"target mismatch", Condition{Target: "default"}, false},
		{"tool and flow both match", Condition{Tool: "verilator", Flow: "lint"}, true},
		{"tool and flow combine with AND", Condition{Tool: "verilator", Flow: "generic"}, false},
		{"eq on known key", Condition{Eq: map[string]string{"core": "fifo"}}, true},
		{"eq mismatch", Condition{Eq: map[string]string{"core": "uart"}}, false},
		{"unknown context key is false, not an error", Condition{Eq: map[string]string{"simulator": "verilator"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cond.Eval(ctx); got != tt.want {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCondition_Combinators(t *testing.T) {
	t.Parallel()
	ctx := Context{Tool: "verilator", Flow: "lint"}

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{
			"all requires every child",
			Condition{All: []Condition{{Tool: "verilator"}, {Flow: "lint"}}},
			true,
		},
		{
			"all fails on one mismatch",
			Condition{All: []Condition{{Tool: "verilator"}, {Flow: "generic"}}},
			false,
		},
		{
			"any needs one match",
			Condition{Any: []Condition{{Tool: "xcelium"}, {Flow: "lint"}}},
			true,
		},
		{
			"any with no match",
			Condition{Any: []Condition{{Tool: "xcelium"}, {Flow: "generic"}}},
			false,
		},
		{
			"not inverts",
			Condition{Not: &Condition{Tool: "xcelium"}},
			true,
		},
		{
			"not of a match",
			Condition{Not: &Condition{Tool: "verilator"}},
			false,
		},
		{
			"atom and combinator AND together",
			Condition{Tool: "verilator", Not: &Condition{Flow: "lint"}},
			false,
		},
		{
			"nested any inside not",
			Condition{Not: &Condition{Any: []Condition{{Tool: "xcelium"}, {Tool: "questa"}}}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cond.Eval(ctx); got != tt.want {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContext_Value(t *testing.T) {
	t.Parallel()
	ctx := Context{Core: "fifo", Target: "default", Tool: "verilator", Flow: "lint"}

	for key, want := range map[string]string{
		"core": "fifo", "target": "default", "tool": "verilator", "flow": "lint",
	} {
		got, ok := ctx.Value(key)
		if !ok || got != want {
			t.Errorf("Value(%q) = (%q, %v), want (%q, true)", key, got, ok, want)
		}
	}

	if _, ok := ctx.Value("simulator"); ok {
		t.Error("unrecognized key should report ok=false")
	}
}
