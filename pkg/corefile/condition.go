// SPDX-License-Identifier: MPL-2.0

package corefile

type (
	// Context is the immutable snapshot a single resolution run evaluates
	// conditions against. It is constructed once per invocation (from the CLI
	// selection plus target defaults) and never mutated afterwards, so any
	// number of resolutions may share a registry concurrently.
	Context struct {
		// Core is the root core of the resolution.
		Core string
		// Target is the selected target name.
		Target string
		// Tool is the downstream program that will consume the manifest.
		Tool string
		// Flow is the consumption category (e.g. "lint", "generic", "export").
		Flow string
	}

	// Condition guards a fileset or dependency reference. The zero value (and
	// a nil pointer) always matches — an unguarded reference is always
	// included.
	//
	// The shorthand fields and every Eq entry must all hold for the condition
	// to match; multiple guards on one reference combine with AND. Use Any for
	// disjunction and Not for negation.
	Condition struct {
		// Tool matches when the context's tool equals this value.
		Tool string `json:"tool,omitempty"`
		// Flow matches when the context's flow equals this value.
		Flow string `json:"flow,omitempty"`
		// Target matches when the selected target name equals this value.
		Target string `json:"target,omitempty"`
		// Eq matches arbitrary context keys against literals. A key the
		// context does not recognize evaluates to false, never to an error,
		// so corefiles written for newer corekit versions degrade gracefully.
		Eq map[string]string `json:"eq,omitempty"`
		// All matches when every child condition matches.
		All []Condition `json:"all,omitempty"`
		// Any matches when at least one child condition matches.
		Any []Condition `json:"any,omitempty"`
		// Not matches when the child condition does not.
		Not *Condition `json:"not,omitempty"`
	}
)

// Value returns the context value for a condition key. The key vocabulary is
// closed on the context side: unrecognized keys report ok=false and the
// evaluator treats the predicate as unsatisfied.
func (c Context) Value(key string) (string, bool) {
	switch key {
	case "core":
		return c.Core, true
	case "target":
		return c.Target, true
	case "tool":
		return c.Tool, true
	case "flow":
		return c.Flow, true
	default:
		return "", false
	}
}

// Eval reports whether the condition matches the given context. Evaluation is
// pure: it reads only its receiver and the context, so it is safe to call
// from concurrent resolution runs.
func (c *Condition) Eval(ctx Context) bool {
	if c == nil {
		return true
	}
	if c.Tool != "" && ctx.Tool != c.Tool {
		return false
	}
	if c.Flow != "" && ctx.Flow != c.Flow {
		return false
	}
	if c.Target != "" && ctx.Target != c.Target {
		return false
	}
	for key, want := range c.Eq {
		got, ok := ctx.Value(key)
		if !ok || got != want {
			return false
		}
	}
	for i := range c.All {
		if !c.All[i].Eval(ctx) {
			return false
		}
	}
	if len(c.Any) > 0 {
		matched := false
		for i := range c.Any {
			if c.Any[i].Eval(ctx) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if c.Not != nil && c.Not.Eval(ctx) {
		return false
	}
	return true
}
