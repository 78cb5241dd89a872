// Package builtins implements Aurora's two built-in callables: time() and
// clock() (spec §4.7, §6).
package builtins

import (
	"time"

	"github.com/aurora-lang/aurora/internal/value"
)

// timeLayout is a stable, locale-independent local date-time format. The
// original Rust implementation's exact layout is not load-bearing (spec
// only requires "a string of local date-time"); this resolves that Open
// Question with a fixed, parseable layout (see original_source notes in
// SPEC_FULL.md).
const timeLayout = "2006-01-02 15:04:05"

// All returns the global built-in table, ready to Define into the
// top-level environment frame.
func All() map[string]*value.Builtin {
	return map[string]*value.Builtin{
		"time":  {Which: value.Time, Name: "time", Arity: 0},
		"clock": {Which: value.Clock, Name: "clock", Arity: 0},
	}
}

// Call invokes a builtin by Which; the interpreter dispatches here after
// confirming the arity (spec §4.7).
func Call(b *value.Builtin, args []value.Value) value.Value {
	switch b.Which {
	case value.Time:
		return value.String{Value: time.Now().Format(timeLayout)}
	case value.Clock:
		return value.Number{Value: float64(time.Now().Unix())}
	}
	panic("unreachable: unknown builtin")
}
