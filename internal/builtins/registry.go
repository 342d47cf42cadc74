// Package builtins implements the nineteen core primitives plus the
// "uid" domain extension, and the table the reader consults to
// recognize them as NATIVE literals at read time — find_builtin's
// translation. None of these names are ever installed into the
// dictionary; a builtin token becomes a self-contained NATIVE cell the
// moment the reader sees it, exactly as the original's static
// builtin_key/builtin_val arrays work.
package builtins

import (
	"github.com/lifovm/lifo/internal/config"
	"github.com/lifovm/lifo/internal/core"
)

// fns maps each builtin name to its implementation. table (built below
// from config.BuiltinNames) is what Lookup actually consults; keeping
// the name list and the implementation list separate, with table built
// by iterating the former, means the two can never drift apart the way
// two independently hand-written maps could.
var fns = map[string]core.NativeFunc{
	"rol": Rol,
	"cpy": Cpy,
	"drp": Drp,
	"wrp": Wrp,
	"pul": Pul,
	"apl": Apl,
	";":   Register,
	"~":   Remove,
	"?":   Find,
	"eq":  Eq,
	"is":  Is,
	"rf":  Rf,
	"sz":  Sz,
	"+":   Add,
	"-":   Sub,
	"*":   Mul,
	"/":   Div,
	"mod": Mod,
	"sgn": Sgn,
	"uid": Uid,
}

// table holds one *core.NativeEntry per builtin name, built once so
// every read of the same name yields the identical pointer — required
// for NATIVE equality (objeq's pointer comparison) to treat two
// occurrences of, say, "+" as equal.
var table map[string]*core.NativeEntry

func init() {
	table = make(map[string]*core.NativeEntry, len(config.BuiltinNames))
	for _, name := range config.BuiltinNames {
		table[name] = &core.NativeEntry{Name: name, Fn: fns[name]}
	}
}

// Lookup returns the registered entry for name, or nil if name is not a
// builtin.
func Lookup(name string) *core.NativeEntry {
	return table[name]
}
