package builtins

import (
	"github.com/lifovm/lifo/internal/core"
	"github.com/lifovm/lifo/internal/signal"
)

// Register (";") binds the top two stack cells: the top must be a
// STRING naming the entry, the next is the value bound to it.
// Most-recent-wins lookup falls out of the dictionary's head-first
// search, not anything this primitive does.
func Register(ctx *core.Context) signal.Kind {
	return ctx.Register()
}

// Remove ("~") unbinds the first dictionary entry whose name equals the
// popped STRING; unbinding an unbound name is a silent no-op.
func Remove(ctx *core.Context) signal.Kind {
	raw, sig := ctx.Take(0)
	if sig != signal.OK {
		return sig
	}
	head, sig := ctx.ToStr(raw)
	if sig != signal.OK {
		return sig
	}
	ctx.Remove(ctx.SegBytes(head))
	return signal.OK
}

// Find ("?") pops a STRING and pushes a deep copy of its binding,
// surfacing RUNTIME_ERROR if the name is unbound.
func Find(ctx *core.Context) signal.Kind {
	raw, sig := ctx.Take(0)
	if sig != signal.OK {
		return sig
	}
	head, sig := ctx.ToStr(raw)
	if sig != signal.OK {
		return sig
	}
	bound := ctx.FindBinding(ctx.SegBytes(head))
	if bound == 0 {
		return ctx.Raise(signal.RuntimeError, "unknown symbol")
	}
	cp, sig := ctx.DeepCopy(bound)
	if sig != signal.OK {
		return sig
	}
	ctx.Push(cp)
	return signal.OK
}
