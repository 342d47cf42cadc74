package builtins

import (
	"github.com/lifovm/lifo/internal/core"
	"github.com/lifovm/lifo/internal/eval"
	"github.com/lifovm/lifo/internal/signal"
)

// Apl pops the top of stack and applies it. apply() itself recognizes
// "apl" in tail position and takes a faster path that never reaches
// this function (see internal/eval's tailNative); this body runs only
// when "apl" is invoked from a non-tail position — inside execute, or
// as a non-final list element.
func Apl(ctx *core.Context) signal.Kind {
	top, sig := ctx.Peek(0)
	if sig != signal.OK {
		return sig
	}
	ctx.Stack = ctx.Next(top)
	ctx.Size--
	return eval.Apply(ctx, top)
}

// Eq implements the equality-dispatch primitive: "… A B T E eq →". A
// and B are compared structurally; the
// matching branch (T on equal, E otherwise) is applied and the other is
// released. Like Apl, this body is the non-tail path — apply()'s own
// tail fast path (internal/eval's tailNative) handles "eq" in tail
// position without ever calling here.
func Eq(ctx *core.Context) signal.Kind {
	a, sig := ctx.Peek(3)
	if sig != signal.OK {
		return sig
	}
	b, sig := ctx.Peek(2)
	if sig != signal.OK {
		return sig
	}
	t, sig := ctx.Peek(1)
	if sig != signal.OK {
		return sig
	}
	e, sig := ctx.Peek(0)
	if sig != signal.OK {
		return sig
	}
	res := ctx.Equal(a, b)
	remainder := ctx.Next(a)
	ctx.Release(a)
	ctx.Release(b)
	ctx.Stack = remainder
	ctx.Size -= 4
	if res {
		ctx.Release(e)
		return eval.Apply(ctx, t)
	}
	ctx.Release(t)
	return eval.Apply(ctx, e)
}
