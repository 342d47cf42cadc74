package builtins

import (
	"math"

	"github.com/lifovm/lifo/internal/core"
	"github.com/lifovm/lifo/internal/signal"
)

// binOp is the mathop macro's translation: peek the top two operands
// (without unlinking), compute, then free both and push the result —
// the original avoids a round trip through take/hold for the common
// two-operand math case.
func binOp(ctx *core.Context, op func(a, b float64) float64) signal.Kind {
	_, sig := ctx.Peek(1)
	if sig != signal.OK {
		return sig
	}
	b := ctx.Stack
	a := ctx.Next(b)
	an, sig := ctx.ToNum(a)
	if sig != signal.OK {
		return sig
	}
	bn, sig := ctx.ToNum(b)
	if sig != signal.OK {
		return sig
	}
	n := op(an, bn)
	ctx.Size -= 2
	rest := ctx.Next(a)
	ctx.Release(b)
	ctx.Release(a)
	ctx.Stack = rest
	result, sig := ctx.NewNumber(n)
	if sig != signal.OK {
		return sig
	}
	ctx.Push(result)
	return signal.OK
}

func Add(ctx *core.Context) signal.Kind { return binOp(ctx, func(a, b float64) float64 { return a + b }) }
func Sub(ctx *core.Context) signal.Kind { return binOp(ctx, func(a, b float64) float64 { return a - b }) }
func Mul(ctx *core.Context) signal.Kind { return binOp(ctx, func(a, b float64) float64 { return a * b }) }
func Div(ctx *core.Context) signal.Kind { return binOp(ctx, func(a, b float64) float64 { return a / b }) }
func Mod(ctx *core.Context) signal.Kind { return binOp(ctx, math.Mod) }

// Sgn pushes -1, 0 or 1 according to the sign of the popped NUMBER.
func Sgn(ctx *core.Context) signal.Kind {
	raw, sig := ctx.Take(0)
	if sig != signal.OK {
		return sig
	}
	n, sig := ctx.ToNum(raw)
	if sig != signal.OK {
		return sig
	}
	var s float64
	switch {
	case n < 0:
		s = -1
	case n > 0:
		s = 1
	}
	result, sig := ctx.NewNumber(s)
	if sig != signal.OK {
		return sig
	}
	ctx.Push(result)
	return signal.OK
}
