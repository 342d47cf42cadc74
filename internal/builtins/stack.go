package builtins

import (
	"github.com/lifovm/lifo/internal/core"
	"github.com/lifovm/lifo/internal/signal"
	"github.com/lifovm/lifo/internal/value"
)

// Rol rotates the stack below the popped step count: a positive step
// moves the element at that depth to the top; a negative step moves
// the top element down to depth -step. Zero is a no-op.
func Rol(ctx *core.Context) signal.Kind {
	raw, sig := ctx.Take(0)
	if sig != signal.OK {
		return sig
	}
	step, sig := ctx.ToNum(raw)
	if sig != signal.OK {
		return sig
	}
	n := int(step)
	switch {
	case n < 0:
		last, sig := ctx.Peek(-n)
		if sig != signal.OK {
			return sig
		}
		first := ctx.Stack
		ctx.Stack = ctx.Next(first)
		ctx.SetNext(first, ctx.Next(last))
		ctx.SetNext(last, first)
	case n > 0:
		prev, sig := ctx.Peek(n - 1)
		if sig != signal.OK {
			return sig
		}
		last := ctx.Next(prev)
		if last == 0 {
			return ctx.Raise(signal.StackUnderflow, "stack underflow")
		}
		ctx.SetNext(prev, ctx.Next(last))
		ctx.SetNext(last, ctx.Stack)
		ctx.Stack = last
	}
	return signal.OK
}

// Cpy pushes a deep copy of the element at the popped depth.
func Cpy(ctx *core.Context) signal.Kind {
	raw, sig := ctx.Take(0)
	if sig != signal.OK {
		return sig
	}
	idx, sig := ctx.ToNum(raw)
	if sig != signal.OK {
		return sig
	}
	target, sig := ctx.Peek(int(idx))
	if sig != signal.OK {
		return sig
	}
	cp, sig := ctx.DeepCopy(target)
	if sig != signal.OK {
		return sig
	}
	ctx.Push(cp)
	return signal.OK
}

// Drp discards the element at the popped depth.
func Drp(ctx *core.Context) signal.Kind {
	raw, sig := ctx.Take(0)
	if sig != signal.OK {
		return sig
	}
	idx, sig := ctx.ToNum(raw)
	if sig != signal.OK {
		return sig
	}
	_, sig = ctx.Take(int(idx))
	return sig
}

// Wrp wraps the top (idx+1) elements into a fresh LIST, idx being the
// popped depth of the segment's deepest element. The deepest element
// becomes the list's first element and the old top its last.
func Wrp(ctx *core.Context) signal.Kind {
	raw, sig := ctx.Take(0)
	if sig != signal.OK {
		return sig
	}
	idxF, sig := ctx.ToNum(raw)
	if sig != signal.OK {
		return sig
	}
	idx := int(idxF)
	target, sig := ctx.Peek(idx)
	if sig != signal.OK {
		return sig
	}
	list, sig := ctx.MakeCell(value.List)
	if sig != signal.OK {
		return sig
	}
	rest := ctx.Next(target)
	var head core.CellH
	for cur := ctx.Stack; cur != rest; {
		next := ctx.Next(cur)
		ctx.SetNext(cur, head)
		head = cur
		cur = next
	}
	ctx.SetListHead(list, head)
	ctx.Stack = rest
	ctx.Push(list)
	ctx.Size -= idx + 1
	return signal.OK
}

// Pul unpacks a LIST's payload onto the stack (each element aliased)
// followed by the element count as a NUMBER.
func Pul(ctx *core.Context) signal.Kind {
	raw, sig := ctx.Take(0)
	if sig != signal.OK {
		return sig
	}
	head, sig := ctx.ToList(raw)
	if sig != signal.OK {
		return sig
	}
	cnt := 0
	for cur := head; cur != 0; cur = ctx.Next(cur) {
		alias, sig := ctx.MakeAlias(cur)
		if sig != signal.OK {
			return sig
		}
		ctx.Push(alias)
		cnt++
	}
	n, sig := ctx.NewNumber(float64(cnt))
	if sig != signal.OK {
		return sig
	}
	ctx.Push(n)
	return signal.OK
}

// Rf pushes a fresh alias of the element at the popped depth, leaving
// the original in place — a non-destructive reference, distinct from
// Cpy which deep-copies.
func Rf(ctx *core.Context) signal.Kind {
	raw, sig := ctx.Take(0)
	if sig != signal.OK {
		return sig
	}
	idx, sig := ctx.ToNum(raw)
	if sig != signal.OK {
		return sig
	}
	target, sig := ctx.Peek(int(idx))
	if sig != signal.OK {
		return sig
	}
	alias, sig := ctx.MakeAlias(target)
	if sig != signal.OK {
		return sig
	}
	ctx.Push(alias)
	return signal.OK
}

// Sz pushes the current stack size as a NUMBER.
func Sz(ctx *core.Context) signal.Kind {
	n, sig := ctx.NewNumber(float64(ctx.Size))
	if sig != signal.OK {
		return sig
	}
	ctx.Push(n)
	return signal.OK
}

// Is pops a value and pushes its three-letter type tag as a STRING.
func Is(ctx *core.Context) signal.Kind {
	raw, sig := ctx.Take(0)
	if sig != signal.OK {
		return sig
	}
	s, sig := ctx.NewString([]byte(ctx.Tag(raw).String()))
	if sig != signal.OK {
		return sig
	}
	ctx.Push(s)
	return signal.OK
}
