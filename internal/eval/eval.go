// Package eval is lifo's evaluator: Evaluate walks a finished chunk's
// top-level cells, Execute dispatches one cell the way a program in
// sequence position does, and Apply dispatches one cell the way a
// value taken off the stack does. Both Execute and Apply eliminate
// tail calls by looping in place rather than recursing, matching
// execute/apply's "goto begin" shape in original_source/src/lifo.c.
package eval

import (
	"github.com/lifovm/lifo/internal/core"
	"github.com/lifovm/lifo/internal/signal"
	"github.com/lifovm/lifo/internal/value"
)

// Evaluate runs the outermost chunk's accumulated program. A chunk with
// an open parent (chunk stack depth > 1) is unfinished input — the
// caller (typically a REPL) should keep reading rather than treat this
// as an error.
func Evaluate(ctx *core.Context, outer core.ChunkH) signal.Kind {
	if ctx.ChunkParent(outer) != 0 {
		return ctx.Raise(signal.UnfinishedChunk, "unfinished chunk")
	}
	for cur := ctx.ChunkHead(outer); cur != 0; cur = ctx.Next(cur) {
		if sig := Execute(ctx, cur); sig != signal.OK {
			return sig
		}
	}
	return signal.OK
}

// Execute dispatches obj in program-sequence position: a SYMBOL is
// looked up and, if its binding is a LIST, the binding's elements run
// in sequence with tail elimination on the last one; any other binding
// is itself executed in tail position. A NATIVE runs and drains the
// hold list. Anything else is pushed as a deep copy, since a literal
// appearing in source position denotes itself.
func Execute(ctx *core.Context, obj core.CellH) signal.Kind {
	for {
		switch ctx.Tag(obj) {
		case value.Symbol:
			bound := find(ctx, obj)
			if bound == 0 {
				return ctx.Raise(signal.RuntimeError, "unknown symbol")
			}
			if ctx.Tag(bound) != value.List {
				obj = bound
				continue
			}
			head := ctx.ListHead(bound)
			if head == 0 {
				return signal.OK
			}
			for ctx.Next(head) != 0 {
				if sig := Execute(ctx, head); sig != signal.OK {
					return sig
				}
				head = ctx.Next(head)
			}
			obj = head
			continue
		case value.Native:
			entry := ctx.Native(obj)
			if sig := entry.Fn(ctx); sig != signal.OK {
				return sig
			}
			ctx.DrainHold()
			return signal.OK
		default:
			cp, sig := ctx.DeepCopy(obj)
			if sig != signal.OK {
				return sig
			}
			ctx.Push(cp)
			return signal.OK
		}
	}
}

func find(ctx *core.Context, sym core.CellH) core.CellH {
	return ctx.FindBinding(ctx.StrBytes(sym))
}

// Apply dispatches obj — already detached from wherever it lived — the
// way a value taken off the stack is invoked. LIST walks its payload,
// mutably if this cell held the payload's last reference or via
// aliases otherwise; every element but the last runs without tail
// return, the last runs with it. SYMBOL resolves and loops. NATIVE
// takes the apl/eq fast path or simply runs. Anything else is pushed.
func Apply(ctx *core.Context, obj core.CellH) signal.Kind {
	for {
		switch ctx.Tag(obj) {
		case value.List:
			payload, unique := ctx.TakeListPayload(obj)
			if payload == 0 {
				return signal.OK
			}
			for ctx.Next(payload) != 0 {
				cur := payload
				payload = ctx.Next(payload)
				if sig := applyNonTail(ctx, cur, unique); sig != signal.OK {
					return sig
				}
			}
			next, sig, done := applyTail(ctx, payload, unique)
			if sig != signal.OK {
				return sig
			}
			if done {
				return signal.OK
			}
			obj = next
			continue
		case value.Symbol:
			bound := find(ctx, obj)
			ctx.Release(obj)
			if bound == 0 {
				return ctx.Raise(signal.RuntimeError, "unknown symbol")
			}
			alias, sig := ctx.MakeAlias(bound)
			if sig != signal.OK {
				return sig
			}
			obj = alias
			continue
		case value.Native:
			entry := ctx.Native(obj)
			ctx.Release(obj)
			next, sig, looped := tailNative(ctx, entry)
			if sig != signal.OK {
				return sig
			}
			if !looped {
				return signal.OK
			}
			obj = next
			continue
		default:
			ctx.Push(obj)
			return signal.OK
		}
	}
}

// applyNonTail runs one non-final list element: SYMBOL resolves and
// recurses into Apply (a genuine nested call — this position is not
// eliminated), NATIVE invokes and drains, anything else is moved onto
// the stack. unique controls whether cur itself is released/consumed
// directly (the list was uniquely owned) or left alone and aliased
// (the list is shared, so cur still belongs to its other owner).
func applyNonTail(ctx *core.Context, cur core.CellH, unique bool) signal.Kind {
	switch ctx.Tag(cur) {
	case value.Symbol:
		bound := find(ctx, cur)
		if unique {
			ctx.Release(cur)
		}
		if bound == 0 {
			return ctx.Raise(signal.RuntimeError, "unknown symbol")
		}
		alias, sig := ctx.MakeAlias(bound)
		if sig != signal.OK {
			return sig
		}
		return Apply(ctx, alias)
	case value.Native:
		entry := ctx.Native(cur)
		if unique {
			ctx.Release(cur)
		}
		if sig := entry.Fn(ctx); sig != signal.OK {
			return sig
		}
		ctx.DrainHold()
		return signal.OK
	default:
		if unique {
			ctx.Push(cur)
			return signal.OK
		}
		alias, sig := ctx.MakeAlias(cur)
		if sig != signal.OK {
			return sig
		}
		ctx.Push(alias)
		return signal.OK
	}
}

// applyTail runs a list's final element with tail elimination: SYMBOL
// and the apl/eq natives report the cell Apply's caller should loop on
// next (done == false); everything else completes the call outright.
func applyTail(ctx *core.Context, cur core.CellH, unique bool) (next core.CellH, sig signal.Kind, done bool) {
	switch ctx.Tag(cur) {
	case value.Symbol:
		bound := find(ctx, cur)
		if unique {
			ctx.Release(cur)
		}
		if bound == 0 {
			return 0, ctx.Raise(signal.RuntimeError, "unknown symbol"), true
		}
		alias, sig := ctx.MakeAlias(bound)
		if sig != signal.OK {
			return 0, sig, true
		}
		return alias, signal.OK, false
	case value.Native:
		entry := ctx.Native(cur)
		if unique {
			ctx.Release(cur)
		}
		n, sig, looped := tailNative(ctx, entry)
		if sig != signal.OK {
			return 0, sig, true
		}
		return n, signal.OK, !looped
	default:
		if unique {
			ctx.Push(cur)
			return 0, signal.OK, true
		}
		alias, sig := ctx.MakeAlias(cur)
		if sig != signal.OK {
			return 0, sig, true
		}
		ctx.Push(alias)
		return 0, signal.OK, true
	}
}

// tailNative is the native_tail_call translation: "apl" and "eq" are
// the two primitives apply() special-cases so that list-encoded tail
// recursion runs in constant native stack depth. Matching by name
// (rather than function identity, as the original compares C function
// pointers) needs no dependency on internal/builtins, which in turn
// needs Apply to implement "apl" itself — importing builtins from here
// would cycle.
func tailNative(ctx *core.Context, entry *core.NativeEntry) (next core.CellH, sig signal.Kind, looped bool) {
	switch entry.Name {
	case "apl":
		top, sig := ctx.Peek(0)
		if sig != signal.OK {
			return 0, sig, false
		}
		ctx.Stack = ctx.Next(top)
		ctx.Size--
		return top, signal.OK, true
	case "eq":
		a, sig := ctx.Peek(3)
		if sig != signal.OK {
			return 0, sig, false
		}
		b, _ := ctx.Peek(2)
		t, _ := ctx.Peek(1)
		e, _ := ctx.Peek(0)
		res := ctx.Equal(a, b)
		remainder := ctx.Next(a)
		ctx.Release(a)
		ctx.Release(b)
		ctx.Stack = remainder
		ctx.Size -= 4
		if res {
			ctx.Release(e)
			return t, signal.OK, true
		}
		ctx.Release(t)
		return e, signal.OK, true
	default:
		if sig := entry.Fn(ctx); sig != signal.OK {
			return 0, sig, false
		}
		ctx.DrainHold()
		return 0, signal.OK, false
	}
}
