package core

import (
	"github.com/lifovm/lifo/internal/signal"
	"github.com/lifovm/lifo/internal/value"
)

// Push links c onto the top of the operand stack, matching push_obj.
func (ctx *Context) Push(c CellH) {
	ctx.cells[c-1].next = ctx.Stack
	ctx.Stack = c
	ctx.Size++
}

// Peek walks i links down from the top (0 = top) without unlinking,
// returning STACK_UNDERFLOW when i names a depth at or beyond the
// stack's size and STACK_OVERFLOW when i is negative — the source's
// own choice of signal for a negative index, preserved verbatim rather
// than renamed to an "invalid argument" kind.
func (ctx *Context) Peek(i int) (CellH, signal.Kind) {
	if i < 0 {
		return 0, ctx.Raise(signal.StackOverflow, "negative peek index")
	}
	if i >= ctx.Size {
		return 0, ctx.Raise(signal.StackUnderflow, "stack underflow")
	}
	c := ctx.Stack
	for ; i > 0; i-- {
		c = ctx.cells[c-1].next
	}
	return c, signal.OK
}

// Take unlinks the cell at depth i, prepends it to the hold list, and
// returns it. The cell stays alive for the remainder of the current
// native call — DrainHold releases it once that call returns — so
// primitives may inspect a taken cell freely without an explicit
// release of their own.
func (ctx *Context) Take(i int) (CellH, signal.Kind) {
	if i < 0 {
		return 0, ctx.Raise(signal.StackOverflow, "negative take index")
	}
	if i >= ctx.Size {
		return 0, ctx.Raise(signal.StackUnderflow, "stack underflow")
	}
	var c CellH
	if i == 0 {
		c = ctx.Stack
		ctx.Stack = ctx.cells[c-1].next
	} else {
		prev := ctx.Stack
		for n := i - 1; n > 0; n-- {
			prev = ctx.cells[prev-1].next
		}
		c = ctx.cells[prev-1].next
		ctx.cells[prev-1].next = ctx.cells[c-1].next
	}
	ctx.Size--
	ctx.cells[c-1].next = ctx.Hold
	ctx.Hold = c
	return c, signal.OK
}

// DrainHold releases every cell currently on the hold list and empties
// it, matching the "drained after each native-call invocation" rule.
// Reset calls the same release logic for the wipe-all case (nothing
// left taken across a reset).
func (ctx *Context) DrainHold() {
	ctx.releaseList(ctx.Hold)
	ctx.Hold = 0
}

// --- dictionary -----------------------------------------------------

// Register consumes the top two stack cells — name (must be STRING),
// then value — and links the pair onto the dictionary head exactly as
// lf_reg does: the name cell is reused as-is (still STRING-tagged, not
// converted to SYMBOL) rather than taken through the hold list, since
// both cells are moving straight into the dictionary's ownership, not
// being inspected and released. Most-recent-wins lookup is a
// consequence of Find's head-first linear search, not anything
// Register itself does.
func (ctx *Context) Register() signal.Kind {
	name := ctx.Stack
	val, sig := ctx.Peek(1)
	if sig != signal.OK {
		return sig
	}
	if ctx.Tag(name) != value.String {
		return ctx.Raise(signal.RuntimeError, "expected str, got "+ctx.Tag(name).String())
	}
	ctx.Stack = ctx.Next(val)
	ctx.SetNext(val, ctx.Dict)
	ctx.Dict = name
	ctx.Size -= 2
	return signal.OK
}

// FindBinding returns the value cell bound to name (a raw byte string),
// or 0 if name is unbound. It does not copy or push anything; Find (the
// `?` builtin) and SYMBOL execution both build on this.
func (ctx *Context) FindBinding(name []byte) CellH {
	for e := ctx.Dict; e != 0; e = ctx.cells[ctx.cells[e-1].next-1].next {
		val := ctx.cells[e-1].next
		if ctx.bytesEqualSeg(ctx.StrHead(e), name) {
			return val
		}
	}
	return 0
}

func (ctx *Context) bytesEqualSeg(head SegH, name []byte) bool {
	i := 0
	for s := head; s != 0; s = ctx.segs[s-1].next {
		seg := &ctx.segs[s-1]
		n := int(seg.n)
		if i+n > len(name) {
			return false
		}
		if string(seg.buf[:n]) != string(name[i:i+n]) {
			return false
		}
		i += n
	}
	return i == len(name)
}

// Remove unlinks the first (name, value) pair whose name equals name,
// releasing both cells. It is a no-op if name is unbound, matching
// lf_rem's silent-miss behavior.
func (ctx *Context) Remove(name []byte) {
	var prev CellH
	for e := ctx.Dict; e != 0; {
		val := ctx.cells[e-1].next
		next := ctx.cells[val-1].next
		if ctx.bytesEqualSeg(ctx.StrHead(e), name) {
			if prev == 0 {
				ctx.Dict = next
			} else {
				ctx.cells[ctx.cells[prev-1].next-1].next = next
			}
			ctx.Release(val)
			ctx.Release(e)
			return
		}
		prev = e
		e = next
	}
}
