package core

import (
	"fmt"

	"github.com/lifovm/lifo/internal/signal"
	"github.com/lifovm/lifo/internal/value"
)

// The To* accessors are check_type's translation: each verifies c's tag
// before handing back its payload, raising RUNTIME_ERROR with the same
// "expected X, got Y" message the original's sprintf produces.
func (ctx *Context) expect(c CellH, want value.Tag) signal.Kind {
	if ctx.cells[c-1].tag != want {
		return ctx.Raise(signal.RuntimeError, fmt.Sprintf("expected %s, got %s", want, ctx.cells[c-1].tag))
	}
	return signal.OK
}

func (ctx *Context) ToNum(c CellH) (float64, signal.Kind) {
	if sig := ctx.expect(c, value.Number); sig != signal.OK {
		return 0, sig
	}
	return ctx.Num(c), signal.OK
}

func (ctx *Context) ToNative(c CellH) (*NativeEntry, signal.Kind) {
	if sig := ctx.expect(c, value.Native); sig != signal.OK {
		return nil, sig
	}
	return ctx.Native(c), signal.OK
}

func (ctx *Context) ToUser(c CellH) (any, signal.Kind) {
	if sig := ctx.expect(c, value.User); sig != signal.OK {
		return nil, sig
	}
	return ctx.User(c), signal.OK
}

// ToList returns the payload chain's head (0 for an empty list).
func (ctx *Context) ToList(c CellH) (CellH, signal.Kind) {
	if sig := ctx.expect(c, value.List); sig != signal.OK {
		return 0, sig
	}
	return ctx.ListHead(c), signal.OK
}

// ToStr returns the segment chain backing a STRING cell.
func (ctx *Context) ToStr(c CellH) (SegH, signal.Kind) {
	if sig := ctx.expect(c, value.String); sig != signal.OK {
		return 0, sig
	}
	return ctx.StrHead(c), signal.OK
}
