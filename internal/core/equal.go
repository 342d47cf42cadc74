package core

import "github.com/lifovm/lifo/internal/value"

// Equal implements objeq: identity first (two handles naming the same
// cell, or two cells sharing a reference record, are trivially equal),
// then a tag-dependent structural comparison. Tag mismatch is always
// unequal — there is no cross-tag coercion.
func (ctx *Context) Equal(a, b CellH) bool {
	if a == b {
		return true
	}
	if a == 0 || b == 0 {
		return false
	}
	ca, cb := &ctx.cells[a-1], &ctx.cells[b-1]
	if ca.ref == cb.ref {
		return true
	}
	if ca.tag != cb.tag {
		return false
	}
	switch ca.tag {
	case value.Number:
		return ctx.Num(a) == ctx.Num(b)
	case value.Symbol, value.String:
		return ctx.StrEqual(ctx.StrHead(a), ctx.StrHead(b))
	case value.Native:
		return ctx.Native(a) == ctx.Native(b)
	case value.User:
		return ctx.User(a) == ctx.User(b)
	case value.List:
		la, lb := ctx.ListHead(a), ctx.ListHead(b)
		for la != 0 && lb != 0 {
			if !ctx.Equal(la, lb) {
				return false
			}
			la, lb = ctx.cells[la-1].next, ctx.cells[lb-1].next
		}
		return la == 0 && lb == 0
	default:
		return false
	}
}
