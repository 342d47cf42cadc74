// Package trace implements the host-facing stack formatter, grounded on
// trace_obj/lf_trace in original_source/src/lifo.c. One deliberate
// divergence from the original: the stack is meant to print
// bottom-to-top with the top rightmost, whereas the C trace_obj walks
// ctx->stck (head = top) outward and so actually prints top first; this
// package follows the bottom-to-top order rather than the original's
// traversal direction.
package trace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lifovm/lifo/internal/core"
	"github.com/lifovm/lifo/internal/value"
)

// Format renders the operand stack bottom-to-top, elements separated by
// single spaces, ending in a newline. An empty stack renders "-empty-\n".
func Format(ctx *core.Context) string {
	if ctx.Stack == 0 {
		return "-empty-\n"
	}
	var order []core.CellH
	for c := ctx.Stack; c != 0; c = ctx.Next(c) {
		order = append(order, c)
	}
	var b strings.Builder
	for i := len(order) - 1; i >= 0; i-- {
		writeCell(ctx, &b, order[i])
		if i > 0 {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func writeCell(ctx *core.Context, b *strings.Builder, c core.CellH) {
	switch ctx.Tag(c) {
	case value.List:
		b.WriteByte('[')
		writeListBody(ctx, b, ctx.ListHead(c))
		b.WriteByte(']')
	case value.Symbol:
		b.Write(ctx.StrBytes(c))
	case value.String:
		b.WriteByte('"')
		b.Write(ctx.StrBytes(c))
		b.WriteByte('"')
	case value.Number:
		b.WriteString(strconv.FormatFloat(ctx.Num(c), 'g', 5, 64))
	case value.Native:
		fmt.Fprintf(b, "(%s: %p)", value.Native, ctx.Native(c))
	case value.User:
		fmt.Fprintf(b, "(%s: %p)", value.User, ctx.User(c))
	}
}

// writeListBody prints a LIST's payload left-to-right in its own
// natural (construction) order — unlike the top-level stack, a list's
// elements have no "bottom/top"; the original prints them in payload
// order and there is no reason to diverge for the nested case.
func writeListBody(ctx *core.Context, b *strings.Builder, head core.CellH) {
	for c := head; c != 0; c = ctx.Next(c) {
		writeCell(ctx, b, c)
		if ctx.Next(c) != 0 {
			b.WriteByte(' ')
		}
	}
}
