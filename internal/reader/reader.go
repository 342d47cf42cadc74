// Package reader is lifo's lexer/parser: it consumes bytes one at a
// time through the context's configured reader, builds a tree of
// in-progress list chunks, and interns scalar tokens as it goes. It is
// a direct translation of read_text in original_source/src/lifo.c, with
// the lookahead-byte style of funxy's internal/lexer.Lexer.NextToken
// adapted to a pull-one-byte-at-a-time source instead of an in-memory
// string.
package reader

import (
	"strconv"

	"github.com/lifovm/lifo/internal/builtins"
	"github.com/lifovm/lifo/internal/config"
	"github.com/lifovm/lifo/internal/core"
	"github.com/lifovm/lifo/internal/signal"
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDelim(c byte) bool {
	return isSpace(c) || c == '[' || c == ']' || c == '"'
}

// Read consumes bytes from ctx's configured reader until the sentinel
// NUL, extending *chk — the caller-owned chunk-stack cursor, 0 the
// first time — with whatever tokens and list structure it finds. A
// single call corresponds to one read_text invocation: it does not
// preserve any partial-token lookahead across calls, the same as the
// original (a token split across two Read calls is simply truncated at
// whichever call it ends in).
func Read(ctx *core.Context, chk *core.ChunkH) signal.Kind {
	if *chk == 0 {
		ch, sig := ctx.NewChunk(0)
		if sig != signal.OK {
			return sig
		}
		*chk = ch
	}
	c := ctx.ReadByte()
	for {
		for isSpace(c) {
			c = ctx.ReadByte()
		}
		switch {
		case c == 0:
			return signal.OK
		case c == '#':
			for c != '\n' && c != 0 {
				c = ctx.ReadByte()
			}
			continue
		case c == '[':
			nc, sig := ctx.NewChunk(*chk)
			if sig != signal.OK {
				return sig
			}
			*chk = nc
			c = ctx.ReadByte()
			continue
		case c == ']':
			if ctx.ChunkParent(*chk) == 0 {
				return ctx.Raise(signal.ParseError, "illegal list end")
			}
			lst, parent, sig := ctx.FinishChunk(*chk)
			if sig != signal.OK {
				return sig
			}
			*chk = parent
			ctx.AppendCell(*chk, lst)
			c = ctx.ReadByte()
			continue
		case c == '"':
			cell, next, sig := readString(ctx)
			if sig != signal.OK {
				return sig
			}
			cell, sig = ctx.Intern(*chk, cell)
			if sig != signal.OK {
				return sig
			}
			ctx.AppendCell(*chk, cell)
			c = next
			continue
		default:
			cell, next, sig := readToken(ctx, c)
			if sig != signal.OK {
				return sig
			}
			cell, sig = ctx.Intern(*chk, cell)
			if sig != signal.OK {
				return sig
			}
			ctx.AppendCell(*chk, cell)
			c = next
			continue
		}
	}
}

// readString reads the body of a `"`-delimited STRING literal, the `"`
// itself already consumed. It returns the built cell, the lookahead
// byte immediately after the closing quote, and any signal raised for
// an input that ends before the string is closed.
func readString(ctx *core.Context) (core.CellH, byte, signal.Kind) {
	var buf []byte
	for {
		c := ctx.ReadByte()
		if c == '"' {
			break
		}
		if c == 0 {
			return 0, 0, ctx.Raise(signal.ParseError, "unfinished string")
		}
		buf = append(buf, c)
	}
	cell, sig := ctx.NewString(buf)
	if sig != signal.OK {
		return 0, 0, sig
	}
	return cell, ctx.ReadByte(), signal.OK
}

// readToken reads a delimiter-bounded token starting with the already
// consumed byte first, classifying it as a builtin NATIVE, a NUMBER, or
// a SYMBOL, in that order — find_builtin's table lookup, then strtod's
// whole-token parse, falling back to SYMBOL.
func readToken(ctx *core.Context, first byte) (core.CellH, byte, signal.Kind) {
	buf := make([]byte, 0, config.SymMaxLen)
	c := first
	for !isDelim(c) && c != 0 {
		if len(buf) >= config.SymMaxLen-1 {
			// read_text ignores what the handler decides here and always
			// aborts the current read; a permissive handler cannot turn
			// this into a retry the way it can for OUT_OF_MEMORY.
			ctx.Raise(signal.ParseError, "symbol too long")
			return 0, 0, signal.ParseError
		}
		buf = append(buf, c)
		c = ctx.ReadByte()
	}
	tok := string(buf)
	if entry := builtins.Lookup(tok); entry != nil {
		cell, sig := ctx.NewNative(entry)
		return cell, c, sig
	}
	if n, err := strconv.ParseFloat(tok, 64); err == nil {
		cell, sig := ctx.NewNumber(n)
		return cell, c, sig
	}
	cell, sig := ctx.NewSymbol(buf)
	return cell, c, sig
}
