// Package core is lifo's memory and execution state: the block arena,
// the tagged reference-counted value representation, the operand
// stack, the dictionary, and the hold list all live on one Context —
// exactly as the original's lf_ctx is "the root of all state". Keeping
// them on one type mirrors the original's single translation unit: the
// components are tightly coupled by shared assumptions about blocks,
// ownership, and re-entry — that coupling is the engineering content
// here, not an accident to engineer away.
package core

import (
	"github.com/lifovm/lifo/internal/config"
	"github.com/lifovm/lifo/internal/signal"
)

// CellH, RefH, SegH and ChunkH are handles into Context's four arenas.
// Zero is the nil handle in each; the "arena + index" design is the
// direct license for replacing every raw next-pointer with
// an index into a backing slice, which is what let this module donate a
// fixed block budget without ever calling a raw allocator on the hot
// path. The four handle types are distinct so the compiler rejects
// mixing up, say, a chunk handle and a cell handle at a call site.
type (
	CellH  uint32
	RefH   uint32
	SegH   uint32
	ChunkH uint32
)

// Context is lifo's lf_ctx. A zero Context is usable after Init.
type Context struct {
	cells []cellSlot
	refs  []refSlot
	segs  []segSlot
	chunk []chunkSlot

	freeCells  CellH
	freeRefs   RefH
	freeSegs   SegH
	freeChunks ChunkH

	// remaining is the shared block budget: every arena's allocate
	// decrements it and every free increments it, so the single
	// number is what the accounting invariant checks against.
	remaining int

	Stack CellH
	Size  int
	Dict  CellH
	Hold  CellH

	Signals signal.Table

	readByte  func() byte
	writeByte func(byte)
}

// Init prepares a fresh Context: every signal handler defaults to
// signal.DefaultHandler writing nowhere until ConfigIO is called, and
// Reset establishes the rest (lf_init calls lf_reset at the end).
func (ctx *Context) Init() {
	ctx.cells = ctx.cells[:0]
	ctx.refs = ctx.refs[:0]
	ctx.segs = ctx.segs[:0]
	ctx.chunk = ctx.chunk[:0]
	ctx.freeCells, ctx.freeRefs, ctx.freeSegs, ctx.freeChunks = 0, 0, 0, 0
	ctx.remaining = 0
	ctx.Stack, ctx.Size, ctx.Dict, ctx.Hold = 0, 0, 0, 0
	ctx.Signals = signal.NewTable()
	// lf_dfl_hdl always reports through the context's configured
	// writer, not a detached stream; route every slot's default
	// handler through WriteString so a handler installed before
	// ConfigIO still degrades to the original's silent-no-writer case
	// rather than a nil-closure no-op with no path to ever start
	// writing once a writer is configured later.
	for k := signal.Kind(1); int(k) <= config.SignalTableSize; k++ {
		ctx.Signals.Set(k, signal.DefaultHandler(ctx.WriteString))
	}
	ctx.Reset()
}

// Reset drains the hold list without freeing donated memory, matching
// lf_reset. The original additionally re-establishes the setjmp escape
// target here; this Go translation has no escape target to reset since
// every fallible call already returns its signal.Kind directly to its
// caller (see internal/signal's doc comment).
func (ctx *Context) Reset() {
	ctx.releaseList(ctx.Hold)
	ctx.Hold = 0
}

// ConfigIO installs the byte-at-a-time read/write callbacks a host uses
// to drive the reader and trace output. A nil argument leaves the
// existing binding untouched, matching lf_cfg_io's own
// "rdfn != NULL ? rdfn : ctx->rdfn" guards.
func (ctx *Context) ConfigIO(read func() byte, write func(byte)) {
	if read != nil {
		ctx.readByte = read
	}
	if write != nil {
		ctx.writeByte = write
	}
}

// ReadByte pulls one byte from the configured reader, or 0 if none is
// configured (treated as immediate end-of-input, same as the sentinel
// null byte the reader treats as end-of-input).
func (ctx *Context) ReadByte() byte {
	if ctx.readByte == nil {
		return 0
	}
	return ctx.readByte()
}

// WriteByte pushes one byte to the configured writer; writing with no
// writer configured is a silent no-op.
func (ctx *Context) WriteByte(b byte) {
	if ctx.writeByte != nil {
		ctx.writeByte(b)
	}
}

// WriteString writes s one byte at a time, matching the original's
// writestr helper.
func (ctx *Context) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		ctx.WriteByte(s[i])
	}
}

// MapMemory donates n additional blocks to the shared budget, matching
// lf_map_mem(ctx, mem, size) with size already expressed in blocks
// (config.BlockSize is what a host would divide a raw byte count by).
// Calling it again later — typically from inside an OUT_OF_MEMORY
// handler — is how a host "extends memory" to let an allocation retry.
func (ctx *Context) MapMemory(n int) {
	ctx.remaining += n
}

// Stats reports the current block accounting: how many blocks remain
// unallocated and how many blocks each arena has ever grown to (its
// high-water mark, allocated-or-free). Reported by cmd/lifo's -stats
// flag; the default signal handlers do not print it.
type Stats struct {
	Remaining   int
	Cells       int
	Refs        int
	Segs        int
	Chunks      int
}

func (ctx *Context) Stats() Stats {
	return Stats{
		Remaining: ctx.remaining,
		Cells:     len(ctx.cells),
		Refs:      len(ctx.refs),
		Segs:      len(ctx.segs),
		Chunks:    len(ctx.chunk),
	}
}

// reserve accounts for one more block against the shared budget,
// raising OUT_OF_MEMORY and retrying while the handler keeps resolving
// it with signal.OK — the direct translation of make_block's
// "while (ctx->free == NULL) { lf_raise(...); }" loop.
func (ctx *Context) reserve() signal.Kind {
	for ctx.remaining <= 0 {
		if sig := ctx.Raise(signal.OutOfMemory, "out of memory"); sig != signal.OK {
			return sig
		}
	}
	ctx.remaining--
	return signal.OK
}

func (ctx *Context) unreserve() {
	ctx.remaining++
}

// Raise forwards to the signal table, for callers (builtins, the
// reader, the evaluator) outside this package that need to report a
// condition the way lf_raise does. If the handler doesn't resolve the
// signal to OK, the hold list is drained before the signal escapes —
// matching lf_raise's free_hold(ctx) immediately before its longjmp —
// so a builtin that Took a cell and then failed its own check doesn't
// leak it onto the hold list forever.
func (ctx *Context) Raise(kind signal.Kind, msg string) signal.Kind {
	sig := ctx.Signals.Raise(kind, msg)
	if sig != signal.OK {
		ctx.DrainHold()
	}
	return sig
}
