package core

import (
	"github.com/lifovm/lifo/internal/signal"
	"github.com/lifovm/lifo/internal/value"
)

// chunkSlot is lf_chk: the reader's working state for one open list
// (the text between a "[" and its matching "]"). head/tail give O(1)
// append without walking the list on every token; parent threads back
// to the chunk that was open before this "[", so NewChunk/FinishChunk
// form a stack without needing a separate stack structure.
type chunkSlot struct {
	head   CellH
	tail   CellH
	parent ChunkH
}

func (ctx *Context) allocChunk() (ChunkH, signal.Kind) {
	if sig := ctx.reserve(); sig != signal.OK {
		return 0, sig
	}
	if ctx.freeChunks != 0 {
		h := ctx.freeChunks
		ctx.freeChunks = ctx.chunk[h-1].parent
		ctx.chunk[h-1] = chunkSlot{}
		return h, signal.OK
	}
	ctx.chunk = append(ctx.chunk, chunkSlot{})
	return ChunkH(len(ctx.chunk)), signal.OK
}

func (ctx *Context) freeChunk(ch ChunkH) {
	ctx.chunk[ch-1] = chunkSlot{parent: ctx.freeChunks}
	ctx.freeChunks = ch
	ctx.unreserve()
}

// NewChunk opens a fresh list under parent (0 for the top-level chunk
// the reader keeps open between reads).
func (ctx *Context) NewChunk(parent ChunkH) (ChunkH, signal.Kind) {
	ch, sig := ctx.allocChunk()
	if sig != signal.OK {
		return 0, sig
	}
	ctx.chunk[ch-1].parent = parent
	return ch, signal.OK
}

func (ctx *Context) ChunkParent(ch ChunkH) ChunkH { return ctx.chunk[ch-1].parent }

// ChunkHead returns the first cell of ch's accumulated chain, 0 if
// ch has no members yet. Used by evaluate to walk the outermost chunk
// without finishing it (the top-level chunk stays open between reads).
func (ctx *Context) ChunkHead(ch ChunkH) CellH { return ctx.chunk[ch-1].head }

// Intern implements the reader's value interning: before c is appended
// anywhere, every chunk currently open — ch and all of its ancestors,
// innermost first — is scanned for a structural match, matching
// search_entry's walk up the whole open chunk stack rather than just
// the current list. On a match, c is released and an alias of the
// match is returned in its place. Scanning is linear per token, trading
// reader throughput for smaller resulting trees — the same tradeoff
// the original's interning accepts.
func (ctx *Context) Intern(ch ChunkH, c CellH) (CellH, signal.Kind) {
	for h := ch; h != 0; h = ctx.chunk[h-1].parent {
		for cur := ctx.chunk[h-1].head; cur != 0; cur = ctx.cells[cur-1].next {
			if cur != c && ctx.Equal(cur, c) {
				alias, sig := ctx.MakeAlias(cur)
				ctx.Release(c)
				return alias, sig
			}
		}
	}
	return c, signal.OK
}

// AppendCell links c onto ch's tail, matching finish_chk's list-linking
// half (the interning decision is made separately via Intern so callers
// that don't want interning — the reader's "]" branch, which appends
// finished LIST cells, for instance — can skip it).
func (ctx *Context) AppendCell(ch ChunkH, c CellH) {
	slot := &ctx.chunk[ch-1]
	if slot.tail == 0 {
		slot.head = c
	} else {
		ctx.cells[slot.tail-1].next = c
	}
	slot.tail = c
}

// FinishChunk wraps ch's accumulated chain in a fresh LIST cell and
// returns the chunk slot to the free list, yielding the new cell and
// the parent chunk to resume.
func (ctx *Context) FinishChunk(ch ChunkH) (CellH, ChunkH, signal.Kind) {
	head, parent := ctx.chunk[ch-1].head, ctx.chunk[ch-1].parent
	lst, sig := ctx.MakeCell(value.List)
	if sig != signal.OK {
		return 0, parent, sig
	}
	ctx.refs[ctx.cells[lst-1].ref-1].listHead = head
	ctx.freeChunk(ch)
	return lst, parent, signal.OK
}

// AbandonChunk releases every cell a partially-read chunk has
// accumulated and returns its slot, used when reading fails partway
// through a list (e.g. end-of-input before the matching "]").
func (ctx *Context) AbandonChunk(ch ChunkH) {
	ctx.releaseList(ctx.chunk[ch-1].head)
	ctx.freeChunk(ch)
}
