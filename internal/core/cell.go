package core

import (
	"github.com/lifovm/lifo/internal/signal"
	"github.com/lifovm/lifo/internal/value"
)

// cellSlot is lf_obj: a tagged cell pointing at a shared reference
// record, threaded by Next into whichever chain currently owns it
// (stack, list payload, dictionary, hold, or — when free — the cell
// free list). Index i lives at cells[i-1]; handle 0 is nil.
type cellSlot struct {
	tag  value.Tag
	ref  RefH
	next CellH
}

// refSlot is lf_ref: the shared, reference-counted payload. The
// original represents it as a C union keyed by the owner cell's tag; Go has no
// unsafe-free union, so this is the "fat struct" translation — every
// field that isn't relevant to the current tag simply sits unused. That
// costs a little memory per record (irrelevant on a GC'd target) and
// buys type safety with no unsafe.Pointer reinterpretation anywhere in
// the module.
type refSlot struct {
	count    uint32
	listHead CellH      // LIST payload
	segHead  SegH        // SYMBOL, STRING payload
	num      float64     // NUMBER payload
	ntv      *NativeEntry // NATIVE payload
	usr      any         // USER opaque payload
	fin      Finalizer   // USER finalizer
}

// --- arena plumbing -------------------------------------------------

func (ctx *Context) allocCell() (CellH, signal.Kind) {
	if sig := ctx.reserve(); sig != signal.OK {
		return 0, sig
	}
	if ctx.freeCells != 0 {
		h := ctx.freeCells
		ctx.freeCells = ctx.cells[h-1].next
		ctx.cells[h-1] = cellSlot{}
		return h, signal.OK
	}
	ctx.cells = append(ctx.cells, cellSlot{})
	return CellH(len(ctx.cells)), signal.OK
}

func (ctx *Context) freeCell(c CellH) {
	ctx.cells[c-1] = cellSlot{next: ctx.freeCells}
	ctx.freeCells = c
	ctx.unreserve()
}

func (ctx *Context) allocRef() (RefH, signal.Kind) {
	if sig := ctx.reserve(); sig != signal.OK {
		return 0, sig
	}
	if ctx.freeRefs != 0 {
		h := ctx.freeRefs
		ctx.freeRefs = refSlotNext(ctx.refs[h-1])
		ctx.refs[h-1] = refSlot{}
		return h, signal.OK
	}
	ctx.refs = append(ctx.refs, refSlot{})
	return RefH(len(ctx.refs)), signal.OK
}

// refSlotNext reinterprets a freed refSlot's listHead field as the free
// list link, avoiding an extra struct field that would only ever be used
// while the record is on the free list.
func refSlotNext(r refSlot) RefH { return RefH(r.listHead) }

func (ctx *Context) freeRef(r RefH) {
	ctx.refs[r-1] = refSlot{listHead: CellH(ctx.freeRefs)}
	ctx.freeRefs = r
	ctx.unreserve()
}

// --- construction -----------------------------------------------------

// MakeCell allocates a cell and a fresh reference record with count 1,
// matching make_obj.
func (ctx *Context) MakeCell(tag value.Tag) (CellH, signal.Kind) {
	r, sig := ctx.allocRef()
	if sig != signal.OK {
		return 0, sig
	}
	ctx.refs[r-1].count = 1
	c, sig := ctx.allocCell()
	if sig != signal.OK {
		ctx.freeRef(r)
		return 0, sig
	}
	ctx.cells[c-1] = cellSlot{tag: tag, ref: r}
	return c, signal.OK
}

// MakeAlias allocates only a cell, pointing it at src's reference
// record and incrementing its count — make_alias / make_ref.
func (ctx *Context) MakeAlias(src CellH) (CellH, signal.Kind) {
	c, sig := ctx.allocCell()
	if sig != signal.OK {
		return 0, sig
	}
	srcCell := ctx.cells[src-1]
	ctx.cells[c-1] = cellSlot{tag: srcCell.tag, ref: srcCell.ref}
	ctx.refs[srcCell.ref-1].count++
	return c, signal.OK
}

// NewNumber, NewNative, NewUser and NewEmptyList build a fresh,
// independent cell of the given kind (lf_push_num / lf_push_ntv /
// lf_push_usr / lf_push_lst, minus the push — callers push explicitly).
func (ctx *Context) NewNumber(n float64) (CellH, signal.Kind) {
	c, sig := ctx.MakeCell(value.Number)
	if sig != signal.OK {
		return 0, sig
	}
	ctx.refs[ctx.cells[c-1].ref-1].num = n
	return c, signal.OK
}

func (ctx *Context) NewNative(entry *NativeEntry) (CellH, signal.Kind) {
	c, sig := ctx.MakeCell(value.Native)
	if sig != signal.OK {
		return 0, sig
	}
	ctx.refs[ctx.cells[c-1].ref-1].ntv = entry
	return c, signal.OK
}

func (ctx *Context) NewUser(data any, fin Finalizer) (CellH, signal.Kind) {
	c, sig := ctx.MakeCell(value.User)
	if sig != signal.OK {
		return 0, sig
	}
	if fin == nil {
		fin = func(any) {}
	}
	r := &ctx.refs[ctx.cells[c-1].ref-1]
	r.usr, r.fin = data, fin
	return c, signal.OK
}

func (ctx *Context) NewEmptyList() (CellH, signal.Kind) {
	return ctx.MakeCell(value.List)
}

// NewSymbol and NewString build a segment chain via BuildString and
// wrap it in a fresh cell, matching lf_push_sym / lf_push_str.
func (ctx *Context) NewSymbol(s []byte) (CellH, signal.Kind) {
	return ctx.newStringLike(value.Symbol, s)
}

func (ctx *Context) NewString(s []byte) (CellH, signal.Kind) {
	return ctx.newStringLike(value.String, s)
}

func (ctx *Context) newStringLike(tag value.Tag, s []byte) (CellH, signal.Kind) {
	head, sig := ctx.BuildString(s)
	if sig != signal.OK {
		return 0, sig
	}
	c, sig := ctx.MakeCell(tag)
	if sig != signal.OK {
		return 0, sig
	}
	ctx.refs[ctx.cells[c-1].ref-1].segHead = head
	return c, signal.OK
}

// --- accessors ----------------------------------------------------

func (ctx *Context) Tag(c CellH) value.Tag      { return ctx.cells[c-1].tag }
func (ctx *Context) Next(c CellH) CellH         { return ctx.cells[c-1].next }
func (ctx *Context) SetNext(c, next CellH)      { ctx.cells[c-1].next = next }
func (ctx *Context) Num(c CellH) float64        { return ctx.refs[ctx.cells[c-1].ref-1].num }
func (ctx *Context) Native(c CellH) *NativeEntry { return ctx.refs[ctx.cells[c-1].ref-1].ntv }
func (ctx *Context) User(c CellH) any           { return ctx.refs[ctx.cells[c-1].ref-1].usr }
func (ctx *Context) ListHead(c CellH) CellH     { return ctx.refs[ctx.cells[c-1].ref-1].listHead }

// SetListHead rewires a LIST cell's payload head, used by Wrp to graft
// the stack segment it detaches onto a freshly made list cell.
func (ctx *Context) SetListHead(c CellH, head CellH) {
	ctx.refs[ctx.cells[c-1].ref-1].listHead = head
}
func (ctx *Context) StrHead(c CellH) SegH       { return ctx.refs[ctx.cells[c-1].ref-1].segHead }

// StrBytes concatenates c's string-segment chain, for SYMBOL or STRING
// cells. Used by the dictionary, trace formatting, and host accessors.
func (ctx *Context) StrBytes(c CellH) []byte {
	return ctx.SegBytes(ctx.StrHead(c))
}

// refOf exposes the raw reference handle, for DeepCopy/Release/Equal
// which all need to inspect or mutate the shared record directly.
func (ctx *Context) refOf(c CellH) RefH { return ctx.cells[c-1].ref }

// --- deep copy ----------------------------------------------------

// DeepCopy implements the tag-dependent copy policy: NUMBER/NATIVE copy
// by value into a fresh record; STRING/SYMBOL/USER
// alias the existing record (they are logically immutable); LIST
// recursively copies its payload chain so the result shares no
// structure with the source — the one case make_cpy treats specially,
// because LIST is the sole mutable structural value.
func (ctx *Context) DeepCopy(c CellH) (CellH, signal.Kind) {
	switch ctx.cells[c-1].tag {
	case value.String, value.Symbol, value.User:
		return ctx.MakeAlias(c)
	case value.List:
		nc, sig := ctx.MakeCell(value.List)
		if sig != signal.OK {
			return 0, sig
		}
		var head, tail CellH
		for cur := ctx.ListHead(c); cur != 0; cur = ctx.cells[cur-1].next {
			item, sig := ctx.DeepCopy(cur)
			if sig != signal.OK {
				return 0, sig
			}
			if tail == 0 {
				head = item
			} else {
				ctx.cells[tail-1].next = item
			}
			tail = item
		}
		ctx.refs[ctx.cells[nc-1].ref-1].listHead = head
		return nc, signal.OK
	default: // NUMBER, NATIVE
		nc, sig := ctx.MakeCell(ctx.cells[c-1].tag)
		if sig != signal.OK {
			return 0, sig
		}
		src := ctx.refs[ctx.cells[c-1].ref-1]
		dst := &ctx.refs[ctx.cells[nc-1].ref-1]
		dst.num, dst.ntv = src.num, src.ntv
		return nc, signal.OK
	}
}

// --- release (refcounted teardown) ---------------------------------

// Release decrements c's reference record and, at zero, recursively
// tears down its payload (list chain, string segments, USER finalizer)
// before returning both blocks to their free lists — free_obj/free_ref.
func (ctx *Context) Release(c CellH) {
	tag, r := ctx.cells[c-1].tag, ctx.cells[c-1].ref
	ctx.releaseRef(r, tag)
	ctx.freeCell(c)
}

func (ctx *Context) releaseRef(r RefH, tag value.Tag) {
	rec := &ctx.refs[r-1]
	rec.count--
	if rec.count != 0 {
		return
	}
	switch tag {
	case value.List:
		ctx.releaseList(rec.listHead)
	case value.Symbol, value.String:
		ctx.releaseSegs(rec.segHead)
	case value.User:
		fin, usr := rec.fin, rec.usr
		if fin != nil {
			fin(usr)
		}
	}
	ctx.freeRef(r)
}

func (ctx *Context) releaseList(head CellH) {
	for head != 0 {
		next := ctx.cells[head-1].next
		ctx.Release(head)
		head = next
	}
}

// releaseOne pops and releases the cell at the head of chain, returning the
// new head — free_obj, used where the caller needs the successor after
// freeing.
func (ctx *Context) releaseOne(c CellH) CellH {
	next := ctx.cells[c-1].next
	ctx.Release(c)
	return next
}

// TakeListPayload detaches a LIST cell's payload chain for apply to
// walk. It decrements c's reference record and frees c's cell outright;
// if the record's count reached zero, the record is freed too and
// unique reports true — the caller is now the sole owner of the
// payload chain and may consume it mutably, freeing each cell as it
// goes. If the record survives, unique is false and the payload is
// still shared: the caller must only read it, producing aliases for
// anything it moves elsewhere.
func (ctx *Context) TakeListPayload(c CellH) (head CellH, unique bool) {
	r := ctx.cells[c-1].ref
	head = ctx.refs[r-1].listHead
	ctx.refs[r-1].count--
	unique = ctx.refs[r-1].count == 0
	if unique {
		ctx.freeRef(r)
	}
	ctx.freeCell(c)
	return head, unique
}
