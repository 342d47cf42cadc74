// Package lifo is the embeddable stack-based interpreter core: a host
// program links this package in, configures byte-at-a-time I/O and a
// donated block budget, then drives Read/Eval/Trace in a loop — the
// same three-call protocol original_source/src/lifo.c exposes as
// lf_read/lf_eval/lf_wipe, reshaped into Go method calls on one
// Context. Everything that actually does the work lives in
// internal/core, internal/reader, internal/eval, internal/builtins and
// internal/trace; this file is purely the public surface a host
// outside this module is meant to import — a facade the original CLI
// application never needed, since it drove its own internals directly
// rather than exposing them as a library.
package lifo

import (
	"github.com/lifovm/lifo/internal/builtins"
	"github.com/lifovm/lifo/internal/core"
	"github.com/lifovm/lifo/internal/eval"
	"github.com/lifovm/lifo/internal/reader"
	"github.com/lifovm/lifo/internal/signal"
	"github.com/lifovm/lifo/internal/trace"
	"github.com/lifovm/lifo/internal/value"
)

// Re-exported types so a host never has to import internal/* itself.
type (
	CellH     = core.CellH
	Tag       = value.Tag
	Kind      = signal.Kind
	Stats     = core.Stats
	Handler   = signal.Handler
	Finalizer = core.Finalizer
	// Native is the inspectable identity of a NATIVE value — its Name
	// field is meaningful to a host (e.g. for a trace or log line); its
	// Fn field exists only because NativeEntry is shared with the
	// evaluator and is not constructible or callable by a host, which
	// has no way to spell its *core.Context parameter type. Hosts
	// register new natives through NewNative/NativeFn below instead.
	Native = core.NativeEntry
)

// NativeFn is the calling convention for a host-registered native: it
// runs with the operand stack already containing its arguments and
// returns the signal to propagate, OK meaning "ran to completion" —
// the public analog of core.NativeFunc, expressed over the facade
// Context instead of the internal one so a host never needs to import
// internal/core to implement one.
type NativeFn func(ctx *Context) Kind

// Value tags, the closed six-case set a value cell can carry. NativeTag
// (rather than Native) avoids colliding with the Native type alias above.
const (
	List      = value.List
	Symbol    = value.Symbol
	String    = value.String
	NativeTag = value.Native
	Number    = value.Number
	User      = value.User
)

// Signal kinds, the closed set used as SetHandler's index.
const (
	OK              = signal.OK
	UnfinishedChunk = signal.UnfinishedChunk
	ParseError      = signal.ParseError
	RuntimeError    = signal.RuntimeError
	OutOfMemory     = signal.OutOfMemory
	StackOverflow   = signal.StackOverflow
	StackUnderflow  = signal.StackUnderflow
	InitError       = signal.InitError
	Other           = signal.Other
)

// Context is the handle a host holds onto one interpreter instance. It
// folds lf_ctx and the lf_chk** read cursor every original caller of
// lf_read/lf_eval/lf_wipe kept locally into a single value, since in
// practice a host owns exactly one read cursor per context: Read
// extends it, Eval runs it without consuming it, and Wipe reclaims it —
// mirroring lf_read/lf_eval/lf_wipe exactly, just as methods instead of
// an out-parameter.
type Context struct {
	core  core.Context
	chunk core.ChunkH
}

// New returns a freshly initialized Context with no donated memory and
// no I/O configured — a host must call MapMemory and ConfigIO before
// Read or Eval can do anything useful, matching lf_init's contract.
func New() *Context {
	c := &Context{}
	c.core.Init()
	return c
}

// Init re-initializes c in place, matching lf_init. Any memory donated
// via MapMemory and any dictionary bindings are discarded; a host that
// wants to keep donated memory across a logical restart should use
// Reset instead.
func (c *Context) Init() {
	c.core.Init()
	c.chunk = 0
}

// Reset drains the hold list without discarding donated memory or
// dictionary bindings, matching lf_reset. The fatal-fallback rule for
// reset ("if the INIT_ERROR handler itself resolves with OK during
// reset, the process exits") has no occasion to fire in this
// translation: every fallible operation here returns its signal
// directly to its own caller rather than unwinding through a shared
// escape point established by Reset, so nothing this method does can
// itself raise. The signal kind and its handler slot are still wired
// (SetHandler(InitError, ...) works) for a host that wants to model the
// same fallback in its own driver loop.
func (c *Context) Reset() {
	c.core.Reset()
}

// ConfigIO installs the byte-at-a-time read/write callbacks Read,
// Eval's signal handlers, and Trace's caller all end up using. A nil
// argument leaves the existing binding untouched, matching lf_cfg_io.
func (c *Context) ConfigIO(read func() byte, write func(byte)) {
	c.core.ConfigIO(read, write)
}

// MapMemory donates n additional blocks to the shared budget, matching
// lf_map_mem with size already expressed in blocks rather than bytes.
// Calling it again from inside an OutOfMemory handler is how a host
// "extends memory" to let a stalled allocation retry.
func (c *Context) MapMemory(n int) {
	c.core.MapMemory(n)
}

// Stats reports the current block accounting, for a host's -stats
// flag or its own OutOfMemory handler.
func (c *Context) Stats() Stats {
	return c.core.Stats()
}

// SetHandler installs hdl as kind's handler, matching lf_signal. Setting
// OK's handler is a no-op, since OK is never raised.
func (c *Context) SetHandler(kind Kind, hdl Handler) {
	c.core.Signals.Set(kind, hdl)
}

// Raise reports a condition through kind's handler, for host code that
// wants to surface its own failures (e.g. a USER finalizer noticing
// corrupt state) through the same channel the interpreter uses
// internally.
func (c *Context) Raise(kind Kind, msg string) Kind {
	return c.core.Raise(kind, msg)
}

// Depth reports how many lists are currently open in the read cursor
// (unterminated "[" tokens), for a host prompt that wants to show
// nesting the way the reference REPL's leading "=" characters do.
func (c *Context) Depth() int {
	n := 0
	if c.chunk == 0 {
		return 0
	}
	for h := c.core.ChunkParent(c.chunk); h != 0; h = c.core.ChunkParent(h) {
		n++
	}
	return n
}

// Read pulls bytes from the configured reader into the cursor until
// end-of-input (the configured reader returning 0) or a raised signal,
// matching lf_read(ctx, &chk, rdat). A single call does not preserve
// any partial token across calls to the next one, the same as the
// original.
func (c *Context) Read() Kind {
	return reader.Read(&c.core, &c.chunk)
}

// Eval runs every top-level form the cursor has accumulated without
// discarding them, matching lf_eval's read-only pass over chk. Call
// Wipe afterward to reclaim the executed forms before the next Read.
// UnfinishedChunk means the most recent Read left a "[" open; the
// reference REPL installs a handler for it that simply returns the
// signal unchanged and skips the Wipe, so the next Read resumes the
// same cursor rather than discarding a program still being typed.
func (c *Context) Eval() Kind {
	return eval.Evaluate(&c.core, c.chunk)
}

// Wipe discards every cell the cursor currently holds — whether from a
// completed read or one abandoned mid-list — and resets it to empty,
// matching lf_wipe(ctx, &chk).
func (c *Context) Wipe() {
	for c.chunk != 0 {
		parent := c.core.ChunkParent(c.chunk)
		c.core.AbandonChunk(c.chunk)
		c.chunk = parent
	}
}

// Trace renders the operand stack bottom-to-top, top rightmost; see
// internal/trace's doc comment for the one deliberate divergence from
// the original's literal traversal order.
func (c *Context) Trace() string {
	return trace.Format(&c.core)
}

// --- stack access ----------------------------------------------------

// Peek returns the cell at depth i (0 = top) without unlinking it.
func (c *Context) Peek(i int) (CellH, Kind) { return c.core.Peek(i) }

// Take unlinks the cell at depth i and holds it alive until the next
// Eval-internal DrainHold (i.e. for the remainder of the native call a
// host-registered builtin is running); outside a native call a host
// should call DrainHold itself once done with what it took, not Release
// the taken cell, which stays linked on the hold list.
func (c *Context) Take(i int) (CellH, Kind) { return c.core.Take(i) }

// Push moves ownership of c onto the top of the operand stack.
func (c *Context) Push(c2 CellH) { c.core.Push(c2) }

// Size reports the current operand stack depth.
func (c *Context) Size() int { return c.core.Size }

// Next returns the cell linked after c in whatever chain currently
// holds it (0 if c is the chain's tail).
func (c *Context) Next(c2 CellH) CellH { return c.core.Next(c2) }

// DrainHold releases every cell a host's own Take calls have
// accumulated on the hold list. Every native call already does this on
// completion; a host driving Take directly between native calls should
// call it explicitly once it's done inspecting what it took.
func (c *Context) DrainHold() { c.core.DrainHold() }

// WriteString writes s one byte at a time through the configured
// writer, the same path Trace's caller and the default signal handlers
// use — for host-registered natives that want to produce output
// through the interpreter's own I/O binding rather than a side channel.
func (c *Context) WriteString(s string) { c.core.WriteString(s) }

// --- value construction ----------------------------------------------

func (c *Context) NewNumber(n float64) (CellH, Kind)  { return c.core.NewNumber(n) }
func (c *Context) NewString(s []byte) (CellH, Kind)   { return c.core.NewString(s) }
func (c *Context) NewSymbol(s []byte) (CellH, Kind)   { return c.core.NewSymbol(s) }
func (c *Context) NewEmptyList() (CellH, Kind)        { return c.core.NewEmptyList() }
func (c *Context) NewUser(data any, fin Finalizer) (CellH, Kind) {
	return c.core.NewUser(data, fin)
}

// NewNative registers fn under name and returns a fresh NATIVE cell
// bound to it. Unlike the nineteen-plus-one builtins (which the reader
// recognizes directly by name and which never touch the dictionary),
// a host-registered native is an ordinary value: push it, bind it with
// ";", or return it — it behaves exactly like any other NATIVE. fn
// always runs against this same Context, so the internal
// *core.Context the evaluator calls it with is never exposed to fn.
func (c *Context) NewNative(name string, fn NativeFn) (CellH, Kind) {
	entry := &core.NativeEntry{Name: name}
	entry.Fn = func(*core.Context) signal.Kind { return fn(c) }
	return c.core.NewNative(entry)
}

// --- value inspection --------------------------------------------------

func (c *Context) TagOf(c2 CellH) Tag           { return c.core.Tag(c2) }
func (c *Context) ToNum(c2 CellH) (float64, Kind) { return c.core.ToNum(c2) }
func (c *Context) ToStr(c2 CellH) ([]byte, Kind) {
	head, sig := c.core.ToStr(c2)
	if sig != signal.OK {
		return nil, sig
	}
	return c.core.SegBytes(head), signal.OK
}
func (c *Context) ToList(c2 CellH) (CellH, Kind) { return c.core.ToList(c2) }
func (c *Context) ToUser(c2 CellH) (any, Kind)    { return c.core.ToUser(c2) }
func (c *Context) ToNative(c2 CellH) (*Native, Kind) { return c.core.ToNative(c2) }

// StrBytes returns a SYMBOL or STRING cell's bytes directly, without
// the tag check ToStr performs — for callers that already know c2's
// tag (e.g. having just matched on TagOf).
func (c *Context) StrBytes(c2 CellH) []byte { return c.core.StrBytes(c2) }

// Equal implements structural equality across the six value tags.
func (c *Context) Equal(a, b CellH) bool { return c.core.Equal(a, b) }

// DeepCopy implements the copy policy: independent for LIST, aliased for
// STRING/SYMBOL/USER, copied-by-value for NUMBER/NATIVE.
func (c *Context) DeepCopy(c2 CellH) (CellH, Kind) { return c.core.DeepCopy(c2) }

// Release decrements c2's reference record, tearing down its payload
// once nothing else refers to it.
func (c *Context) Release(c2 CellH) { c.core.Release(c2) }

// IsBuiltin reports whether name is one of the names the reader
// recognizes as a NATIVE literal at read time rather than a dictionary
// lookup (the nineteen core primitives plus the "uid" domain extension).
func IsBuiltin(name string) bool { return builtins.Lookup(name) != nil }
