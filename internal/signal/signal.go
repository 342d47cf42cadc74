// Package signal implements lifo's single failure channel: a closed set
// of signal kinds, a per-kind handler table, and "escape to the nearest
// public entry" unwinding.
//
// There is no panic/recover here and no goroutine involved. A Kind is
// lifo's error value: OK is the Go-idiomatic zero value meaning
// "continue", matching how a nil error means "no failure". Every
// function in this module that can fail returns a trailing Kind, and
// callers propagate it immediately, the same shape as `if err != nil`.
// This is the "result/option carried through the evaluator" translation
// of the original's setjmp/longjmp.
package signal

import (
	"fmt"

	"github.com/lifovm/lifo/internal/config"
)

// Kind is one of the closed set of signal kinds a Context can raise.
type Kind uint8

const (
	OK Kind = iota
	UnfinishedChunk
	ParseError
	RuntimeError
	OutOfMemory
	StackOverflow
	StackUnderflow
	InitError
	Other
)

var names = [...]string{
	OK:              "ok",
	UnfinishedChunk: "unfinished chunk",
	ParseError:      "parse error",
	RuntimeError:    "runtime error",
	OutOfMemory:     "out of memory",
	StackOverflow:   "stack overflow",
	StackUnderflow:  "stack underflow",
	InitError:       "init error",
	Other:           "other",
}

func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("signal(%d)", k)
}

// Signal pairs a Kind with the short human-readable message the raiser
// supplied. It implements error so host code may treat a non-OK Kind
// returned from the public API as a plain Go error.
type Signal struct {
	Kind Kind
	Msg  string
}

func (s *Signal) Error() string {
	return fmt.Sprintf("signal(%d): %s", s.Kind, s.Msg)
}

// New builds a *Signal for a non-OK kind; raising OK is never meaningful
// (the handler table is indexed by kind-1 and has no OK slot).
func New(kind Kind, msg string) *Signal {
	return &Signal{Kind: kind, Msg: msg}
}

// Handler may resolve a raised signal by returning OK (the condition is
// handled, the caller that raised should retry or continue), or return a
// non-OK kind (possibly the same one) to unwind to the nearest public
// entry. Handlers that need to mutate interpreter state (e.g. donating
// more memory to satisfy OutOfMemory) close over whatever state they
// need — there is no context parameter, unlike the original's
// lf_hdl(ctx, sig, msg), because Go closures make that plumbing
// unnecessary.
type Handler func(kind Kind, msg string) Kind

// Table is the per-context array of handlers, indexed by kind-1 (there
// is no slot for OK). A fresh Table has every slot set to
// DefaultHandler, matching lf_init's loop over ctx->shdl.
type Table [config.SignalTableSize]Handler

// NewTable returns a Table with every handler set to writer-less default
// handling; callers normally replace entries via Set after construction
// once a writer is configured.
func NewTable() Table {
	var t Table
	for i := range t {
		t[i] = DefaultHandler(nil)
	}
	return t
}

// Set installs hdl for kind. Setting OK's handler is a no-op, mirroring
// lf_signal's own guard.
func (t *Table) Set(kind Kind, hdl Handler) {
	if kind == OK {
		return
	}
	t[kind-1] = hdl
}

// Raise invokes the handler registered for kind, returning whatever Kind
// the handler decided on. Callers that cannot retry should propagate a
// non-OK result upward immediately; the allocator's reserve loop is the
// one caller that instead loops back and retries when the result is OK.
func (t *Table) Raise(kind Kind, msg string) Kind {
	hdl := t[kind-1]
	if hdl == nil {
		hdl = DefaultHandler(nil)
	}
	return hdl(kind, msg)
}

// DefaultHandler returns the default signal handler: it writes
// "signal(<n>): <msg>\n" to w (matching lf_dfl_hdl's writestr/writeln
// pair) and returns the same signal unchanged, i.e. "log and unwind". A
// nil w silently drops the message but still unwinds.
func DefaultHandler(w func(string)) Handler {
	return func(kind Kind, msg string) Kind {
		if w != nil {
			w(fmt.Sprintf("signal(%d): %s\n", kind, msg))
		}
		return kind
	}
}
