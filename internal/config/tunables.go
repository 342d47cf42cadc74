// Package config is the single source of truth for lifo's compile-time
// tunables and the builtin-name table. The reader, the builtin table in
// internal/builtins, and the reference host all consult this package instead of repeating
// the numbers or the name list.
package config

const (
	// BlockSize is informational only: the original design describes a
	// host that carves a donated byte buffer into fixed-size blocks
	// "typically three machine words" long. Go's allocator and GC
	// already manage real memory, so this module accounts for the donated heap in
	// block *counts*, not bytes; BlockSize exists so a host that wants
	// to reason in bytes (e.g. to size a donation) has a number to
	// multiply by.
	BlockSize = 24

	// StrBufSize is the usable byte capacity of one string segment,
	// matching LF_STRBUF_SIZE (sizeof(void*) * 2) in the original.
	StrBufSize = 16

	// SymMaxLen is the maximum length of a symbol token, including the
	// builtin-name and number-literal tokens that share the same
	// scanning path. A token of length SymMaxLen-1 is accepted; one of
	// length SymMaxLen raises PARSE_ERROR.
	SymMaxLen = 64

	// SignalTableSize is the number of non-OK signal kinds, i.e. the
	// size of the handler table indexed by kind-1.
	SignalTableSize = 8
)

// BuiltinNames lists the exact bytes bound at initialization, in the
// canonical order, plus "uid" — a domain extension the
// reader and internal/builtins classify exactly like the other
// nineteen: a token matching a builtin name becomes a NATIVE literal at
// read time, never a dictionary lookup. internal/reader classifies a
// token as a builtin before attempting a number or symbol, and
// internal/builtins registers each name's native function from this
// same table so the two can never drift apart.
var BuiltinNames = []string{
	"rol", "cpy", "drp", "wrp", "pul", "apl", ";", "~", "?", "eq", "is",
	"rf", "sz", "+", "-", "*", "/", "mod", "sgn", "uid",
}
