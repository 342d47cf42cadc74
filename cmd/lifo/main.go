// Command lifo is the reference host for the interpreter core in the
// root lifo package: a REPL when run with no arguments, a one-shot file
// executor when given a path, and other arities print usage — the
// same three-way dispatch original_source/src/lifo.c's LF_STANDALONE
// main() implements, reshaped into the panic-recover-wrapped,
// flag-parsing style of cmd/funxy/main.go.
package main

import (
	"bufio"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	_ "modernc.org/sqlite"

	"github.com/lifovm/lifo"
	"github.com/lifovm/lifo/internal/config"
)

// version mirrors LF_VERSION's role: a short identifier the startup
// banner prints, not a semantic-versioning promise.
const version = "1.0"

// defaultBlocks sizes the donated heap the way the reference host's
// `static char heap[64000]` does, expressed in blocks rather than
// bytes (see internal/config.BlockSize's doc comment on why this
// translation accounts in block counts).
const defaultBlocks = 64000 / config.BlockSize

var (
	historyPath = flag.String("history", "", "log REPL input and results to a sqlite database at this path")
	statsFlag   = flag.Bool("stats", false, "print block-accounting stats after every evaluation")
	blocks      = flag.Int("blocks", defaultBlocks, "number of blocks to donate to the interpreter's arena")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "this is a bug. please report it.")
			os.Exit(1)
		}
	}()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-stats] [-history path] [-blocks n] [file]\n", filepath.Base(os.Args[0]))
	}
	flag.Parse()
	args := flag.Args()
	if len(args) > 1 {
		flag.Usage()
		os.Exit(2)
	}

	var hist *history
	if *historyPath != "" {
		h, err := openHistory(*historyPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to open history database '%s': %s\n", *historyPath, err)
			os.Exit(1)
		}
		defer h.Close()
		hist = h
	}

	ctx := lifo.New()
	ctx.MapMemory(*blocks)
	ctx.ConfigIO(nil, stdoutWriter())

	preload(ctx, "lib.lf")

	fmt.Printf("lifo v%s\n", version)

	switch len(args) {
	case 0:
		repl(ctx, hist)
	case 1:
		dofile(ctx, args[0])
		fmt.Print(ctx.Trace())
	}
}

// stdoutWriter adapts os.Stdout to the one-byte-at-a-time writer
// ConfigIO expects, buffered the way the reference writefn's raw
// fputc calls are under the hood.
func stdoutWriter() func(byte) {
	w := bufio.NewWriter(os.Stdout)
	return func(b byte) {
		w.WriteByte(b)
		if b == '\n' {
			w.Flush()
		}
	}
}

// preload runs a companion script before the REPL or file starts,
// matching dofile(ctx, "lib.lf") in the reference main(); a missing
// file is silently tolerated rather than reported, since an embedding
// host commonly has no companion script at all.
func preload(ctx *lifo.Context, path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	runReader(ctx, f)
}

// dofile executes a single file in its entirety, matching the
// reference dofile: one Read call slurps the whole stream (end-of-file
// is the sentinel a plain *os.File reader naturally produces), one
// Eval runs it, then Wipe reclaims it.
func dofile(ctx *lifo.Context, path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("error: failed on load '%s' file!\n", path)
		os.Exit(1)
	}
	defer f.Close()
	runReader(ctx, f)
}

func runReader(ctx *lifo.Context, r io.Reader) {
	br := bufio.NewReader(r)
	ctx.ConfigIO(func() byte {
		b, err := br.ReadByte()
		if err != nil {
			return 0
		}
		return b
	}, nil)
	if sig := ctx.Read(); sig != lifo.OK {
		return
	}
	if sig := ctx.Eval(); sig != lifo.OK {
		ctx.Wipe()
		return
	}
	ctx.Wipe()
}

// repl runs the interactive loop, a translation of the reference
// repl(): an UnfinishedChunk from Eval means a "[" is still open, so
// input keeps accumulating in the same cursor rather than being
// wiped; any other non-OK result wipes and starts over; prompt nesting
// mirrors the reference's leading "=" characters via Depth. One
// deliberate departure: the reference repl() has no exit condition at
// all and busy-loops re-reading an exhausted stdin forever; this
// version evaluates whatever was read up to end-of-input once, then
// returns, since a CLI that never terminates on EOF is a liability a
// library's reference host doesn't need to keep.
func repl(ctx *lifo.Context, hist *history) {
	ctx.SetHandler(lifo.UnfinishedChunk, func(kind lifo.Kind, _ string) lifo.Kind { return kind })

	stdin := bufio.NewReader(os.Stdin)
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	eof := false
	var consumed []byte // bytes Read has pulled since the last reset, for the history log

	ctx.ConfigIO(func() byte {
		b, err := stdin.ReadByte()
		if err != nil {
			eof = true
			return 0
		}
		if b == '\n' {
			return 0
		}
		consumed = append(consumed, b)
		return b
	}, nil)

	for !eof {
		if interactive {
			for n := ctx.Depth(); n > 0; n-- {
				fmt.Print("=")
			}
			fmt.Print("> ")
		}

		consumed = consumed[:0]
		sig := ctx.Read()
		if sig != lifo.OK {
			// the reference REPL flushes the rest of the offending
			// line on a read error so a parse failure partway through
			// a token doesn't leave its tail to be misread as the
			// start of the next one.
			if drainLine(stdin) {
				eof = true
			}
			ctx.Wipe()
			continue
		}

		switch sig := ctx.Eval(); sig {
		case lifo.OK:
			out := ctx.Trace()
			fmt.Print(out)
			if hist != nil {
				hist.record(string(consumed), out)
			}
			if *statsFlag {
				printStats(ctx)
			}
			ctx.Wipe()
		case lifo.UnfinishedChunk:
			// keep the cursor open; the next Read resumes it
		default:
			ctx.Wipe()
		}
	}
}

// drainLine discards input through the next newline (or end of input,
// reporting true in that case), the portable fflush(stdin) the
// reference repl() performs after a failed lf_read.
func drainLine(stdin *bufio.Reader) (eof bool) {
	for {
		b, err := stdin.ReadByte()
		if err != nil {
			return true
		}
		if b == '\n' {
			return false
		}
	}
}

func printStats(ctx *lifo.Context) {
	s := ctx.Stats()
	fmt.Printf("blocks: %s remaining, %s cells, %s refs, %s segs, %s chunks\n",
		humanize.Comma(int64(s.Remaining)),
		humanize.Comma(int64(s.Cells)),
		humanize.Comma(int64(s.Refs)),
		humanize.Comma(int64(s.Segs)),
		humanize.Comma(int64(s.Chunks)),
	)
}

// history logs each top-level REPL evaluation to a sqlite database, so
// a host can review a session after the fact without keeping the
// terminal's own scrollback.
type history struct {
	db *sql.DB
}

func openHistory(path string) (*history, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	const schema = `CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input TEXT NOT NULL,
		result TEXT NOT NULL,
		ts INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &history{db: db}, nil
}

func (h *history) record(input, result string) {
	_, err := h.db.Exec(`INSERT INTO history (input, result, ts) VALUES (?, ?, ?)`,
		input, result, time.Now().Unix())
	if err != nil {
		fmt.Fprintf(os.Stderr, "history: %s\n", err)
	}
}

func (h *history) Close() error {
	return h.db.Close()
}
