package trace_test

import (
	"testing"

	"github.com/lifovm/lifo/internal/core"
	"github.com/lifovm/lifo/internal/eval"
	"github.com/lifovm/lifo/internal/reader"
	"github.com/lifovm/lifo/internal/signal"
	"github.com/lifovm/lifo/internal/trace"
)

func newCtx(t *testing.T) *core.Context {
	t.Helper()
	ctx := &core.Context{}
	ctx.Init()
	ctx.MapMemory(8192)
	return ctx
}

// feedAndEval re-points ctx's reader at src, reads one chunk, evaluates
// it, then unwinds the chunk, leaving any values it produced on the
// stack. It's used repeatedly against the same ctx to drive a
// format-then-reparse round trip.
func feedAndEval(t *testing.T, ctx *core.Context, src string) {
	t.Helper()
	data := []byte(src)
	i := 0
	ctx.ConfigIO(func() byte {
		if i >= len(data) {
			return 0
		}
		b := data[i]
		i++
		return b
	}, nil)
	var chk core.ChunkH
	if sig := reader.Read(ctx, &chk); sig != signal.OK {
		t.Fatalf("Read(%q) failed: %v", src, sig)
	}
	if sig := eval.Evaluate(ctx, chk); sig != signal.OK {
		t.Fatalf("Evaluate(%q) failed: %v", src, sig)
	}
	for chk != 0 {
		parent := ctx.ChunkParent(chk)
		ctx.AbandonChunk(chk)
		chk = parent
	}
}

func TestFormatEmptyStack(t *testing.T) {
	ctx := newCtx(t)
	if got, want := trace.Format(ctx), "-empty-\n"; got != want {
		t.Errorf("Format(empty) = %q, want %q", got, want)
	}
}

func TestFormatScalars(t *testing.T) {
	ctx := newCtx(t)
	// a bare symbol would be looked up when executed, so the symbol is
	// unpacked from a list with pul and the trailing count dropped.
	feedAndEval(t, ctx, `1 "hi" [sym] pul 0 drp`)
	if got, want := trace.Format(ctx), `1 "hi" sym`+"\n"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatNestedList(t *testing.T) {
	ctx := newCtx(t)
	feedAndEval(t, ctx, "[1 [2 3] 4]")
	if got, want := trace.Format(ctx), "[1 [2 3] 4]\n"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

// TestRoundTripListOfNumbers formats a LIST of NUMBERs, re-reads the
// formatted text back into the same context, and checks the
// reconstructed value is structurally equal to the original.
func TestRoundTripListOfNumbers(t *testing.T) {
	ctx := newCtx(t)
	feedAndEval(t, ctx, "[1 2 3]")
	original := ctx.Stack

	out := trace.Format(ctx)
	feedAndEval(t, ctx, out[:len(out)-1]) // drop the trailing newline

	reconstructed := ctx.Stack
	if !ctx.Equal(reconstructed, original) {
		t.Errorf("round trip of %q did not reproduce the original list", out)
	}
}

func TestRoundTripListOfStringsAndSymbols(t *testing.T) {
	ctx := newCtx(t)
	feedAndEval(t, ctx, `["two" three 1]`)
	original := ctx.Stack

	out := trace.Format(ctx)
	feedAndEval(t, ctx, out[:len(out)-1])

	reconstructed := ctx.Stack
	if !ctx.Equal(reconstructed, original) {
		t.Errorf("round trip of %q did not reproduce the original list", out)
	}
}
