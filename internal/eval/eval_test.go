package eval_test

import (
	"testing"

	"github.com/lifovm/lifo/internal/core"
	"github.com/lifovm/lifo/internal/eval"
	"github.com/lifovm/lifo/internal/reader"
	"github.com/lifovm/lifo/internal/signal"
	"github.com/lifovm/lifo/internal/trace"
)

// run reads, evaluates and formats src against a fresh context, the same
// read-eval-trace-wipe cycle cmd/lifo's runReader performs for one shot
// of input.
func run(t *testing.T, src string) string {
	t.Helper()
	ctx := &core.Context{}
	ctx.Init()
	ctx.MapMemory(8192)

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
	out := trace.Format(ctx)
	for chk != 0 {
		parent := ctx.ChunkParent(chk)
		ctx.AbandonChunk(chk)
		chk = parent
	}
	return out
}

func TestAddition(t *testing.T) {
	if got, want := run(t, "1 2 +"), "3\n"; got != want {
		t.Errorf("run(%q) = %q, want %q", "1 2 +", got, want)
	}
}

func TestEmptyListApplyIsNoOp(t *testing.T) {
	if got, want := run(t, "[] apl"), "-empty-\n"; got != want {
		t.Errorf("applying an empty list left %q, want %q", got, want)
	}
}

func TestEqDispatchSelectsBranchByEquality(t *testing.T) {
	if got, want := run(t, `"a" "a" [42] [0] eq`), "42\n"; got != want {
		t.Errorf("equal-branch eq: got %q, want %q", got, want)
	}
	if got, want := run(t, `"a" "b" [42] [0] eq`), "0\n"; got != want {
		t.Errorf("unequal-branch eq: got %q, want %q", got, want)
	}
}

func TestSgn(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"#comment\n5 sgn", "1\n"},
		{"-3.5 sgn", "-1\n"},
		{"0 sgn", "0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := run(t, tt.src); got != tt.want {
				t.Errorf("run(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestDictionaryMostRecentBindingWins(t *testing.T) {
	got := run(t, `[1] "x" ; [2] "x" ; x`)
	if want := "2\n"; got != want {
		t.Errorf("most recent binding of 'x' should win: got %q, want %q", got, want)
	}
}

func TestCopyAtDepth(t *testing.T) {
	// "[1 2 3]" then a filler NUMBER, then "1 cpy" copies the element at
	// depth 1 (the list, since depth 0 is the filler) back onto the top.
	got := run(t, "[1 2 3] 99 1 cpy")
	if want := "[1 2 3] 99 [1 2 3]\n"; got != want {
		t.Errorf("cpy at depth 1: got %q, want %q", got, want)
	}
}

func TestPul(t *testing.T) {
	got := run(t, "[1 2 3] pul")
	if want := "1 2 3 3\n"; got != want {
		t.Errorf("pul: got %q, want %q", got, want)
	}
}

// TestTailRecursiveCountdownTerminates builds a self-referential
// dictionary entry that decrements a NUMBER on the stack until it
// reaches 0, applying itself in tail position through eq/apl each
// iteration (internal/eval's tailNative fast path) so the recursion
// depth never grows the Go call stack, regardless of the countdown's
// starting value.
func TestTailRecursiveCountdownTerminates(t *testing.T) {
	const src = `[0 cpy 0 [] [1 - cnt] eq] "cnt" ; 3 cnt`
	if got, want := run(t, src), "0\n"; got != want {
		t.Errorf("countdown from 3 = %q, want %q (a single 0 left on the stack)", got, want)
	}
}

func TestUnknownSymbolIsRuntimeError(t *testing.T) {
	ctx := &core.Context{}
	ctx.Init()
	ctx.MapMemory(1024)
	src := "nosuchsymbol"
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
		t.Fatalf("Read failed: %v", sig)
	}
	if sig := eval.Evaluate(ctx, chk); sig != signal.RuntimeError {
		t.Errorf("Evaluate(unbound symbol) = %v, want RuntimeError", sig)
	}
}
