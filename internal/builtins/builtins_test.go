package builtins_test

import (
	"testing"

	"github.com/lifovm/lifo/internal/core"
	"github.com/lifovm/lifo/internal/eval"
	"github.com/lifovm/lifo/internal/reader"
	"github.com/lifovm/lifo/internal/signal"
	"github.com/lifovm/lifo/internal/trace"
)

// run mirrors internal/eval's own test harness: read src fully, evaluate
// it on a fresh context, and return the trace of whatever is left on the
// stack.
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
	return trace.Format(ctx)
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 2 +", "3\n"},
		{"5 3 -", "2\n"},
		{"4 5 *", "20\n"},
		{"10 4 /", "2.5\n"},
		{"10 3 mod", "1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := run(t, tt.src); got != tt.want {
				t.Errorf("run(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`1 is`, `"num"` + "\n"},
		{`"s" is`, `"str"` + "\n"},
		{`[1] is`, `"lst"` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := run(t, tt.src); got != tt.want {
				t.Errorf("run(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestSz(t *testing.T) {
	if got, want := run(t, "1 2 3 sz"), "1 2 3 3\n"; got != want {
		t.Errorf("sz: got %q, want %q", got, want)
	}
}

func TestRfIsNonDestructive(t *testing.T) {
	// rf at depth 0 copies the top element by reference, leaving the
	// original in place underneath its own alias.
	if got, want := run(t, "5 0 rf"), "5 5\n"; got != want {
		t.Errorf("rf: got %q, want %q", got, want)
	}
}

func TestDrp(t *testing.T) {
	if got, want := run(t, "1 2 3 1 drp"), "1 3\n"; got != want {
		t.Errorf("drp depth 1: got %q, want %q", got, want)
	}
}

func TestRolIdentity(t *testing.T) {
	base := run(t, "1 2 3 4 5")
	rotated := run(t, "1 2 3 4 5 2 rol -2 rol")
	if rotated != base {
		t.Errorf("'2 rol -2 rol' is not identity: got %q, want %q", rotated, base)
	}
}

func TestRolZeroIsNoOp(t *testing.T) {
	base := run(t, "1 2 3")
	got := run(t, "1 2 3 0 rol")
	if got != base {
		t.Errorf("'0 rol' changed the stack: got %q, want %q", got, base)
	}
}

// TestWrpThenPulRoundTrips checks that wrapping the top elements into a
// list and immediately unpacking it restores the original stack order
// (wrp puts the old top last in the payload, and pul pushes the payload
// in order, so the old top ends up on top again).
func TestWrpThenPulRoundTrips(t *testing.T) {
	before := run(t, "1 2 3")
	after := run(t, "1 2 3 2 wrp pul 0 drp")
	// "pul" leaves a trailing count (3) that "0 drp" discards,
	// so the remaining three elements can be compared directly.
	if after != before {
		t.Errorf("wrp/pul round trip changed stack order: got %q, want %q", after, before)
	}
}

func TestWrpPayloadOrderIsTopLast(t *testing.T) {
	if got, want := run(t, "1 2 3 2 wrp"), "[1 2 3]\n"; got != want {
		t.Errorf("wrp payload order: got %q, want %q", got, want)
	}
}

func TestPul(t *testing.T) {
	if got, want := run(t, "[1 2 3] pul"), "1 2 3 3\n"; got != want {
		t.Errorf("pul: got %q, want %q", got, want)
	}
}

func TestApl(t *testing.T) {
	if got, want := run(t, "[1 2 +] apl"), "3\n"; got != want {
		t.Errorf("apl: got %q, want %q", got, want)
	}
}

func TestDictionaryRegisterThenFind(t *testing.T) {
	// ";" moves the list into the dictionary, so only the copy "?" pushes
	// is left on the stack.
	if got, want := run(t, `[1 2 3] "x" ; "x" ?`), "[1 2 3]\n"; got != want {
		t.Errorf("register then find: got %q, want %q", got, want)
	}
}

// TestFailedTypeCheckDrainsHold checks that a builtin failing its own
// type check after Take-ing a cell doesn't leak that cell onto the hold
// list: "cpy" expects a NUMBER index on top, so running it against a
// STRING raises RuntimeError from inside ToNum after the STRING has
// already been taken, and that taken cell must not survive the raise.
func TestFailedTypeCheckDrainsHold(t *testing.T) {
	ctx := &core.Context{}
	ctx.Init()
	ctx.MapMemory(8192)
	src := `"x" cpy`
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
		t.Fatalf("Evaluate(%q) = %v, want RuntimeError", src, sig)
	}
	if ctx.Hold != 0 {
		t.Errorf("Hold = %v after a failed type check, want 0 (Raise should drain it)", ctx.Hold)
	}
}

func TestRemoveThenFindIsRuntimeError(t *testing.T) {
	ctx := &core.Context{}
	ctx.Init()
	ctx.MapMemory(8192)
	src := `[1] "x" ; "x" ~ "x" ?`
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
		t.Errorf("Evaluate after removing 'x' then finding it = %v, want RuntimeError", sig)
	}
}
