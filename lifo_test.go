package lifo_test

import (
	"testing"

	"github.com/lifovm/lifo"
)

func newHost(t *testing.T) *lifo.Context {
	t.Helper()
	c := lifo.New()
	c.MapMemory(8192)
	return c
}

func feedBytes(c *lifo.Context, s string) {
	data := []byte(s)
	i := 0
	c.ConfigIO(func() byte {
		if i >= len(data) {
			return 0
		}
		b := data[i]
		i++
		return b
	}, nil)
}

func runOnce(t *testing.T, c *lifo.Context, src string) string {
	t.Helper()
	feedBytes(c, src)
	if sig := c.Read(); sig != lifo.OK {
		t.Fatalf("Read(%q) = %v, want OK", src, sig)
	}
	if sig := c.Eval(); sig != lifo.OK {
		t.Fatalf("Eval(%q) = %v, want OK", src, sig)
	}
	out := c.Trace()
	c.Wipe()
	return out
}

func TestReadEvalTrace(t *testing.T) {
	c := newHost(t)
	if got, want := runOnce(t, c, "1 2 +"), "3\n"; got != want {
		t.Errorf("runOnce = %q, want %q", got, want)
	}
}

func TestWipeDiscardsUnreadProgram(t *testing.T) {
	c := newHost(t)
	feedBytes(c, "[1 2")
	// Read itself succeeds with the "[" still open; only Eval reports
	// UnfinishedChunk.
	if sig := c.Read(); sig != lifo.OK {
		t.Fatalf("Read(unfinished) = %v, want OK", sig)
	}
	if got := c.Depth(); got != 1 {
		t.Fatalf("Depth() while one '[' is open = %d, want 1", got)
	}
	c.Wipe()
	if got := c.Depth(); got != 0 {
		t.Errorf("Depth() after Wipe = %d, want 0", got)
	}
}

func TestStatsAccounting(t *testing.T) {
	c := newHost(t)
	before := c.Stats()
	runOnce(t, c, "1 2 + 0 drp")
	after := c.Stats()
	if after.Remaining != before.Remaining {
		t.Errorf("Remaining changed from %d to %d across a read-eval-wipe cycle with nothing left on the stack", before.Remaining, after.Remaining)
	}
}

func TestSetHandlerOverridesDefault(t *testing.T) {
	c := newHost(t)
	var seen lifo.Kind
	c.SetHandler(lifo.RuntimeError, func(kind lifo.Kind, msg string) lifo.Kind {
		seen = kind
		return kind
	})
	feedBytes(c, "nosuchsymbol")
	if sig := c.Read(); sig != lifo.OK {
		t.Fatalf("Read failed: %v", sig)
	}
	if sig := c.Eval(); sig != lifo.RuntimeError {
		t.Fatalf("Eval(unbound symbol) = %v, want RuntimeError", sig)
	}
	if seen != lifo.RuntimeError {
		t.Errorf("custom handler saw %v, want RuntimeError", seen)
	}
}

// TestNewNativeRegistersAHostBuiltin pushes a host-defined native onto
// the stack, binds it under a name with ";", then calls it by name from
// a later program exactly like one of the nineteen built-in primitives.
func TestNewNativeRegistersAHostBuiltin(t *testing.T) {
	c := newHost(t)

	double := func(ctx *lifo.Context) lifo.Kind {
		raw, sig := ctx.Take(0)
		if sig != lifo.OK {
			return sig
		}
		n, sig := ctx.ToNum(raw)
		if sig != lifo.OK {
			return sig
		}
		out, sig := ctx.NewNumber(n * 2)
		if sig != lifo.OK {
			return sig
		}
		ctx.Push(out)
		return lifo.OK
	}

	nat, sig := c.NewNative("dbl", double)
	if sig != lifo.OK {
		t.Fatalf("NewNative failed: %v", sig)
	}
	c.Push(nat)
	name, sig := c.NewString([]byte("dbl"))
	if sig != lifo.OK {
		t.Fatalf("NewString failed: %v", sig)
	}
	c.Push(name)
	runOnce(t, c, ";")

	if got, want := runOnce(t, c, "21 dbl"), "42\n"; got != want {
		t.Errorf("calling a host-registered native: got %q, want %q", got, want)
	}
}

func TestIsBuiltinRecognizesCoreNamesOnly(t *testing.T) {
	if !lifo.IsBuiltin("rol") {
		t.Error("IsBuiltin(\"rol\") = false, want true")
	}
	if !lifo.IsBuiltin("uid") {
		t.Error("IsBuiltin(\"uid\") = false, want true")
	}
	if lifo.IsBuiltin("dbl") {
		t.Error("IsBuiltin(\"dbl\") = true, want false (not a core primitive)")
	}
}
