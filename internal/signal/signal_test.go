package signal

import (
	"reflect"
	"testing"
)

func TestDefaultHandlerWritesAndUnwinds(t *testing.T) {
	var got string
	hdl := DefaultHandler(func(s string) { got += s })
	if k := hdl(RuntimeError, "boom"); k != RuntimeError {
		t.Fatalf("DefaultHandler returned %v, want RuntimeError unchanged", k)
	}
	want := "signal(3): boom\n"
	if got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
}

func TestDefaultHandlerNilWriterStillUnwinds(t *testing.T) {
	hdl := DefaultHandler(nil)
	if k := hdl(OutOfMemory, "no memory"); k != OutOfMemory {
		t.Errorf("DefaultHandler(nil) = %v, want OutOfMemory unchanged", k)
	}
}

func TestTableSetAndRaise(t *testing.T) {
	tbl := NewTable()
	var called Kind
	tbl.Set(ParseError, func(kind Kind, msg string) Kind {
		called = kind
		return OK
	})
	if got := tbl.Raise(ParseError, "bad token"); got != OK {
		t.Errorf("Raise returned %v, want OK (handler resolved it)", got)
	}
	if called != ParseError {
		t.Errorf("handler invoked with %v, want ParseError", called)
	}
}

func TestTableSetOKIsNoOp(t *testing.T) {
	tbl := NewTable()
	before := tbl
	tbl.Set(OK, func(Kind, string) Kind { return Other })
	// Handler values are not comparable, so compare each slot's function
	// pointer instead.
	for i := range tbl {
		if reflect.ValueOf(tbl[i]).Pointer() != reflect.ValueOf(before[i]).Pointer() {
			t.Error("Set(OK, ...) mutated the table; OK has no slot")
		}
	}
}

func TestSignalErrorString(t *testing.T) {
	s := New(StackUnderflow, "empty stack")
	if s.Kind != StackUnderflow {
		t.Errorf("Kind = %v, want StackUnderflow", s.Kind)
	}
	if got, want := s.Error(), "signal(6): empty stack"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestKindStringUnknown(t *testing.T) {
	if got := Kind(200).String(); got != "signal(200)" {
		t.Errorf("Kind(200).String() = %q, want %q", got, "signal(200)")
	}
}
