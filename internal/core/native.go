package core

import "github.com/lifovm/lifo/internal/signal"

// NativeFunc is the calling convention for a NATIVE value: it runs with
// the stack already including its arguments and returns the signal to
// propagate, OK meaning "ran to completion" — native_call's translation.
// Builtins and host-registered natives share this exact signature, so
// internal/builtins needs nothing beyond this package to register the
// standard library of primitives.
type NativeFunc func(ctx *Context) signal.Kind

// NativeEntry is the payload of a NATIVE cell: a name (used by the
// dictionary and by trace output) paired with the function it runs.
// Equality between two NATIVE values compares *NativeEntry pointers, so
// two distinct registrations of the same name are distinct values —
// matching objeq's native-case pointer comparison.
type NativeEntry struct {
	Name string
	Fn   NativeFunc
}

// Finalizer runs once, when a USER value's last reference is released.
// A nil Finalizer is normalized to a no-op by NewUser.
type Finalizer func(data any)
