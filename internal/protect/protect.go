// Package protect runs a procedure so that a panic inside it comes back to
// the caller as a value instead of unwinding the whole test run.
//
// The runner invokes every test sub-step (setup and body, teardown, journal
// restore) through this package. The executor itself never records a
// failure; it only reports whether the procedure completed.
package protect

import (
	"fmt"
	"runtime/debug"
)

// aborted is the panic value raised by Abort.
type aborted struct{}

// Abort stops the procedure currently running under Run or Call.
//
// It is used after a failure has already been reported, so the runner does
// not print anything further for an aborted step. Calling Abort outside a
// protected procedure panics like any other panic.
func Abort() {
	panic(aborted{})
}

// Panic describes a protected procedure that did not complete.
type Panic struct {
	// Value is whatever was passed to panic.
	Value any

	// Stack is the goroutine stack captured at the point of recovery.
	// Empty for Abort.
	Stack []byte
}

// Aborted reports whether the procedure stopped through Abort rather than
// an unexpected panic.
func (p *Panic) Aborted() bool {
	_, ok := p.Value.(aborted)
	return ok
}

// Error implements the error interface so a Panic can be logged or wrapped.
func (p *Panic) Error() string {
	if p.Aborted() {
		return "aborted"
	}
	return fmt.Sprintf("panic: %v", p.Value)
}

// Run invokes fn and returns nil if it ran to completion, or the recovered
// panic if it did not. A nil fn completes immediately.
func Run(fn func()) (p *Panic) {
	if fn == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			p = &Panic{Value: r}
			if !p.Aborted() {
				p.Stack = debug.Stack()
			}
		}
	}()

	fn()
	return nil
}

// Call invokes fn and reports whether it ran to completion.
func Call(fn func()) bool {
	return Run(fn) == nil
}
