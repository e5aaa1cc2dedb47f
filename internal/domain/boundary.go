package domain

import (
	"fmt"
	"reflect"

	"minitest.dev/runner/pkg/minitest/assert"
)

// UnexpectedPanic wraps a panic value other than an assertion failure that
// escaped a test body.
type UnexpectedPanic struct {
	Value any
}

// Kind returns the dynamic type of the panic value.
func (p *UnexpectedPanic) Kind() string {
	return fmt.Sprintf("%T", p.Value)
}

func (p *UnexpectedPanic) Error() string {
	if err, ok := p.Value.(error); ok {
		return p.Kind() + ": " + err.Error()
	}

	return fmt.Sprintf("%s: %v", p.Kind(), p.Value)
}

func (p *UnexpectedPanic) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

func signalOf(r any) error {
	if failure, ok := r.(*assert.Failure); ok {
		return failure
	}

	return &UnexpectedPanic{Value: r}
}

// invoke calls fn inside a failure boundary and returns the signal that
// escaped it, or nil.
func invoke(fn reflect.Value, args []reflect.Value) (signal error) {
	defer func() {
		if r := recover(); r != nil {
			signal = signalOf(r)
		}
	}()

	fn.Call(args)

	return nil
}
