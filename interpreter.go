// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpsaga

import (
	"context"
	"fmt"
	"runtime/debug"
)

// A Thunk is a deferred computation run by an Interpreter.
type Thunk func(ctx context.Context) (interface{}, error)

// An Interpreter gives a Saga access to the outside world. Every
// suspension point of a saga run goes through one of its methods.
//
// Invoke runs fn and returns its result. It returns when fn does, so a
// saga run is suspended for as long as fn blocks. Invoke must never
// panic: an implementation which can observe a panic in fn must return
// it as an error.
//
// Emit hands an action to the application's dispatch sink. The saga
// does not wait for, or look at, the outcome.
//
// ReadContext returns a snapshot of the ambient application state, or
// nil.
type Interpreter interface {
	Invoke(ctx context.Context, fn Thunk) (interface{}, error)
	Emit(ctx context.Context, a Action)
	ReadContext(ctx context.Context) interface{}
}

// Effects is an Interpreter built from two functions. It runs thunks
// on the calling goroutine. Its zero value is a valid Interpreter
// which drops emitted actions and has no ambient state.
type Effects struct {
	// Dispatch receives emitted actions. If nil, they are dropped.
	Dispatch func(ctx context.Context, a Action)
	// Select returns the ambient state. If nil, the state is nil.
	Select func(ctx context.Context) interface{}
}

// Invoke calls fn(ctx). If fn panics, the panic is recovered and
// returned as a *PanicError.
func (fx *Effects) Invoke(ctx context.Context, fn Thunk) (v interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn(ctx)
}

// Emit calls fx.Dispatch, if set.
func (fx *Effects) Emit(ctx context.Context, a Action) {
	if fx.Dispatch != nil {
		fx.Dispatch(ctx, a)
	}
}

// ReadContext calls fx.Select, if set.
func (fx *Effects) ReadContext(ctx context.Context) interface{} {
	if fx.Select == nil {
		return nil
	}
	return fx.Select(ctx)
}

// A PanicError is a panic recovered by Effects.Invoke.
type PanicError struct {
	// Value is the value passed to panic.
	Value interface{}
	// Stack is the stack trace of the panicking goroutine.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("httpsaga: panic: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
