// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpsaga

import (
	"context"
	"time"

	"github.com/gogama/httpsaga/request"
)

// An Execution represents the state of a single saga run: one inbound
// action, one request, and at most one emitted action.
//
// An Execution is created when a Saga starts handling an action and is
// updated as the run progresses. It is handed to event handlers, and
// returned by Saga.Run once the run is over. Event handlers may store
// data in an Execution with SetValue, but should treat its exported
// fields as read-only.
type Execution struct {
	// ID uniquely identifies the execution. It appears in log entries
	// and trace spans.
	ID string

	// Action is the inbound action.
	Action Action

	// State is the lifecycle state.
	State State

	// Context is the ambient state snapshot read from the interpreter
	// before the request was issued. It may be nil.
	Context interface{}

	// Response is the raw response of the request. It is nil if the
	// request failed, or has not settled yet.
	Response *request.Response

	// Err is the error routed to the failure handler: the request error,
	// or the error the success handler raised while interpreting the
	// response. It is nil if the run succeeded, or has not settled yet.
	Err error

	// Emitted is the action emitted at the end of the run. It is nil
	// if the outcome handler produced no action.
	Emitted *Action

	// Start is the start time of the execution.
	Start time.Time

	// End is the end time of the execution. It contains the zero value
	// until the execution ends.
	End time.Time

	data context.Context
}

// StatusCode returns the status code of the response. If there is no
// response, 0 is returned.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.Status
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Failed indicates whether the failure handler was (or will be) called.
func (e *Execution) Failed() bool {
	return e.Err != nil
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • it may not be nil;
//
// • it must be comparable;
//
// • it should not be of type string or any other built-in type to avoid
// collisions between different event handlers putting data into the
// same execution.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
