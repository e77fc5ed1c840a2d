// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpsaga

import (
	"context"
	"time"

	"github.com/gogama/httpsaga/request"
	"github.com/gogama/httpsaga/transient"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	nilCtxMsg      = "httpsaga: nil context"
	instrumentName = "github.com/gogama/httpsaga"
)

// An IssueFunc makes the network call for an inbound action. The state
// parameter is the ambient context read from the interpreter.
//
// Returning a nil response and a nil error is allowed; the saga treats
// it as a failure to reach the server.
type IssueFunc func(ctx context.Context, a Action, state interface{}) (*request.Response, error)

// A SuccessFunc interprets a response. It returns the action to emit,
// or nil to emit nothing. A non-nil error routes the run to the
// failure handler instead.
type SuccessFunc func(ctx context.Context, resp *request.Response) (*Action, error)

// A FailureFunc turns an error into the action to emit, or nil to emit
// nothing.
type FailureFunc func(ctx context.Context, err error) *Action

var emptyHandlers = HandlerGroup{}

// A Saga maps one inbound action to at most one outbound action by way
// of exactly one network call.
//
// Each call to Run is independent: a Saga holds configuration only, so
// it is safe for concurrent use by multiple goroutines provided its
// fields are not changed while runs are in flight, and its issue
// function builds a fresh request.Builder per call.
//
// A run moves through the states Idle, AwaitingResponse, Dispatching
// and Terminal:
//
// 1. The ambient state is read from the interpreter and the request is
// issued through Interpreter.Invoke.
//
// 2. If the request fails, the error goes to the failure handler. If
// it returns no response and no error, a RequestError with status
// NoResponse goes to the failure handler. Otherwise the response goes
// to the success handler, also through Interpreter.Invoke; if that
// returns an error (or panics, with the stock Effects interpreter), the
// error goes to the failure handler. The failure handler also runs
// through Interpreter.Invoke; if it panics, the panic is logged and
// nothing is emitted. There are no retries.
//
// 3. The action produced by whichever handler ran is emitted through
// Interpreter.Emit, unless it is nil.
//
// Every failure is logged before the failure handler runs. No failure
// escapes Run.
//
// Run has no cancellation hook of its own. The context it is given is
// passed to the issue function, and a cancelled context therefore
// surfaces as a request failure.
type Saga struct {
	// Issue makes the network call. It must not be nil.
	Issue IssueFunc
	// Success interprets a response. If nil, a successful run emits
	// nothing.
	Success SuccessFunc
	// Failure interprets an error. If nil, a failed run emits nothing.
	Failure FailureFunc
	// Interpreter provides invocation, dispatch and state reading. If
	// nil, the zero Effects is used, which drops emitted actions.
	Interpreter Interpreter
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a run. If nil, no handlers run.
	Handlers *HandlerGroup
	// Logger receives failure diagnostics. If nil, the zerolog global
	// logger is used.
	Logger *zerolog.Logger
	// Tracer starts a span for each run. If nil, a tracer is obtained
	// from the global OpenTelemetry tracer provider.
	Tracer trace.Tracer
}

// Coordinate returns a Saga with the given issue function and outcome
// handlers. Set the other fields of the returned Saga to change the
// interpreter, handlers, logger or tracer.
func Coordinate(issue IssueFunc, success SuccessFunc, failure FailureFunc) *Saga {
	if issue == nil {
		panic("httpsaga: nil issue function")
	}
	return &Saga{
		Issue:   issue,
		Success: success,
		Failure: failure,
	}
}

// Handler returns a function which runs the saga for an action and
// discards the execution record, suitable for registration with an
// action router.
func (s *Saga) Handler() func(context.Context, Action) {
	return func(ctx context.Context, a Action) {
		s.Run(ctx, a)
	}
}

// Run handles one inbound action and returns the final state of the
// execution. The returned Execution is never nil and is always in the
// Terminal state.
func (s *Saga) Run(ctx context.Context, a Action) *Execution {
	if ctx == nil {
		panic(nilCtxMsg)
	}

	e := &Execution{
		ID:     uuid.NewString(),
		Action: a,
	}

	interp := s.interpreter()
	handlers := s.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}

	ctx, span := s.tracer().Start(ctx, "httpsaga.Run", trace.WithAttributes(
		attribute.String("httpsaga.execution_id", e.ID),
		attribute.String("httpsaga.action", a.Type),
	))
	defer span.End()

	handlers.fire(BeforeExecutionStart, e)
	e.Start = time.Now()

	e.Context = interp.ReadContext(ctx)
	e.State = AwaitingResponse
	handlers.fire(BeforeIssue, e)
	resp, err := s.issue(ctx, interp, e)
	e.Response, e.Err = resp, err
	handlers.fire(AfterIssue, e)

	e.State = Dispatching
	var out *Action
	if err == nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.Status))
		out, err = s.succeed(ctx, interp, resp)
		e.Err = err
	}
	if err != nil {
		s.logFailure(e)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		out = s.fail(ctx, interp, e, err)
	}

	if out != nil {
		e.Emitted = out
		handlers.fire(BeforeDispatch, e)
		interp.Emit(ctx, *out)
	}

	e.State = Terminal
	e.End = time.Now()
	handlers.fire(AfterExecutionEnd, e)
	return e
}

func (s *Saga) issue(ctx context.Context, interp Interpreter, e *Execution) (*request.Response, error) {
	v, err := interp.Invoke(ctx, func(ctx context.Context) (interface{}, error) {
		return s.Issue(ctx, e.Action, e.Context)
	})
	if err != nil {
		return nil, err
	}
	resp, _ := v.(*request.Response)
	if resp == nil {
		return nil, NewRequestError(noResponseMsg, NoResponse, nil)
	}
	return resp, nil
}

func (s *Saga) succeed(ctx context.Context, interp Interpreter, resp *request.Response) (*Action, error) {
	if s.Success == nil {
		return nil, nil
	}
	v, err := interp.Invoke(ctx, func(ctx context.Context) (interface{}, error) {
		return s.Success(ctx, resp)
	})
	if err != nil {
		return nil, err
	}
	out, _ := v.(*Action)
	return out, nil
}

func (s *Saga) fail(ctx context.Context, interp Interpreter, e *Execution, err error) *Action {
	if s.Failure == nil {
		return nil
	}
	v, ferr := interp.Invoke(ctx, func(ctx context.Context) (interface{}, error) {
		return s.Failure(ctx, err), nil
	})
	if ferr != nil {
		l := s.logger()
		l.Error().
			Err(ferr).
			Str("execution_id", e.ID).
			Str("action", e.Action.Type).
			Msg("saga failure handler failed")
		return nil
	}
	out, _ := v.(*Action)
	return out
}

func (s *Saga) logFailure(e *Execution) {
	l := s.logger()
	evt := l.Error().
		Err(e.Err).
		Str("execution_id", e.ID).
		Str("action", e.Action.Type).
		Stringer("category", transient.Categorize(e.Err))
	if status := statusOf(e); status != 0 {
		evt = evt.Int("status", status)
	}
	evt.Msg("saga request failed")
}

func statusOf(e *Execution) int {
	if re, ok := e.Err.(*RequestError); ok {
		return re.Status
	}
	return e.StatusCode()
}

func (s *Saga) interpreter() Interpreter {
	if s.Interpreter == nil {
		return &Effects{}
	}
	return s.Interpreter
}

func (s *Saga) logger() *zerolog.Logger {
	if s.Logger == nil {
		return &log.Logger
	}
	return s.Logger
}

func (s *Saga) tracer() trace.Tracer {
	if s.Tracer == nil {
		return otel.Tracer(instrumentName)
	}
	return s.Tracer
}
