// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httpsaga turns an application action into an HTTP request, and
the outcome of that request into exactly one new action, without the
caller writing any request plumbing.

Create a Saga from an issue function and two outcome handlers:

	saga := httpsaga.Coordinate(
		httpsaga.Get(func(p httpsaga.Payload) string {
			return "https://api.example.com/users/" + p.Get("id").(string)
		}, httpsaga.WithAccept(httpsaga.ContentTypeJSON)),
		func(ctx context.Context, resp *request.Response) (*httpsaga.Action, error) {
			var user User
			if err := resp.JSON(&user); err != nil {
				return nil, err
			}
			a := httpsaga.NewAction("USER_LOADED", user)
			return &a, nil
		},
		func(ctx context.Context, err error) *httpsaga.Action {
			a := httpsaga.NewAction("USER_FAILED", err.Error())
			return &a
		},
	)
	saga.Interpreter = &httpsaga.Effects{
		Dispatch: store.Dispatch,
		Select:   store.State,
	}
	...
	saga.Run(ctx, httpsaga.Action{Type: "LOAD_USER", Payload: ...})

Each Run issues exactly one request and emits at most one action. A
request error, an empty response, or an error returned by the success
handler all end up in the failure handler; Run itself never fails.

The Get, Post, Put, Delete and Patch helpers build a fresh
request.Builder (see package request) for every action. Bodies are
encoded by the functions in package encoding.

The outside world is reached only through an Interpreter: it runs the
issue function and the success handler, hands emitted actions to the
application, and provides a snapshot of application state. Effects is
a ready-made Interpreter assembled from two plain functions.

To observe runs, install handlers into a HandlerGroup:

	handlers := &httpsaga.HandlerGroup{}
	handlers.PushBack(httpsaga.AfterExecutionEnd, httpsaga.HandlerFunc(
		func(_ httpsaga.Event, e *httpsaga.Execution) {
			log.Printf("%s %s took %s", e.ID, e.Action.Type, e.Duration())
		}),
	)
	saga.Handlers = handlers

Failures are logged with zerolog, and every run is traced with
OpenTelemetry.
*/
package httpsaga
