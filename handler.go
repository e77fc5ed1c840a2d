// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpsaga

import (
	"github.com/rs/zerolog"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in a Saga. A group may be shared by any number of sagas,
// but must not be modified while any of them is running.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("httpsaga: nil handler")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

// PushBackAll adds h to the back of the chain of every event.
func (g *HandlerGroup) PushBackAll(h Handler) {
	for _, evt := range Events() {
		g.PushBack(evt, h)
	}
}

func (g *HandlerGroup) fire(evt Event, e *Execution) {
	i := int(evt)
	if i >= len(g.handlers) {
		return
	}
	for _, h := range g.handlers[i] {
		h.Handle(evt, e)
	}
}

// A Handler handles the occurrence of an event during a saga execution.
//
// Handlers run on the goroutine executing the saga, between its
// suspension points. A slow handler delays the run.
type Handler interface {
	Handle(Event, *Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *Execution) {
	f(evt, e)
}

// LogHandler returns a Handler which writes one debug entry per event
// to l. Install it on every event with PushBackAll to trace runs.
func LogHandler(l zerolog.Logger) Handler {
	return HandlerFunc(func(evt Event, e *Execution) {
		entry := l.Debug()
		if !entry.Enabled() {
			return
		}
		entry = entry.
			Str("execution_id", e.ID).
			Str("action", e.Action.Type).
			Stringer("event", evt).
			Stringer("state", e.State)
		switch evt {
		case AfterIssue:
			if e.Err != nil {
				entry = entry.AnErr("issue_error", e.Err)
			} else {
				entry = entry.Int("status", e.StatusCode())
			}
		case BeforeDispatch:
			entry = entry.Str("emit", e.Emitted.Type)
		case AfterExecutionEnd:
			entry = entry.Dur("duration", e.Duration()).Bool("failed", e.Failed())
		}
		entry.Msg("saga event")
	})
}
