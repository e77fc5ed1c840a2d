// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpsaga

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Saga to observe or extend its
// executions.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// saga execution starts.
	//
	// When Saga fires BeforeExecutionStart, the execution is non-nil
	// but the only fields that have been set are ID and Action.
	BeforeExecutionStart Event = iota
	// BeforeIssue identifies the event that occurs after the ambient
	// context has been read and before the request is issued.
	//
	// When Saga fires BeforeIssue, the execution's state is
	// AwaitingResponse and its Context field is set.
	BeforeIssue
	// AfterIssue identifies the event that occurs once the request has
	// settled.
	//
	// When Saga fires AfterIssue, exactly one of the execution's
	// Response and Err fields is non-nil.
	AfterIssue
	// BeforeDispatch identifies the event that occurs before the
	// outcome action is emitted.
	//
	// When Saga fires BeforeDispatch, the execution's Emitted field
	// references the action that WILL BE emitted. BeforeDispatch does
	// not fire if the outcome handler produced no action.
	BeforeDispatch
	// AfterExecutionEnd identifies the event that occurs after the
	// execution ends.
	//
	// When Saga fires AfterExecutionEnd, the execution's state is
	// Terminal and its end time is set.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeIssue",
	"AfterIssue",
	"BeforeDispatch",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// saga execution, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeIssue,
		AfterIssue,
		BeforeDispatch,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
