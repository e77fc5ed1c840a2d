// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpsaga

// A State is the lifecycle state of one saga execution. An execution
// only ever moves forward: Idle, AwaitingResponse, Dispatching,
// Terminal.
type State int

const (
	// Idle is the state of an execution which has not issued its
	// request yet.
	Idle State = iota
	// AwaitingResponse is the state while the request is in flight.
	AwaitingResponse
	// Dispatching is the state while the outcome is being turned into
	// an action and emitted.
	Dispatching
	// Terminal is the state of a finished execution.
	Terminal
)

var stateNames = []string{
	"Idle",
	"AwaitingResponse",
	"Dispatching",
	"Terminal",
}

// String returns the name of the state.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}
