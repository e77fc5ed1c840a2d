// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpsaga

// An Action is a message flowing through an application's state store.
// Sagas consume one inbound action and emit at most one outbound action.
type Action struct {
	// Type identifies the action, e.g. "FETCH_USER" or "SUCCESS".
	Type string `json:"type"`
	// Payload carries the action's data.
	Payload Payload `json:"payload"`
}

// Payload is the data carried by an Action.
type Payload struct {
	// Data is projected onto the request by the Get, Post, Put, Delete
	// and Patch helpers: onto the query for GET, onto the body
	// otherwise. Outbound actions put the interpreted response (or the
	// error) here.
	Data interface{} `json:"data,omitempty"`
	// Meta holds any other fields, for example the path parameters a
	// URLFunc reads.
	Meta map[string]interface{} `json:"meta,omitempty"`
}

// NewAction returns an action of the given type carrying data.
func NewAction(typ string, data interface{}) Action {
	return Action{Type: typ, Payload: Payload{Data: data}}
}

// Get returns the named Meta value, or nil.
func (p Payload) Get(key string) interface{} {
	return p.Meta[key]
}
