// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpsaga

import (
	"errors"
	"fmt"

	"github.com/gogama/httpsaga/request"
)

// NoResponse is the RequestError status reserved for a request which
// produced no response at all.
const NoResponse = -1

const noResponseMsg = "Unable to connect to API Server"

// A RequestError reports that a request did not produce a usable
// response.
//
// A Saga creates a RequestError with status NoResponse when its issue
// function returns neither a response nor an error. CheckStatus creates
// one for a response whose status is not 2XX. Errors returned by the
// transport itself reach the failure handler unchanged.
type RequestError struct {
	// Message is a human-readable description.
	Message string
	// Status is the HTTP status code, or NoResponse.
	Status int
	// Response is the raw response. It is never nil; for NoResponse it
	// is an empty Response.
	Response *request.Response
}

// NewRequestError returns a RequestError. A nil resp is replaced with
// an empty Response.
func NewRequestError(message string, status int, resp *request.Response) *RequestError {
	if resp == nil {
		resp = &request.Response{}
	}
	return &RequestError{
		Message:  message,
		Status:   status,
		Response: resp,
	}
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("httpsaga: %s (status %d)", e.Message, e.Status)
}

// StatusCode returns e.Status.
func (e *RequestError) StatusCode() int {
	return e.Status
}

// NoResponse reports whether e describes a request which produced no
// response.
func (e *RequestError) NoResponse() bool {
	return e.Status == NoResponse
}

// IsNoResponse reports whether err, or any error it wraps, is a
// RequestError with status NoResponse.
func IsNoResponse(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.NoResponse()
}

// CheckStatus returns nil if resp has a 2XX status, and otherwise a
// RequestError carrying resp. Success handlers which want non-2XX
// responses treated as failures can return its result.
func CheckStatus(resp *request.Response) error {
	if resp == nil {
		return NewRequestError(noResponseMsg, NoResponse, nil)
	}
	if resp.OK() {
		return nil
	}
	msg := resp.StatusText
	if msg == "" {
		msg = "Unexpected status"
	}
	return NewRequestError(msg, resp.Status, resp)
}
