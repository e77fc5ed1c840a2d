// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// A Response is the raw result of one request: the status line,
// headers and the fully buffered body. It has not been interpreted, so
// a Response with a 500 status is still a Response.
type Response struct {
	// Status is the HTTP status code, e.g. 200.
	Status int

	// StatusText is the reason phrase, e.g. "OK".
	StatusText string

	// Header contains the response header fields.
	Header http.Header

	// Body is the complete response body. It is never nil for a
	// Response produced by HTTPTransport, but may have zero length.
	Body []byte
}

// NewResponse converts an HTTP response whose body has already been
// read into body.
func NewResponse(r *http.Response, body []byte) *Response {
	if body == nil {
		body = []byte{}
	}
	return &Response{
		Status:     r.StatusCode,
		StatusText: statusText(r),
		Header:     r.Header,
		Body:       body,
	}
}

// OK reports whether the status code is in the 2XX range.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Text returns the body as a string.
func (r *Response) Text() (string, error) {
	return string(r.Body), nil
}

// JSON decodes the body as JSON into v.
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

func statusText(r *http.Response) string {
	prefix := strconv.Itoa(r.StatusCode) + " "
	if strings.HasPrefix(r.Status, prefix) {
		return r.Status[len(prefix):]
	}
	if r.Status != "" {
		return r.Status
	}
	return http.StatusText(r.StatusCode)
}
