// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"

	"github.com/gogama/httpsaga/transient"
)

// ErrNoResponse is reported when a transport returns neither a
// response nor an error.
var ErrNoResponse error = noResponse{}

type noResponse struct{}

func (noResponse) Error() string    { return "httpsaga/request: no response" }
func (noResponse) NoResponse() bool { return true }

// A BodyReader extracts the interesting part of a response body.
type BodyReader func(r *Response) (interface{}, error)

// JSONReader decodes the body as JSON into a generic value.
func JSONReader(r *Response) (interface{}, error) {
	var v interface{}
	if err := r.JSON(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// TextReader returns the body as a string.
func TextReader(r *Response) (interface{}, error) {
	return r.Text()
}

// BytesReader returns the body bytes.
func BytesReader(r *Response) (interface{}, error) {
	return r.Body, nil
}

// A Result is the flattened outcome of ToResult. Either Data or Err is
// set, never both.
type Result struct {
	// Status is the HTTP status code. If the request failed before a
	// response was received it is taken from Err where possible (see
	// ToResult), otherwise zero.
	Status int
	// StatusText is the HTTP reason phrase.
	StatusText string
	// Data is the value produced by the BodyReader.
	Data interface{}
	// Err is the transport error or body read error.
	Err error
	// Category is the transience category of Err.
	Category transient.Category
}

// ToResult builds the request and flattens the outcome into a Result.
// A nil reader means JSONReader.
//
// If the body cannot be read, the Result carries Status and StatusText
// from the response and the read error in Err. If the request itself
// fails, Result.Err is that error and Result.Status is taken from the
// error's StatusCode method, if it has one.
func (b *Builder) ToResult(ctx context.Context, reader BodyReader) Result {
	if reader == nil {
		reader = JSONReader
	}
	resp, err := b.Build(ctx)
	if err == nil && resp == nil {
		err = ErrNoResponse
	}
	if err != nil {
		res := Result{Err: err, Category: transient.Categorize(err)}
		var sc statusCoder
		if errors.As(err, &sc) {
			res.Status = sc.StatusCode()
		}
		return res
	}
	res := Result{Status: resp.Status, StatusText: resp.StatusText}
	if res.Data, res.Err = reader(resp); res.Err != nil {
		res.Data = nil
		res.Category = transient.Categorize(res.Err)
	}
	return res
}

type statusCoder interface {
	StatusCode() int
}
