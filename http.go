// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpsaga

import (
	"context"

	"github.com/gogama/httpsaga/encoding"
	"github.com/gogama/httpsaga/request"
)

// Content types understood by WithContentType.
const (
	ContentTypeJSON      = "application/json"
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeMultipart = "multipart/form-data"
)

// A URLFunc computes the request URL from an inbound action's payload.
type URLFunc func(p Payload) string

// StaticURL returns a URLFunc which always returns url.
func StaticURL(url string) URLFunc {
	return func(Payload) string { return url }
}

// An Option configures the requests made by an IssueFunc returned from
// Get, Post, Put, Delete or Patch.
type Option func(*helperConfig)

type helperConfig struct {
	contentType string
	accept      string
	auth        string
	credentials string
	encoders    []encoding.Encoder
	init        *request.Options
	extra       []map[string]interface{}
	transport   request.Transport
	customize   []func(*request.Builder)
}

// WithContentType sets the Content-Type header. For ContentTypeJSON and
// ContentTypeForm, the matching encoder is also appended to the end of
// the encoder pipeline, after any encoders set with WithEncoders.
func WithContentType(contentType string) Option {
	return func(c *helperConfig) { c.contentType = contentType }
}

// WithAccept sets the Accept header.
func WithAccept(accept string) Option {
	return func(c *helperConfig) { c.accept = accept }
}

// WithAuthToken sets the Authorization header verbatim.
func WithAuthToken(token string) Option {
	return func(c *helperConfig) { c.auth = token }
}

// WithCredentials sets the credentials mode.
func WithCredentials(mode string) Option {
	return func(c *helperConfig) { c.credentials = mode }
}

// WithEncoders sets the body encoder pipeline.
func WithEncoders(encoders ...encoding.Encoder) Option {
	return func(c *helperConfig) {
		c.encoders = append([]encoding.Encoder(nil), encoders...)
	}
}

// WithInit replaces the transport options of every request with a copy
// of o. As with request.Builder.SetInit, the method, headers and
// credentials the helper would otherwise set are discarded.
func WithInit(o *request.Options) Option {
	return func(c *helperConfig) { c.init = o }
}

// WithExtraConfig merges extra into the transport options of every
// request. See request.Options.Merge.
func WithExtraConfig(extra map[string]interface{}) Option {
	return func(c *helperConfig) { c.extra = append(c.extra, extra) }
}

// WithTransport sets the transport. The default is
// request.DefaultTransport.
func WithTransport(t request.Transport) Option {
	return func(c *helperConfig) { c.transport = t }
}

// WithBuilder registers a function which may adjust each request
// builder just before it is built.
func WithBuilder(f func(*request.Builder)) Option {
	return func(c *helperConfig) { c.customize = append(c.customize, f) }
}

// Get returns an IssueFunc which sends a GET to the URL computed by
// urlFn. The inbound action's Payload.Data becomes the query.
func Get(urlFn URLFunc, opts ...Option) IssueFunc {
	return helper("GET", urlFn, opts)
}

// Post returns an IssueFunc which sends a POST to the URL computed by
// urlFn. The inbound action's Payload.Data becomes the body.
func Post(urlFn URLFunc, opts ...Option) IssueFunc {
	return helper("POST", urlFn, opts)
}

// Put returns an IssueFunc which sends a PUT to the URL computed by
// urlFn. The inbound action's Payload.Data becomes the body.
func Put(urlFn URLFunc, opts ...Option) IssueFunc {
	return helper("PUT", urlFn, opts)
}

// Delete returns an IssueFunc which sends a DELETE to the URL computed
// by urlFn. The inbound action's Payload.Data becomes the body.
func Delete(urlFn URLFunc, opts ...Option) IssueFunc {
	return helper("DELETE", urlFn, opts)
}

// Patch returns an IssueFunc which sends a PATCH to the URL computed by
// urlFn. The inbound action's Payload.Data becomes the body.
func Patch(urlFn URLFunc, opts ...Option) IssueFunc {
	return helper("PATCH", urlFn, opts)
}

func helper(method string, urlFn URLFunc, opts []Option) IssueFunc {
	if urlFn == nil {
		panic("httpsaga: nil URL function")
	}
	var c helperConfig
	for _, opt := range opts {
		opt(&c)
	}
	return func(ctx context.Context, a Action, _ interface{}) (*request.Response, error) {
		return c.builder(method, urlFn, a).Build(ctx)
	}
}

func (c *helperConfig) builder(method string, urlFn URLFunc, a Action) *request.Builder {
	b := request.NewBuilder().
		SetMethod(method).
		SetURL(urlFn(a.Payload))
	if method == "GET" {
		b.SetQuery(a.Payload.Data)
	} else {
		b.SetBody(a.Payload.Data)
	}
	if c.credentials != "" {
		b.SetCredentials(c.credentials)
	}
	if c.contentType != "" {
		b.SetContentType(c.contentType)
	}
	if c.accept != "" {
		b.SetAccept(c.accept)
	}
	if c.auth != "" {
		b.SetAuthorization(c.auth)
	}
	b.SetEncoders(c.encoders...)
	switch c.contentType {
	case ContentTypeJSON:
		b.AppendEncoder(encoding.JSON)
	case ContentTypeForm:
		b.AppendEncoder(encoding.Form)
	}
	if c.init != nil {
		b.SetInit(c.init.Clone())
	}
	for _, extra := range c.extra {
		b.SetExtraConfig(extra)
	}
	b.SetTransport(c.transport)
	for _, f := range c.customize {
		f(b)
	}
	return b
}
