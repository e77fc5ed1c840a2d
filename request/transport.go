// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
)

// A Transport makes one network call: it sends the request described
// by url and o, and returns the raw response.
//
// A Transport may return a nil response and a nil error. Callers must
// treat that as a failure to reach the server.
type Transport interface {
	Fetch(ctx context.Context, url string, o *Options) (*Response, error)
}

// The TransportFunc type is an adapter to allow the use of ordinary
// functions as transports.
type TransportFunc func(ctx context.Context, url string, o *Options) (*Response, error)

// Fetch calls f(ctx, url, o).
func (f TransportFunc) Fetch(ctx context.Context, url string, o *Options) (*Response, error) {
	return f(ctx, url, o)
}

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// HTTPTransport is a Transport which sends requests with an HTTPDoer
// and buffers the whole response body. Its zero value is a valid
// transport which uses http.DefaultClient.
//
// Any error returned by Fetch has the type *url.Error.
type HTTPTransport struct {
	// Doer specifies the mechanics of sending HTTP requests and
	// receiving responses. If Doer is nil, http.DefaultClient is used.
	Doer HTTPDoer
}

// DefaultTransport is the Transport used by a Builder which has no
// transport of its own.
var DefaultTransport Transport = &HTTPTransport{}

// Fetch sends the request and reads the response body.
func (t *HTTPTransport) Fetch(ctx context.Context, rawURL string, o *Options) (*Response, error) {
	r, err := o.ToRequest(ctx, rawURL)
	if err != nil {
		return nil, urlErrorWrap(o.Method, rawURL, err)
	}
	resp, err := t.doer().Do(r)
	if err != nil {
		return nil, urlErrorWrap(o.Method, rawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, urlErrorWrap(o.Method, rawURL, err)
	}
	return NewResponse(resp, body), nil
}

// CloseIdleConnections invokes the same method on the transport's
// HTTPDoer, if it has one.
func (t *HTTPTransport) CloseIdleConnections() {
	if ic, ok := t.doer().(interface{ CloseIdleConnections() }); ok {
		ic.CloseIdleConnections()
	}
}

func (t *HTTPTransport) doer() HTTPDoer {
	if t.Doer == nil {
		return http.DefaultClient
	}

	return t.Doer
}

func urlErrorWrap(method, rawURL string, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(method),
		URL: rawURL,
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
