// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const (
	nilCtxMsg = "httpsaga/request: nil context"
)

// Credentials modes. The mode controls whether credentials (cookies and
// the Authorization header) ride along with a request.
const (
	// CredentialsSameOrigin sends credentials as set on the request.
	// It is the default.
	CredentialsSameOrigin = "same-origin"
	// CredentialsInclude sends credentials as set on the request.
	CredentialsInclude = "include"
	// CredentialsOmit strips the Cookie and Authorization headers
	// before the request is sent.
	CredentialsOmit = "omit"
)

// Keys recognized by Options.Merge. Any other key is stored in
// Options.Extra.
const (
	KeyMethod      = "method"
	KeyCredentials = "credentials"
	KeyBody        = "body"
	KeyHeaders     = "headers"
)

// Options holds the transport options of a request being built: all
// that a Transport needs besides the URL.
//
// Options mirrors the structure of the lower-level http.Request where
// possible. Body is left as an interface{} because it holds whatever
// the builder's encoder pipeline produced; it is only converted into
// bytes, with BodyBytes, when a request is made.
type Options struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	// An empty string means GET.
	Method string

	// Header contains the request header fields to be sent.
	Header http.Header

	// Body is the encoded request body. A nil body indicates no request
	// body should be sent.
	Body interface{}

	// Credentials is one of CredentialsSameOrigin, CredentialsInclude,
	// or CredentialsOmit. An empty string means CredentialsSameOrigin.
	Credentials string

	// Extra holds transport-specific options a Transport may choose to
	// honour. HTTPTransport ignores it.
	Extra map[string]interface{}
}

// NewOptions returns empty options with the default credentials mode.
func NewOptions() *Options {
	return &Options{
		Header:      make(http.Header),
		Credentials: CredentialsSameOrigin,
	}
}

// Clone returns a copy of o whose Header and Extra may be modified
// without affecting o. Body is copied shallowly.
func (o *Options) Clone() *Options {
	o2 := new(Options)
	*o2 = *o
	o2.Header = o.Header.Clone()
	if o2.Header == nil {
		o2.Header = make(http.Header)
	}
	if o.Extra != nil {
		o2.Extra = make(map[string]interface{}, len(o.Extra))
		for k, v := range o.Extra {
			o2.Extra[k] = v
		}
	}
	return o2
}

// Merge shallow-merges extra into o. Later calls win on conflict.
//
// The keys "method", "credentials", "body" and "headers" replace the
// matching field when the value has a usable type (string for method
// and credentials; http.Header or map[string]string for headers). The
// headers value replaces the whole header set rather than being merged
// into it. Every other key, and a recognized key whose value has an
// unusable type, is stored in Extra.
func (o *Options) Merge(extra map[string]interface{}) {
	for k, v := range extra {
		switch k {
		case KeyMethod:
			if s, ok := v.(string); ok {
				o.Method = s
				continue
			}
		case KeyCredentials:
			if s, ok := v.(string); ok {
				o.Credentials = s
				continue
			}
		case KeyBody:
			o.Body = v
			continue
		case KeyHeaders:
			switch h := v.(type) {
			case http.Header:
				o.Header = h.Clone()
				continue
			case map[string]string:
				o.Header = make(http.Header, len(h))
				for name, value := range h {
					o.Header.Set(name, value)
				}
				continue
			}
		}
		if o.Extra == nil {
			o.Extra = make(map[string]interface{})
		}
		o.Extra[k] = v
	}
}

// ToRequest creates the HTTP request described by o and url. The
// context of the new request is set to ctx, which may not be nil.
//
// ToRequest is where a request description meets the wire, so this is
// where it is validated: the method must be an HTTP token, header
// fields must be well formed, the URL must parse, and the body must be
// one of the types accepted by BodyBytes.
func (o *Options) ToRequest(ctx context.Context, url string) (*http.Request, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	method := o.Method
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("httpsaga/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	header := o.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	for name, values := range header {
		if !httpguts.ValidHeaderFieldName(name) {
			return nil, fmt.Errorf("httpsaga/request: invalid header field name %q", name)
		}
		for _, value := range values {
			if !httpguts.ValidHeaderFieldValue(value) {
				return nil, fmt.Errorf("httpsaga/request: invalid header field value for %q", name)
			}
		}
	}
	if o.Credentials == CredentialsOmit {
		header.Del("Cookie")
		header.Del("Authorization")
	}
	b, err := BodyBytes(o.Body)
	if err != nil {
		return nil, err
	}

	r, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}
	r.URL = u
	r.Host = u.Host
	r.Header = header
	if len(b) > 0 {
		r.Body = ioutil.NopCloser(bytes.NewReader(b))
		r.GetBody = func() (io.ReadCloser, error) {
			return ioutil.NopCloser(bytes.NewReader(b)), nil
		}
		r.ContentLength = int64(len(b))
	}
	return r, nil
}

// basicAuth is lifted verbatim from net/http/client.go.
//
// See 2 (end of page 4) https://www.ietf.org/rfc/rfc2617.txt
// "To receive authorization, the client sends the userid and password,
// separated by a single colon (":") character, within a base64
// encoded string in the credentials."
// It is not meant to be urlencoded.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

// validMethod reports whether method is an RFC 7230 token. The empty
// string is never passed in, as it is interpreted as "GET".
func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
