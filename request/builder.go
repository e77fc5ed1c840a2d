// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gogama/httpsaga/encoding"
)

// A Builder accumulates the description of one HTTP request and turns
// it into one network call.
//
// Every setter changes the builder in place and returns it, so calls
// can be chained:
//
//	resp, err := request.NewBuilder().
//		SetMethod("POST").
//		SetURL("https://example.com/items").
//		SetBody(item).
//		SetContentType("application/json").
//		AppendEncoder(encoding.JSON).
//		Build(ctx)
//
// Nothing is validated until Build. An unusable method, URL or body
// surfaces as the error returned by the transport.
//
// A Builder is not safe for concurrent use. Construct it, Build it
// once, and discard it. Build runs the encoder pipeline against the
// stored body and keeps the result, so building the same Builder twice
// encodes the body twice.
//
// The zero value is an empty Builder ready to use.
type Builder struct {
	url       string
	query     interface{}
	body      interface{}
	encoders  []encoding.Encoder
	init      *Options
	transport Transport
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) options() *Options {
	if b.init == nil {
		b.init = NewOptions()
	}
	if b.init.Header == nil {
		b.init.Header = make(http.Header)
	}
	return b.init
}

// SetMethod sets the HTTP method. An empty method means GET.
func (b *Builder) SetMethod(method string) *Builder {
	b.options().Method = method
	return b
}

// SetURL sets the base URL the request is sent to.
func (b *Builder) SetURL(url string) *Builder {
	b.url = url
	return b
}

// SetQuery sets the query parameters appended to the URL at build time.
// The query may be any value accepted by encoding.Form; an empty query
// leaves the URL unchanged.
func (b *Builder) SetQuery(query interface{}) *Builder {
	b.query = query
	return b
}

// SetBody sets the request body. The body is run through the encoder
// pipeline at build time, not before.
func (b *Builder) SetBody(body interface{}) *Builder {
	b.body = body
	return b
}

// SetCredentials sets the credentials mode, one of CredentialsSameOrigin,
// CredentialsInclude or CredentialsOmit.
func (b *Builder) SetCredentials(mode string) *Builder {
	b.options().Credentials = mode
	return b
}

// SetHeader sets a request header, replacing any existing values.
func (b *Builder) SetHeader(name, value string) *Builder {
	b.options().Header.Set(name, value)
	return b
}

// SetContentType sets the Content-Type header.
func (b *Builder) SetContentType(contentType string) *Builder {
	return b.SetHeader("Content-Type", contentType)
}

// SetAccept sets the Accept header.
func (b *Builder) SetAccept(accept string) *Builder {
	return b.SetHeader("Accept", accept)
}

// SetAuthorization sets the Authorization header verbatim, e.g.
// "Bearer abc123".
func (b *Builder) SetAuthorization(auth string) *Builder {
	return b.SetHeader("Authorization", auth)
}

// SetBasicAuth sets the Authorization header to use HTTP Basic
// Authentication with the provided username and password.
func (b *Builder) SetBasicAuth(username, password string) *Builder {
	return b.SetAuthorization("Basic " + basicAuth(username, password))
}

// AddCookie adds a cookie to the request. Per RFC 6265 section 5.4,
// AddCookie does not attach more than one Cookie header field. That
// means all cookies, if any, are written into the same line,
// separated by semicolons.
func (b *Builder) AddCookie(c *http.Cookie) *Builder {
	c2 := &http.Cookie{Name: c.Name, Value: c.Value}
	s := c2.String()
	h := b.options().Header
	if v := h.Get("Cookie"); v != "" {
		h.Set("Cookie", v+"; "+s)
	} else {
		h.Set("Cookie", s)
	}
	return b
}

// SetEncoders replaces the encoder pipeline with encoders.
func (b *Builder) SetEncoders(encoders ...encoding.Encoder) *Builder {
	b.encoders = append([]encoding.Encoder(nil), encoders...)
	return b
}

// AppendEncoder adds enc to the end of the encoder pipeline.
func (b *Builder) AppendEncoder(enc encoding.Encoder) *Builder {
	if enc == nil {
		panic("httpsaga/request: nil encoder")
	}
	b.encoders = append(b.encoders, enc)
	return b
}

// SetExtraConfig shallow-merges extra into the transport options. See
// Options.Merge.
func (b *Builder) SetExtraConfig(extra map[string]interface{}) *Builder {
	b.options().Merge(extra)
	return b
}

// SetInit replaces the transport options wholesale. Everything set so
// far through SetMethod, the header setters, SetCredentials and
// SetExtraConfig is discarded. The URL, query, body and encoders are
// kept. A nil o resets the options to NewOptions.
//
// The builder takes ownership of o; later setters modify it.
func (b *Builder) SetInit(o *Options) *Builder {
	b.init = o
	return b
}

// SetTransport sets the transport used by Build. A nil transport means
// DefaultTransport.
func (b *Builder) SetTransport(t Transport) *Builder {
	b.transport = t
	return b
}

// Init returns the transport options built so far. The returned value
// is owned by the builder.
func (b *Builder) Init() *Options {
	return b.options()
}

// Method returns the HTTP method set so far.
func (b *Builder) Method() string {
	return b.options().Method
}

// URL returns the base URL, without query.
func (b *Builder) URL() string {
	return b.url
}

// Query returns the query parameters.
func (b *Builder) Query() interface{} {
	return b.query
}

// Body returns the current body. After Build it holds the encoded body.
func (b *Builder) Body() interface{} {
	return b.body
}

// Header returns the request headers set so far.
func (b *Builder) Header() http.Header {
	return b.options().Header
}

// Encoders returns a copy of the encoder pipeline.
func (b *Builder) Encoders() []encoding.Encoder {
	return append([]encoding.Encoder(nil), b.encoders...)
}

// Build finalizes the request and makes the network call.
//
// Build runs the encoder pipeline once against the body and stores the
// result back in the builder (a nil body is left nil and never reaches
// the encoders), appends the encoded query to the URL if
// it is not empty, and calls the transport with a copy of the
// transport options. An encoder failure is returned as is (typically an
// *encoding.SerializationError) and no call is made.
//
// The returned Response is raw. A 4XX or 5XX status is not an error.
func (b *Builder) Build(ctx context.Context) (*Response, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	body := b.body
	if body != nil {
		var err error
		body, err = encoding.Compose(b.encoders...)(body)
		if err != nil {
			return nil, err
		}
		b.body = body
	}
	target, err := b.target()
	if err != nil {
		return nil, err
	}
	o := b.options().Clone()
	if body != nil {
		o.Body = body
	}
	t := b.transport
	if t == nil {
		t = DefaultTransport
	}
	return t.Fetch(ctx, target, o)
}

func (b *Builder) target() (string, error) {
	q, err := encoding.Form(b.query)
	if err != nil {
		return "", err
	}
	var qs string
	switch x := q.(type) {
	case string:
		qs = x
	case []byte:
		qs = string(x)
	}
	if qs == "" {
		return b.url, nil
	}
	if strings.Contains(b.url, "?") {
		return b.url + "&" + qs, nil
	}
	return b.url + "?" + qs, nil
}
