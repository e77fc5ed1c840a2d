// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the Request Builder and the types around it:
Options (the transport options of a request being built), Transport
(the network call), and Response (its raw result).

A Builder accumulates one request through chained setters and turns it
into one network call:

	resp, err := request.NewBuilder().
		SetMethod("PUT").
		SetURL("https://example.com/users/7").
		SetBody(user).
		SetContentType("application/json").
		AppendEncoder(encoding.JSON).
		Build(ctx)
	...

The body is left untouched until Build, which runs the builder's
encoder pipeline over it exactly once. SetEncoders replaces the
pipeline, AppendEncoder adds to its end.

Headers are overwritten, never merged, by later calls to the same
setter. SetExtraConfig merges arbitrary keys into the options, and
SetInit replaces the options wholesale, discarding everything the
header and method setters built.

Builders are cheap and not safe for concurrent use. Make a new one for
every request. ToResult is a shortcut which builds the request and
flattens the outcome, including failures, into a Result.

HTTPTransport is the stock Transport. It sends requests with a standard
library http.Client (or any other HTTPDoer) and buffers the response
body. Transports are where a request description is validated: a
Builder with a bad method or an unencoded body fails when it is built,
with the error the transport reports.
*/
package request
