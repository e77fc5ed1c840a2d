// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package encoding contains the body encoders used by request.Builder to
turn a structured request body into a wire-ready one, and the pipeline
that chains them.

An Encoder is a plain function. Two are provided: JSON, which
serializes any JSON-representable value to its textual form, and Form,
which produces an application/x-www-form-urlencoded string.

	enc := encoding.Compose(trimEmpty, encoding.JSON)
	body, err := enc(map[string]interface{}{"a": 1})
	// body == `{"a":1}`

Compose runs its encoders left to right: the first encoder receives the
raw body and each later encoder receives the output of the one before
it. An empty Compose is the identity.

Form needs a deterministic key order. Use Fields when order matters;
Go maps are encoded in sorted key order.

	encoding.Form(encoding.Fields{{"b", 2}, {"a", "x y"}})
	// "b=2&a=x%20y"
*/
package encoding
