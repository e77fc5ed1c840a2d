// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"io"
	"io/ioutil"
)

// An UnencodedBodyError is returned by BodyBytes for a body value which
// has no wire form, typically a map or struct which no encoder turned
// into text.
type UnencodedBodyError struct {
	// Type is the Go type of the offending body.
	Type string
}

func (e *UnencodedBodyError) Error() string {
	return fmt.Sprintf("httpsaga/request: body of type %s is not encoded "+
		"(install an encoder, or use nil, string, []byte or io.Reader)", e.Type)
}

// BodyBytes returns the bytes sent on the wire for an encoded body:
// nil for nil, the bytes of a string or []byte, and the whole contents
// of an io.Reader. A reader which is also an io.Closer is closed
// whether or not reading succeeded; the read error takes precedence
// over the close error.
//
// Any other type results in an *UnencodedBodyError.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.Reader:
		return readAll(x)
	default:
		return nil, &UnencodedBodyError{Type: fmt.Sprintf("%T", body)}
	}
}

func readAll(r io.Reader) ([]byte, error) {
	b, err := ioutil.ReadAll(r)
	if c, ok := r.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
