// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package encoding

// Compose returns an Encoder which runs encoders left to right, the
// output of each feeding the next. The first error stops the chain and
// is returned as is.
//
// If encoders is empty, the returned Encoder is the identity. Compose
// copies encoders, so later changes to the caller's slice do not affect
// the returned Encoder.
func Compose(encoders ...Encoder) Encoder {
	if len(encoders) == 0 {
		return Identity
	}
	chain := make([]Encoder, len(encoders))
	copy(chain, encoders)
	return func(body interface{}) (interface{}, error) {
		var err error
		for _, enc := range chain {
			body, err = enc(body)
			if err != nil {
				return nil, err
			}
		}
		return body, nil
	}
}

// Identity is the Encoder which returns its input unchanged.
func Identity(body interface{}) (interface{}, error) {
	return body, nil
}
