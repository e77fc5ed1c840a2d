// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	h := http.Header{"X-A": {"1"}}
	r := NewResponse(&http.Response{StatusCode: 404, Status: "404 Not Found", Header: h}, nil)
	assert.Equal(t, 404, r.Status)
	assert.Equal(t, "Not Found", r.StatusText)
	assert.Equal(t, h, r.Header)
	assert.Equal(t, []byte{}, r.Body)
	assert.False(t, r.OK())

	r = NewResponse(&http.Response{StatusCode: 299, Status: "custom"}, []byte("x"))
	assert.Equal(t, "custom", r.StatusText)
	assert.True(t, r.OK())

	r = NewResponse(&http.Response{StatusCode: 201}, []byte("x"))
	assert.Equal(t, "Created", r.StatusText)
}

func TestResponse_Text(t *testing.T) {
	s, err := (&Response{Body: []byte("200 OK")}).Text()
	require.NoError(t, err)
	assert.Equal(t, "200 OK", s)
}

func TestResponse_JSON(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, (&Response{Body: []byte(`{"a":3}`)}).JSON(&v))
	assert.Equal(t, 3, v.A)
	assert.Error(t, (&Response{Body: []byte(`{`)}).JSON(&v))
}
