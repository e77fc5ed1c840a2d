// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"testing"

	"github.com/gogama/httpsaga/transient"
	"github.com/stretchr/testify/assert"
)

func TestBuilder_ToResult(t *testing.T) {
	respond := func(resp *Response, err error) Transport {
		return TransportFunc(func(context.Context, string, *Options) (*Response, error) {
			return resp, err
		})
	}
	t.Run("json", func(t *testing.T) {
		res := NewBuilder().
			SetTransport(respond(&Response{Status: 200, StatusText: "OK", Body: []byte(`{"a":[1]}`)}, nil)).
			ToResult(context.Background(), nil)
		assert.Equal(t, Result{
			Status:     200,
			StatusText: "OK",
			Data:       map[string]interface{}{"a": []interface{}{float64(1)}},
		}, res)
	})
	t.Run("text", func(t *testing.T) {
		res := NewBuilder().
			SetTransport(respond(&Response{Status: 500, StatusText: "Internal Server Error", Body: []byte("500 Error")}, nil)).
			ToResult(context.Background(), TextReader)
		assert.Equal(t, 500, res.Status)
		assert.Equal(t, "500 Error", res.Data)
		assert.NoError(t, res.Err)
	})
	t.Run("bytes", func(t *testing.T) {
		res := NewBuilder().
			SetTransport(respond(&Response{Status: 200, Body: []byte("b")}, nil)).
			ToResult(context.Background(), BytesReader)
		assert.Equal(t, []byte("b"), res.Data)
	})
	t.Run("read failure", func(t *testing.T) {
		res := NewBuilder().
			SetTransport(respond(&Response{Status: 200, StatusText: "OK", Body: []byte("not json")}, nil)).
			ToResult(context.Background(), nil)
		assert.Equal(t, 200, res.Status)
		assert.Equal(t, "OK", res.StatusText)
		assert.Nil(t, res.Data)
		assert.Error(t, res.Err)
		assert.Equal(t, transient.Not, res.Category)
	})
	t.Run("rejection", func(t *testing.T) {
		expectedErr := statusErr(503)
		res := NewBuilder().SetTransport(respond(nil, expectedErr)).ToResult(context.Background(), nil)
		assert.Equal(t, Result{Status: 503, Err: expectedErr}, res)
	})
	t.Run("rejection without status", func(t *testing.T) {
		res := NewBuilder().SetTransport(respond(nil, context.Canceled)).ToResult(context.Background(), nil)
		assert.Equal(t, 0, res.Status)
		assert.Same(t, context.Canceled, res.Err)
		assert.Equal(t, transient.Canceled, res.Category)
	})
	t.Run("no response", func(t *testing.T) {
		res := NewBuilder().SetTransport(respond(nil, nil)).ToResult(context.Background(), nil)
		assert.True(t, errors.Is(res.Err, ErrNoResponse))
		assert.Equal(t, transient.NoResponse, res.Category)
	})
}

type statusErr int

func (err statusErr) Error() string   { return "status error" }
func (err statusErr) StatusCode() int { return int(err) }
