// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package encoding

import (
	stdjson "encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		b, err := JSON(map[string]interface{}{"a": "b"})
		require.NoError(t, err)
		assert.Equal(t, `{"a":"b"}`, b)
	})
	t.Run("number", func(t *testing.T) {
		b, err := JSON(map[string]int{"a": 1})
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, b)
	})
	t.Run("sorted keys", func(t *testing.T) {
		b, err := JSON(map[string]interface{}{"z": true, "a": nil})
		require.NoError(t, err)
		assert.Equal(t, `{"a":null,"z":true}`, b)
	})
	t.Run("struct", func(t *testing.T) {
		type login struct {
			User string `json:"user"`
			Keep bool   `json:"keep,omitempty"`
		}
		b, err := JSON(login{User: "ham"})
		require.NoError(t, err)
		assert.Equal(t, `{"user":"ham"}`, b)
	})
	t.Run("string", func(t *testing.T) {
		b, err := JSON(`{"a":1}`)
		require.NoError(t, err)
		assert.Equal(t, `"{\"a\":1}"`, b)
	})
	t.Run("unsupported", func(t *testing.T) {
		b, err := JSON(map[string]interface{}{"ch": make(chan int)})
		assert.Nil(t, b)
		var serr *SerializationError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, "json", serr.Encoder)
		assert.Equal(t, "map[string]interface {}", serr.Type)
		assert.Error(t, serr.Unwrap())
	})
}

func TestForm(t *testing.T) {
	testCases := []struct {
		name     string
		body     interface{}
		expected interface{}
	}{
		{
			name:     "nil",
			expected: "",
		},
		{
			name:     "empty map",
			body:     map[string]interface{}{},
			expected: "",
		},
		{
			name:     "empty fields",
			body:     Fields{},
			expected: "",
		},
		{
			name:     "two pairs",
			body:     map[string]interface{}{"a": "b", "c": "d"},
			expected: "a=b&c=d",
		},
		{
			name:     "declared order",
			body:     Fields{{"c", "d"}, {"a", "b"}},
			expected: "c=d&a=b",
		},
		{
			name:     "string map",
			body:     map[string]string{"y": "2", "x": "1"},
			expected: "x=1&y=2",
		},
		{
			name:     "url.Values",
			body:     url.Values{"ham": {"eggs", "spam"}, "a": {"1"}},
			expected: "a=1&ham=eggs&ham=spam",
		},
		{
			name:     "component escaping",
			body:     Fields{{"q", "a b&c=d/é"}, {"k", "it's (fine)!*~"}},
			expected: "q=a%20b%26c%3Dd%2F%C3%A9&k=it's%20(fine)!*~",
		},
		{
			name:     "scalars",
			body:     Fields{{"n", 42}, {"f", 1.5}, {"t", true}, {"z", nil}},
			expected: "n=42&f=1.5&t=true&z=",
		},
		{
			name:     "typed map",
			body:     map[string]int{"page": 1, "limit": 20},
			expected: "limit=20&page=1",
		},
		{
			name:     "named string keys",
			body:     map[fieldName]bool{"b": false, "a": true},
			expected: "a=true&b=false",
		},
		{
			name:     "typed empty map",
			body:     map[string]float64(nil),
			expected: "",
		},
		{
			name:     "large numbers",
			body:     Fields{{"i", float64(123456789)}, {"m", 1e6}, {"f", float32(16777216)}, {"n", -2.5e20}},
			expected: "i=123456789&m=1000000&f=16777216&n=-250000000000000000000",
		},
		{
			name:     "exponent range",
			body:     Fields{{"big", 1e21}, {"small", 1.5e-7}, {"tiny", 0.000001}, {"zero", 0.0}},
			expected: "big=1e%2B21&small=1.5e-07&tiny=0.000001&zero=0",
		},
		{
			name:     "integer kinds",
			body:     Fields{{"a", int8(-8)}, {"b", uint64(18446744073709551615)}, {"c", count(3)}},
			expected: "a=-8&b=18446744073709551615&c=3",
		},
		{
			name:     "json number",
			body:     Fields{{"n", stdjson.Number("12345678901234567890")}},
			expected: "n=12345678901234567890",
		},
		{
			name:     "pre-encoded string",
			body:     "already=encoded",
			expected: "already=encoded",
		},
		{
			name:     "pre-encoded bytes",
			body:     []byte("x=1"),
			expected: []byte("x=1"),
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual, err := Form(testCase.body)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, actual)
		})
	}
	t.Run("unsupported", func(t *testing.T) {
		actual, err := Form(42)
		assert.Nil(t, actual)
		assert.EqualError(t, err, "httpsaga/encoding: form cannot encode int")
		actual, err = Form(map[int]string{1: "a"})
		assert.Nil(t, actual)
		assert.EqualError(t, err, "httpsaga/encoding: form cannot encode map[int]string")
	})
	t.Run("JSON-decoded payload", func(t *testing.T) {
		var body map[string]interface{}
		require.NoError(t, json.UnmarshalFromString(`{"id":123456789,"page":1000000,"ratio":0.25,"ok":true}`, &body))
		actual, err := Form(body)
		require.NoError(t, err)
		assert.Equal(t, "id=123456789&ok=true&page=1000000&ratio=0.25", actual)
	})
}

type fieldName string

type count uint16

func TestEscapeComponent(t *testing.T) {
	assert.Equal(t, "", EscapeComponent(""))
	assert.Equal(t, "abc-_.~", EscapeComponent("abc-_.~"))
	assert.Equal(t, "%20%2B%3F%23", EscapeComponent(" +?#"))
	assert.Equal(t, "!'()*", EscapeComponent("!'()*"))
}
