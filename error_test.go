// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpsaga

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogama/httpsaga/request"
	"github.com/gogama/httpsaga/transient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestError(t *testing.T) {
	t.Run("nil response", func(t *testing.T) {
		err := NewRequestError(noResponseMsg, NoResponse, nil)
		require.NotNil(t, err.Response)
		assert.Empty(t, err.Response.Body)
		assert.Equal(t, "httpsaga: Unable to connect to API Server (status -1)", err.Error())
		assert.Equal(t, -1, err.StatusCode())
		assert.True(t, err.NoResponse())
		assert.Equal(t, transient.NoResponse, transient.Categorize(err))
	})
	t.Run("with response", func(t *testing.T) {
		resp := &request.Response{Status: 503, StatusText: "Service Unavailable"}
		err := NewRequestError("Service Unavailable", 503, resp)
		assert.Same(t, resp, err.Response)
		assert.False(t, err.NoResponse())
		assert.Equal(t, transient.Not, transient.Categorize(err))
	})
}

func TestIsNoResponse(t *testing.T) {
	assert.False(t, IsNoResponse(nil))
	assert.False(t, IsNoResponse(errors.New("foo")))
	assert.False(t, IsNoResponse(NewRequestError("x", 500, nil)))
	assert.True(t, IsNoResponse(NewRequestError(noResponseMsg, NoResponse, nil)))
	assert.True(t, IsNoResponse(fmt.Errorf("wrapped: %w", NewRequestError(noResponseMsg, NoResponse, nil))))
}

func TestCheckStatus(t *testing.T) {
	testCases := []struct {
		name    string
		resp    *request.Response
		status  int
		message string
	}{
		{"nil", nil, NoResponse, noResponseMsg},
		{"200", &request.Response{Status: 200}, 0, ""},
		{"299", &request.Response{Status: 299}, 0, ""},
		{"302", &request.Response{Status: 302, StatusText: "Found"}, 302, "Found"},
		{"500", &request.Response{Status: 500, StatusText: "Error"}, 500, "Error"},
		{"no text", &request.Response{Status: 599}, 599, "Unexpected status"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := CheckStatus(testCase.resp)
			if testCase.status == 0 {
				assert.NoError(t, err)
				return
			}
			var re *RequestError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, testCase.status, re.Status)
			assert.Equal(t, testCase.message, re.Message)
			if testCase.resp != nil {
				assert.Same(t, testCase.resp, re.Response)
			}
		})
	}
}
