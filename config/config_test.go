// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, "application/json", cfg.ContentType)
		assert.Equal(t, "same-origin", cfg.Credentials)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, LogConfig{Level: "info", Format: "console", Timestamp: true}, cfg.Log)
	})
	t.Run("file", func(t *testing.T) {
		path := writeFile(t, "config.yml", `
base_url: http://api.example.com/v1
accept: application/json
timeout: 5s
log:
  level: debug
  format: json
`)
		cfg, err := Load(WithConfigFile(path))
		require.NoError(t, err)
		assert.Equal(t, "http://api.example.com/v1", cfg.BaseURL)
		assert.Equal(t, "application/json", cfg.Accept)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "same-origin", cfg.Credentials)
	})
	t.Run("env overrides file", func(t *testing.T) {
		path := writeFile(t, "config.yml", "credentials: omit\nlog:\n  level: debug\n")
		t.Setenv("HTTPSAGA_CREDENTIALS", "include")
		t.Setenv("HTTPSAGA_LOG_LEVEL", "warn")
		t.Setenv("HTTPSAGA_TIMEOUT", "250ms")
		cfg, err := Load(WithConfigFile(path))
		require.NoError(t, err)
		assert.Equal(t, "include", cfg.Credentials)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	})
	t.Run("env file", func(t *testing.T) {
		path := writeFile(t, "test.env", "HTTPSAGA_ACCEPT=text/plain\n")
		t.Cleanup(func() { _ = os.Unsetenv("HTTPSAGA_ACCEPT") })
		cfg, err := Load(WithEnvFile(path))
		require.NoError(t, err)
		assert.Equal(t, "text/plain", cfg.Accept)
	})
	t.Run("missing env file", func(t *testing.T) {
		_, err := Load(WithEnvFile(filepath.Join(t.TempDir(), "nope.env")))
		assert.Error(t, err)
	})
	t.Run("missing config file", func(t *testing.T) {
		_, err := Load(WithConfigFile(filepath.Join(t.TempDir(), "nope.yml")))
		assert.Error(t, err)
	})
	t.Run("invalid", func(t *testing.T) {
		t.Setenv("HTTPSAGA_CREDENTIALS", "sometimes")
		t.Setenv("HTTPSAGA_LOG_FORMAT", "xml")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Config.Credentials")
		assert.Contains(t, err.Error(), "Config.Log.Format")
	})
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name  string
		tweak func(*Config)
		ok    bool
	}{
		{"default", func(*Config) {}, true},
		{"base url", func(c *Config) { c.BaseURL = "https://x.io" }, true},
		{"bad base url", func(c *Config) { c.BaseURL = "not a url" }, false},
		{"form", func(c *Config) { c.ContentType = "application/x-www-form-urlencoded" }, true},
		{"bad content type", func(c *Config) { c.ContentType = "text/xml" }, false},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			cfg := Default()
			testCase.tweak(cfg)
			err := Validate(cfg)
			if testCase.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfig_ResolveURL(t *testing.T) {
	c := &Config{}
	assert.Equal(t, "users", c.ResolveURL("users"))
	c.BaseURL = "http://api.io/v1/"
	assert.Equal(t, "http://api.io/v1/users", c.ResolveURL("/users"))
	assert.Equal(t, "http://api.io/v1/users", c.ResolveURL("users"))
	assert.Equal(t, "https://other.io/x", c.ResolveURL("https://other.io/x"))
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
