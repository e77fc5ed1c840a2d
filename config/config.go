// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "HTTPSAGA"

const defaultEnvFile = ".env"

// Config holds the settings of an httpsaga program.
type Config struct {
	// BaseURL is prepended to relative request URLs.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	// ContentType is the request content type.
	ContentType string `mapstructure:"content_type" validate:"omitempty,oneof=application/json application/x-www-form-urlencoded multipart/form-data"`
	// Accept is the Accept header sent with every request.
	Accept string `mapstructure:"accept"`
	// Credentials is the credentials mode.
	Credentials string `mapstructure:"credentials" validate:"omitempty,oneof=same-origin include omit"`
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
	// Log configures logging.
	Log LogConfig `mapstructure:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name.
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	// Format is "console" or "json".
	Format string `mapstructure:"format" validate:"oneof=console json"`
	// Timestamp adds a time field to every entry.
	Timestamp bool `mapstructure:"timestamp"`
}

// ResolveURL returns target unchanged if it is absolute or BaseURL is
// empty, and otherwise target appended to BaseURL.
func (c *Config) ResolveURL(target string) string {
	if c.BaseURL == "" || strings.Contains(target, "://") {
		return target
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(target, "/")
}

// LoaderConfig holds optional file overrides for Load.
type LoaderConfig struct {
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit config file path. An empty path
// means no config file.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path, which must exist. An
// empty path means the optional .env in the working directory.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load reads and validates the configuration.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	if err := loadEnv(lc.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if lc.ConfigFile != "" {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", lc.ConfigFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration Load produces when no file or
// environment variable overrides anything.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "")
	v.SetDefault("content_type", "application/json")
	v.SetDefault("accept", "")
	v.SetDefault("credentials", "same-origin")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.timestamp", true)
}

func loadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: failed to load env file %s: %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(defaultEnvFile); err != nil {
		return nil
	}
	if err := godotenv.Load(defaultEnvFile); err != nil {
		return fmt.Errorf("config: failed to load env file %s: %w", defaultEnvFile, err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg against its validation tags. The returned error
// names every invalid field.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q validation (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("config: invalid configuration: %s", strings.Join(msgs, "; "))
}
