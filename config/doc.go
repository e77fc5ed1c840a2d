// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package config loads the settings shared by httpsaga programs.

Settings come from, in increasing order of precedence, built-in
defaults, an optional YAML (or any other viper-supported) config file,
and environment variables prefixed with HTTPSAGA_. Nested keys use an
underscore, so log.level is read from HTTPSAGA_LOG_LEVEL. A .env file
in the working directory, or the one named with WithEnvFile, is loaded
into the environment first without overriding variables that are
already set.

The loaded Config is validated before Load returns it.
*/
package config
