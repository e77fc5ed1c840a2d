// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command httpsaga sends one HTTP request through a saga and prints the
// action the saga emits as JSON.
//
// Usage:
//
//	httpsaga [flags] URL
//
// A 2XX response emits {"type":"SUCCESS"} with the decoded response
// body as payload data. Anything else emits {"type":"FAILURE"} with
// the error message as payload data. The exit status is 0 on success,
// 1 on failure and 2 on a usage error.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/gogama/httpsaga"
	"github.com/gogama/httpsaga/config"
	"github.com/gogama/httpsaga/internal/logging"
	"github.com/gogama/httpsaga/request"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/pflag"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	typeSuccess = "SUCCESS"
	typeFailure = "FAILURE"
	typeRequest = "REQUEST"
)

type helperFunc func(httpsaga.URLFunc, ...httpsaga.Option) httpsaga.IssueFunc

var helpers = map[string]helperFunc{
	"GET":    httpsaga.Get,
	"POST":   httpsaga.Post,
	"PUT":    httpsaga.Put,
	"DELETE": httpsaga.Delete,
	"PATCH":  httpsaga.Patch,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("httpsaga", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	method := flags.StringP("method", "X", "GET", "HTTP method: GET, POST, PUT, DELETE or PATCH")
	data := flags.StringP("data", "d", "", "request data as JSON; the query for GET, the body otherwise")
	form := flags.Bool("form", false, "send the data form-encoded")
	configFile := flags.String("config", "", "config file")
	envFile := flags.String("env-file", "", ".env file")
	auth := flags.String("auth", "", "Authorization header value")
	accept := flags.String("accept", "", "Accept header value")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: httpsaga [flags] URL")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}
	helper, ok := helpers[strings.ToUpper(*method)]
	if !ok {
		fmt.Fprintf(stderr, "httpsaga: unsupported method %q\n", *method)
		return 2
	}
	var payload interface{}
	if *data != "" {
		if err := json.UnmarshalFromString(*data, &payload); err != nil {
			fmt.Fprintf(stderr, "httpsaga: invalid --data: %v\n", err)
			return 2
		}
	}

	cfg, err := config.Load(config.WithConfigFile(*configFile), config.WithEnvFile(*envFile))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger := logging.New(cfg.Log, stderr)

	opts := []httpsaga.Option{
		httpsaga.WithTransport(&request.HTTPTransport{Doer: &http.Client{Timeout: cfg.Timeout}}),
		httpsaga.WithCredentials(cfg.Credentials),
	}
	contentType := cfg.ContentType
	if *form {
		contentType = httpsaga.ContentTypeForm
	}
	// A GET carries its data in the query, so it has no body to label.
	if contentType != "" && !strings.EqualFold(*method, "GET") {
		opts = append(opts, httpsaga.WithContentType(contentType))
	}
	if *accept == "" {
		*accept = cfg.Accept
	}
	if *accept != "" {
		opts = append(opts, httpsaga.WithAccept(*accept))
	}
	if *auth != "" {
		opts = append(opts, httpsaga.WithAuthToken(*auth))
	}

	target := cfg.ResolveURL(flags.Arg(0))
	s := httpsaga.Coordinate(helper(httpsaga.StaticURL(target), opts...), succeed, fail)
	s.Logger = &logger
	s.Handlers = &httpsaga.HandlerGroup{}
	s.Handlers.PushBackAll(httpsaga.LogHandler(logger))
	var writeErr error
	s.Interpreter = &httpsaga.Effects{
		Dispatch: func(_ context.Context, a httpsaga.Action) {
			writeErr = printAction(stdout, a)
		},
	}

	logger.Debug().Str("method", strings.ToUpper(*method)).Str("url", target).Msg("issuing request")
	e := s.Run(ctx, httpsaga.NewAction(typeRequest, payload))
	if writeErr != nil {
		fmt.Fprintln(stderr, "httpsaga:", writeErr)
		return 1
	}
	if e.Failed() {
		return 1
	}
	return 0
}

func succeed(_ context.Context, resp *request.Response) (*httpsaga.Action, error) {
	if err := httpsaga.CheckStatus(resp); err != nil {
		return nil, err
	}
	reader := request.TextReader
	if strings.HasPrefix(resp.Header.Get("Content-Type"), httpsaga.ContentTypeJSON) {
		reader = request.JSONReader
	}
	body, err := reader(resp)
	if err != nil {
		return nil, err
	}
	a := httpsaga.NewAction(typeSuccess, body)
	a.Payload.Meta = map[string]interface{}{"status": resp.Status}
	return &a, nil
}

func fail(_ context.Context, err error) *httpsaga.Action {
	a := httpsaga.NewAction(typeFailure, err.Error())
	if re, ok := err.(*httpsaga.RequestError); ok {
		a.Payload.Meta = map[string]interface{}{"status": re.Status}
	}
	return &a
}

func printAction(w io.Writer, a httpsaga.Action) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
