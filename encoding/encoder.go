// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package encoding

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// An Encoder transforms a request body into a new body. Encoders are
// pure: they must not mutate their input.
type Encoder func(body interface{}) (interface{}, error)

// A SerializationError reports that an Encoder could not represent a
// body in its wire format.
type SerializationError struct {
	// Encoder names the encoder which failed, e.g. "json" or "form".
	Encoder string
	// Type is the Go type of the offending value.
	Type string
	// Err is the underlying cause, if any.
	Err error
}

func (e *SerializationError) Error() string {
	msg := "httpsaga/encoding: " + e.Encoder + " cannot encode " + e.Type
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// A Field is one key/value pair of a Fields list.
type Field struct {
	Key   string
	Value interface{}
}

// Fields is an ordered list of key/value pairs. Form encodes Fields in
// exactly the declared order.
type Fields []Field

// JSON encodes body as JSON text and returns it as a string.
//
// The output is byte-for-byte the same as encoding/json produces,
// including sorted map keys.
func JSON(body interface{}) (interface{}, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, &SerializationError{Encoder: "json", Type: fmt.Sprintf("%T", body), Err: err}
	}
	return string(b), nil
}

// Form encodes body as application/x-www-form-urlencoded text.
//
// The body may be:
//
// • nil or an empty mapping, which encodes to the empty string;
//
// • Fields, encoded in declared order;
//
// • url.Values or any map with string keys, encoded in sorted key
// order (each value of a url.Values key is emitted as a separate
// pair);
//
// • string or []byte, which are taken to be already encoded and are
// returned unchanged.
//
// Any other type results in a *SerializationError.
//
// nil values render empty. Numbers render in decimal notation, not
// exponent notation, from 1e-6 up to 1e21, so a float64 decoded from
// JSON as 123456789 renders as "123456789". Values which are neither
// strings, numbers nor booleans are rendered with their String method
// or fmt.Sprint. The result is escaped the way a URL component is escaped: spaces become %20 and
// the characters !'()* are left as is.
func Form(body interface{}) (interface{}, error) {
	fields, err := toFields(body)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		if s, ok := body.(string); ok {
			return s, nil
		}
		if b, ok := body.([]byte); ok {
			return b, nil
		}
	}
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(f.Key)
		sb.WriteByte('=')
		sb.WriteString(EscapeComponent(render(f.Value)))
	}
	return sb.String(), nil
}

// EscapeComponent escapes s for use as a URL component, leaving only
// the characters A-Z a-z 0-9 - _ . ! ~ * ' ( ) unescaped.
func EscapeComponent(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func toFields(body interface{}) (Fields, error) {
	switch x := body.(type) {
	case nil:
		return Fields{}, nil
	case string, []byte:
		return nil, nil
	case Fields:
		return x, nil
	case []Field:
		return Fields(x), nil
	case map[string]interface{}:
		fields := make(Fields, 0, len(x))
		for k, v := range x {
			fields = append(fields, Field{k, v})
		}
		sortFields(fields)
		return fields, nil
	case map[string]string:
		fields := make(Fields, 0, len(x))
		for k, v := range x {
			fields = append(fields, Field{k, v})
		}
		sortFields(fields)
		return fields, nil
	case url.Values:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make(Fields, 0, len(x))
		for _, k := range keys {
			for _, v := range x[k] {
				fields = append(fields, Field{k, v})
			}
		}
		return fields, nil
	default:
		rv := reflect.ValueOf(body)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, &SerializationError{Encoder: "form", Type: fmt.Sprintf("%T", body)}
		}
		fields := make(Fields, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields = append(fields, Field{iter.Key().String(), iter.Value().Interface()})
		}
		sortFields(fields)
		return fields, nil
	}
}

func sortFields(fields Fields) {
	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
}

func render(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}

// formatFloat uses plain decimal notation in the range where
// JavaScript's number-to-string conversion does, and exponent notation
// elsewhere.
func formatFloat(f float64, bitSize int) string {
	if abs := math.Abs(f); f == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}
