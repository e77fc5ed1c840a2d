// Copyright 2021 The httpsaga Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies the errors a saga routes to its failure
// handler as transient or non-transient. The category is attached to
// failure log entries and request results, which is handy for
// bucketing error metrics and for deciding what to show a user.
//
// Package transient depends only on the standard library.
package transient
