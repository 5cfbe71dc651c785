// Copyright 2026 The Cmdline Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package value

import (
	"errors"
	"fmt"
	"strings"
)

// ExpansionError is the one error kind argument expansion ever raises.
// Every caller-visible failure that originates from a malformed format
// string, a map-each return-type mismatch, a missing fileset expansion, or
// a wrapped scripting evaluation error is reported as an *ExpansionError,
// and component frames never translate it into some other error kind as it
// propagates back up through the builder.
type ExpansionError struct {
	msg string
	err error
}

func NewExpansionError(format string, args ...any) *ExpansionError {
	return &ExpansionError{msg: fmt.Sprintf(format, args...)}
}

func WrapExpansionError(err error, format string, args ...any) *ExpansionError {
	return &ExpansionError{msg: fmt.Sprintf(format, args...), err: err}
}

// Error returns the primary message, followed by the wrapped error's own
// message when there is one and it isn't already a substring of the
// primary message. The dedup avoids doubling up when the primary message
// was itself built from err (for example via %v), while still surfacing a
// wrapped Starlark evaluation error's backtrace when it isn't.
func (e *ExpansionError) Error() string {
	if e.err == nil {
		return e.msg
	}
	cause := e.err.Error()
	if cause == "" || strings.Contains(e.msg, cause) {
		return e.msg
	}
	return e.msg + ": " + cause
}

func (e *ExpansionError) Unwrap() error { return e.err }

// ErrFilesetMissing is the sentinel an Expander.GetFileset implementation
// returns when it has no manifest for the requested fileset.
var ErrFilesetMissing = errors.New("missing fileset expansion")
