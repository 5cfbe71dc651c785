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

// Package scripting defines the Callable collaborator an embedded
// scripting runtime plugs in as a per-element mapper, and a
// go.starlark.net-backed implementation of it, grounded on
// bonanza.build's target_action_command.go.
package scripting

import (
	"context"
	"strconv"
)

// Callable is the opaque handle the core invokes once per value during
// map-each evaluation. It deliberately exposes nothing about its own
// scripting runtime beyond the invocation contract below.
type Callable interface {
	// NumParams reports the callable's declared parameter count, used to
	// detect whether it wants a second (DirectoryExpander) argument: two
	// or more declared parameters means the callable asked for one.
	NumParams(ctx context.Context) (int, error)

	// Call invokes the callable with the given positional arguments and
	// returns its Starlark-shaped result: a string, a slice of strings,
	// or nil (the "none" sentinel). Any other return shape is the
	// caller's responsibility to reject.
	Call(ctx context.Context, args []any) (any, error)
}

// Location is the source location attached to a map-each invocation, used
// only for error reporting.
type Location struct {
	File string
	Line int
	Col  int
}

func (l Location) String() string {
	if l.File == "" {
		return "<unknown location>"
	}
	return formatLocation(l)
}

func formatLocation(l Location) string {
	if l.Line == 0 {
		return l.File
	}
	return l.File + ":" + strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Col)
}
