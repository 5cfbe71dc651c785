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

package scripting

import (
	"context"
	"errors"
	"fmt"

	"go.starlark.net/starlark"
)

// StarlarkCallable adapts a *starlark.Function (or any starlark.Callable)
// into this package's Callable contract. Grounded on bonanza's
// target_action_command.go, which uses the identical
// NumParams/starlark.Call/EvalError sequence for Bazel's own map_each.
type StarlarkCallable struct {
	Thread *starlark.Thread
	Fn     starlark.Callable
}

var _ Callable = (*StarlarkCallable)(nil)

// NumParams reports the number of declared parameters. Only
// *starlark.Function exposes this; builtins and other callables are
// assumed to take exactly one (the value) unless they implement an
// optional NumParams() int method.
func (c *StarlarkCallable) NumParams(ctx context.Context) (int, error) {
	switch fn := c.Fn.(type) {
	case *starlark.Function:
		return fn.NumParams(), nil
	case interface{ NumParams() int }:
		return fn.NumParams(), nil
	default:
		return 1, nil
	}
}

// Call invokes the Starlark callable and translates its result and any
// error into the shapes Callable.Call promises: a string, a []string, or
// nil. Evaluation errors are translated to plain errors carrying the
// Starlark backtrace, for the caller to wrap into a value.ExpansionError.
func (c *StarlarkCallable) Call(ctx context.Context, args []any) (any, error) {
	starlarkArgs := make(starlark.Tuple, len(args))
	for i, a := range args {
		v, err := toStarlark(a)
		if err != nil {
			return nil, err
		}
		starlarkArgs[i] = v
	}

	result, err := starlark.Call(c.Thread, c.Fn, starlarkArgs, nil)
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return nil, errors.New(evalErr.Backtrace())
		}
		return nil, err
	}

	return fromStarlark(result)
}

func toStarlark(v any) (starlark.Value, error) {
	switch t := v.(type) {
	case starlark.Value:
		return t, nil
	case string:
		return starlark.String(t), nil
	case nil:
		return starlark.None, nil
	case DirectoryExpanderFunc:
		return &directoryExpanderValue{fn: t}, nil
	default:
		// File-like values (and anything else opaque to this package) keep
		// their original Go identity rather than being flattened to a
		// string up front: a two-parameter map-each callable must still be
		// able to tell, via the directory expander, whether the value it
		// received is a directory. Flattening here would make that
		// indistinguishable from a plain string.
		return &goValue{v: t}, nil
	}
}

// goValue is an opaque Starlark value wrapping a host value this package
// has no other representation for. A callable that merely forwards it
// (unexpanded, to an expander, or back as a call argument) never needs to
// inspect it; fromStarlarkArg unwraps it back to its original Go value for
// a Go-implemented collaborator such as a DirectoryExpanderFunc.
type goValue struct{ v any }

var (
	_ starlark.Value    = (*goValue)(nil)
	_ starlark.HasAttrs = (*goValue)(nil)
)

func (g *goValue) String() string       { return fmt.Sprintf("<value %v>", g.v) }
func (g *goValue) Type() string         { return "cmdline_value" }
func (g *goValue) Freeze()              {}
func (g *goValue) Truth() starlark.Bool { return starlark.True }
func (g *goValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable: %s", g.Type())
}

// Attr exposes exec_path() on any wrapped value that implements it (every
// value.File kind), mirroring how a map-each callable asks a Bazil File for
// its path: `v.exec_path()` rather than assuming the value is already a
// string.
func (g *goValue) Attr(name string) (starlark.Value, error) {
	execPather, ok := g.v.(interface{ ExecPath() string })
	if !ok || name != "exec_path" {
		return nil, nil
	}
	return starlark.NewBuiltin("exec_path", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs("exec_path", args, kwargs); err != nil {
			return nil, err
		}
		return starlark.String(execPather.ExecPath()), nil
	}), nil
}

func (g *goValue) AttrNames() []string {
	if _, ok := g.v.(interface{ ExecPath() string }); ok {
		return []string{"exec_path"}
	}
	return nil
}

// fromStarlarkArg reverses toStarlark for values handed from Starlark back
// into a Go-implemented collaborator (the directory expander's `list`
// builtin is the only caller): a goValue unwraps to its original value, a
// plain Starlark string becomes a Go string, and anything else is passed
// through unchanged.
func fromStarlarkArg(v starlark.Value) any {
	switch t := v.(type) {
	case *goValue:
		return t.v
	case starlark.String:
		return string(t)
	case starlark.NoneType:
		return nil
	default:
		return v
	}
}

// UnsupportedReturnTypeError reports a map-each return value that was
// neither a string, None, nor a list of strings. Type names the offending
// Starlark type, e.g. "int" or "list containing int".
type UnsupportedReturnTypeError struct {
	Type string
}

func (e *UnsupportedReturnTypeError) Error() string {
	return "found " + e.Type
}

func fromStarlark(v starlark.Value) (any, error) {
	switch t := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.String:
		return string(t), nil
	case *starlark.List:
		out := make([]string, 0, t.Len())
		iter := t.Iterate()
		defer iter.Done()
		var elem starlark.Value
		for iter.Next(&elem) {
			s, ok := elem.(starlark.String)
			if !ok {
				return nil, &UnsupportedReturnTypeError{Type: "list containing " + elem.Type()}
			}
			out = append(out, string(s))
		}
		return out, nil
	case starlark.Tuple:
		out := make([]string, 0, len(t))
		for _, elem := range t {
			s, ok := elem.(starlark.String)
			if !ok {
				return nil, &UnsupportedReturnTypeError{Type: "list containing " + elem.Type()}
			}
			out = append(out, string(s))
		}
		return out, nil
	default:
		return nil, &UnsupportedReturnTypeError{Type: v.Type()}
	}
}
