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
	"testing"

	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

type execPathValue struct{ path string }

func (e execPathValue) ExecPath() string { return e.path }

func mustLoad(t *testing.T, src string) starlark.Callable {
	thread := &starlark.Thread{Name: "test"}
	globals, err := starlark.ExecFile(thread, "test.star", src, nil)
	require.NoError(t, err)
	fn, ok := globals["f"].(starlark.Callable)
	require.True(t, ok)
	return fn
}

func TestStarlarkCallableNumParamsReflectsDeclaredArity(t *testing.T) {
	thread := &starlark.Thread{Name: "test"}
	one := &StarlarkCallable{Thread: thread, Fn: mustLoad(t, "def f(v):\n  return v\n")}
	n, err := one.NumParams(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)

	two := &StarlarkCallable{Thread: thread, Fn: mustLoad(t, "def f(v, expander):\n  return v\n")}
	n, err = two.NumParams(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestStarlarkCallableCallReturnsString(t *testing.T) {
	thread := &starlark.Thread{Name: "test"}
	c := &StarlarkCallable{Thread: thread, Fn: mustLoad(t, "def f(v):\n  return v + '!'\n")}
	result, err := c.Call(context.Background(), []any{"x"})
	require.NoError(t, err)
	require.Equal(t, "x!", result)
}

func TestStarlarkCallableCallReturnsListOfStrings(t *testing.T) {
	thread := &starlark.Thread{Name: "test"}
	c := &StarlarkCallable{Thread: thread, Fn: mustLoad(t, "def f(v):\n  return [v, v]\n")}
	result, err := c.Call(context.Background(), []any{"x"})
	require.NoError(t, err)
	require.Equal(t, []string{"x", "x"}, result)
}

func TestStarlarkCallableCallReturnsNone(t *testing.T) {
	thread := &starlark.Thread{Name: "test"}
	c := &StarlarkCallable{Thread: thread, Fn: mustLoad(t, "def f(v):\n  return None\n")}
	result, err := c.Call(context.Background(), []any{"x"})
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestStarlarkCallableCallSurfacesEvalErrorBacktrace(t *testing.T) {
	thread := &starlark.Thread{Name: "test"}
	c := &StarlarkCallable{Thread: thread, Fn: mustLoad(t, "def f(v):\n  fail('boom: ' + v)\n")}
	_, err := c.Call(context.Background(), []any{"x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom: x")
}

func TestStarlarkCallableRejectsUnsupportedReturnType(t *testing.T) {
	thread := &starlark.Thread{Name: "test"}
	c := &StarlarkCallable{Thread: thread, Fn: mustLoad(t, "def f(v):\n  return 42\n")}
	_, err := c.Call(context.Background(), []any{"x"})
	require.Error(t, err)
	var badType *UnsupportedReturnTypeError
	require.ErrorAs(t, err, &badType)
}

func TestStarlarkCallableAcceptsDirectoryExpander(t *testing.T) {
	thread := &starlark.Thread{Name: "test"}
	c := &StarlarkCallable{Thread: thread, Fn: mustLoad(t, "def f(v, expander):\n  return expander.list(v)[0]\n")}

	expand := DirectoryExpanderFunc(func(v any) ([]any, error) {
		return []any{"expanded-" + v.(string)}, nil
	})
	result, err := c.Call(context.Background(), []any{"x", expand})
	require.NoError(t, err)
	require.Equal(t, "expanded-x", result)
}

func TestToStarlarkPreservesFileValuesAsOpaqueObjects(t *testing.T) {
	thread := &starlark.Thread{Name: "test"}
	c := &StarlarkCallable{Thread: thread, Fn: mustLoad(t, "def f(v):\n  return v.exec_path()\n")}
	result, err := c.Call(context.Background(), []any{execPathValue{"out/a"}})
	require.NoError(t, err)
	require.Equal(t, "out/a", result)
}

// A File-like value passed to the directory expander must survive the trip
// into Starlark and back with its identity intact, so the expander can
// still detect directory-ness the way the core's own mapEachAdaptor does.
func TestDirectoryExpanderRoundTripsOpaqueValues(t *testing.T) {
	thread := &starlark.Thread{Name: "test"}
	c := &StarlarkCallable{Thread: thread, Fn: mustLoad(t,
		"def f(v, expander):\n  return [x.exec_path() for x in expander.list(v)]\n")}

	var seen any
	expand := DirectoryExpanderFunc(func(v any) ([]any, error) {
		seen = v
		return []any{execPathValue{"out/tree/a"}, execPathValue{"out/tree/b"}}, nil
	})

	result, err := c.Call(context.Background(), []any{execPathValue{"out/tree"}, expand})
	require.NoError(t, err)
	require.Equal(t, []string{"out/tree/a", "out/tree/b"}, result)
	require.Equal(t, execPathValue{"out/tree"}, seen)
}
