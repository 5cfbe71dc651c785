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
	"fmt"

	"go.starlark.net/starlark"
)

// DirectoryExpanderFunc lists the values a value expands to. With an
// execution-time expander available (Full expander), a tree artifact lists
// its contained files, a fileset lists its synthesized symlink entries, and
// any other value is returned unchanged; with none (Noop expander), every
// value is returned unchanged. It is the second positional argument a
// two-parameter map-each callable receives.
type DirectoryExpanderFunc func(v any) ([]any, error)

// directoryExpanderValue adapts a DirectoryExpanderFunc into a Starlark
// value exposing a single callable attribute, `list`, mirroring Bazel's
// ctx.actions.args() directory_expander.expand(file) API.
type directoryExpanderValue struct {
	fn DirectoryExpanderFunc
}

var _ starlark.HasAttrs = (*directoryExpanderValue)(nil)

func (d *directoryExpanderValue) String() string       { return "<directory_expander>" }
func (d *directoryExpanderValue) Type() string         { return "directory_expander" }
func (d *directoryExpanderValue) Freeze()              {}
func (d *directoryExpanderValue) Truth() starlark.Bool { return starlark.True }
func (d *directoryExpanderValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable: directory_expander")
}

func (d *directoryExpanderValue) Attr(name string) (starlark.Value, error) {
	if name != "list" {
		return nil, nil
	}
	return starlark.NewBuiltin("list", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var v starlark.Value
		if err := starlark.UnpackArgs("list", args, kwargs, "value", &v); err != nil {
			return nil, err
		}
		results, err := d.fn(fromStarlarkArg(v))
		if err != nil {
			return nil, err
		}
		items := make([]starlark.Value, len(results))
		for i, r := range results {
			sv, err := toStarlark(r)
			if err != nil {
				return nil, err
			}
			items[i] = sv
		}
		return starlark.NewList(items), nil
	}), nil
}

func (d *directoryExpanderValue) AttrNames() []string { return []string{"list"} }
