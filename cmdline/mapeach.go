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

package cmdline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sushain97/cmdline/scripting"
	"github.com/sushain97/cmdline/value"
)

// mapEachWantsExpander reports whether d's map-each callable declares the
// optional second (DirectoryExpander) parameter: two or more declared
// parameters means it asked for one. Always false when the directive has
// no map-each at all.
func mapEachWantsExpander(ec evalCtx, d decodedVectorArg) (bool, error) {
	if !d.f.has(hasMapEach) {
		return false, nil
	}
	n, err := d.mapEach.NumParams(ec.ctx)
	if err != nil {
		return false, err
	}
	return n >= 2, nil
}

// stringify turns values into strings, either by running each one through
// the directive's map-each Callable or, absent one, through plain value
// coercion. wantsExpander must be mapEachWantsExpander's result for d,
// computed once by the caller since it also governs whether the blanket
// directory expansion pass ran before values was produced.
func stringify(ec evalCtx, d decodedVectorArg, values []any, wantsExpander bool) ([]string, error) {
	if !d.f.has(hasMapEach) {
		out := make([]string, len(values))
		for i, v := range values {
			s, err := value.Expand(v, ec.remapper, ec.host)
			if err != nil {
				return nil, err
			}
			out[i] = s
		}
		return out, nil
	}

	adaptor := &mapEachAdaptor{ctx: ec.ctx, expander: ec.expander, remapper: ec.remapper}

	var out []string
	for _, v := range values {
		args := []any{v}
		if wantsExpander {
			args = append(args, scripting.DirectoryExpanderFunc(adaptor.expand))
		}

		adaptor.cleared = false
		result, err := d.mapEach.Call(ec.ctx, args)
		adaptor.cleared = true
		if err != nil {
			var badType *scripting.UnsupportedReturnTypeError
			if errors.As(err, &badType) {
				return nil, value.NewExpansionError(
					"Expected map_each to return string, None, or list of strings, %s", badType.Error())
			}
			return nil, value.WrapExpansionError(err, "map_each failed at %s", d.mapEachLocation)
		}

		switch r := result.(type) {
		case nil:
			// map_each returned None: contributes nothing.
		case string:
			out = append(out, r)
		case []string:
			out = append(out, r...)
		default:
			return nil, value.NewExpansionError(
				"Expected map_each to return string, None, or list of strings, found %T", r)
		}
	}
	return out, nil
}

// mapEachAdaptor backs the optional second (DirectoryExpander) argument a
// map-each callable may declare. The expander closure a callable captures
// must not outlive the single invocation it was handed to: cleared flips
// to true the instant Call returns, and any later use fails loud rather
// than silently reading stale state.
type mapEachAdaptor struct {
	ctx      context.Context
	expander value.Expander
	remapper value.Remapper
	cleared  bool
}

func (a *mapEachAdaptor) expand(v any) ([]any, error) {
	if a.cleared {
		return nil, errors.New("cmdline: directory expander used after map_each returned")
	}

	f, ok := v.(value.File)
	if !ok || !f.IsDirectory() {
		return []any{v}, nil
	}
	if a.expander == nil {
		// The Noop expander: at analysis time, with no execution-time
		// expander available, every directory value expands to itself.
		return []any{v}, nil
	}

	switch t := f.(type) {
	case *value.TreeArtifact:
		// The Full expander: given a tree-artifact file, lists its
		// contained files. The caller, not this adaptor, decides how to
		// turn each file into a string (e.g. by calling its exec_path()).
		var files []value.File
		if err := a.expander.Expand(a.ctx, t, &files); err != nil {
			return nil, err
		}
		out := make([]any, len(files))
		for i, file := range files {
			out[i] = file
		}
		return out, nil
	case *value.Fileset:
		manifest, err := a.expander.GetFileset(a.ctx, t)
		if err != nil {
			return nil, value.WrapExpansionError(err,
				"Could not expand fileset: %s. Did you forget to add it as an input of the action?", t.ExecPath())
		}
		out := make([]any, len(manifest.Entries))
		for i, entry := range manifest.Entries {
			remapped := a.remapper.Map(entry.RelativePath)
			out[i] = value.NewFilesetSymlinkFile(t, remapped, entry.RelativePath)
		}
		return out, nil
	default:
		panic(fmt.Sprintf("cmdline: unknown directory kind %T", v))
	}
}

// formatOne substitutes s into the single "%s" placeholder a format_each
// or format_joined format string is required to carry. A format string
// without exactly that placeholder is a build-time caller error, but is
// only caught here since the format string itself is just another stream
// slot until evaluated.
func formatOne(format, s string) (string, error) {
	if strings.Count(format, "%s") != 1 {
		return "", value.NewExpansionError("format string %q must contain exactly one %%s", format)
	}
	return strings.Replace(format, "%s", s, 1), nil
}
