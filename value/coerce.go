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

import "fmt"

// HostCoercer is the host-provided expandToCommandLine hook: strings pass
// through unchanged, files render their exec path, and anything else is
// whatever the embedding host decides a Starlark (or similarly scripted)
// value should look like on a command line.
type HostCoercer interface {
	ExpandToCommandLine(v any) (string, error)
}

// DefaultCoercer is a HostCoercer usable without any host integration: it
// understands strings, Files, fmt.Stringer, and falls back to fmt.Sprint
// for everything else.
type DefaultCoercer struct{}

func (DefaultCoercer) ExpandToCommandLine(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case File:
		return t.ExecPath(), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// Expand renders a single argument value to its command-line string. Only
// derived (output-tree) files are subject to remapping; source paths and
// every other value type are handed to the host coercer unchanged.
func Expand(v any, remapper Remapper, host HostCoercer) (string, error) {
	if f, ok := v.(File); ok && !f.IsSourceArtifact() {
		return remapper.Map(f.ExecPath()), nil
	}
	return host.ExpandToCommandLine(v)
}
