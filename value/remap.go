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

// Remapper implements the build's output-path-mapping policy: it rewrites
// an output artifact's exec path to wherever the build actually places it
// at execution time (a sandbox root, a remote staging directory, and so
// on). Map is a pure function over paths; it is applied to derived
// artifacts only, never to source paths, and is always treated as identity
// while fingerprinting, since the fingerprint must be stable across
// sandboxes that remap differently.
type Remapper interface {
	Map(execPath string) string

	// MapCustomStarlarkArgs is a post-processing hook applied to the full
	// decoded argument vector once, after every custom directive has
	// produced its strings, so a Starlark directive's output gets the same
	// remapping treatment as any other argument.
	MapCustomStarlarkArgs(args []string) []string
}

// noopRemapper is the distinguished identity remapper.
type noopRemapper struct{}

func (noopRemapper) Map(execPath string) string { return execPath }

func (noopRemapper) MapCustomStarlarkArgs(args []string) []string { return args }

// NOOP is the identity Remapper: CommandLine.Arguments() uses it when the
// caller supplies no remapper, and the fingerprinter always uses it.
var NOOP Remapper = noopRemapper{}
