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

// Package cmdline implements a deferred command-line builder: rule code
// incrementally appends scalar arguments, formatted single arguments, and
// vector arguments (groups derived from a slice or a lazily-flattened
// nestedset.DepSet) to a Builder, then calls Build to get a CommandLine
// that can expand to the full argument vector or fold itself into a stable
// fingerprint. Fingerprinting never runs the blanket directory-expansion
// pass; a directory value is expanded there only by a two-parameter
// map-each callable, through its expander argument, when an expander is
// supplied.
//
// This generalizes android.RuleBuilder's buffered-command model to the
// feature set of Bazel's StarlarkCustomCommandLine: map-each
// transformation, directory expansion, uniquification, and
// join/format/terminate emission modes, all stored in a single flat
// instruction stream rather than one string buffer per command.
package cmdline
