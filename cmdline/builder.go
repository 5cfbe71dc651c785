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

// Builder accumulates an append-only instruction stream, generalizing
// android.RuleBuilder's buffered-command model to per-argument directives
// instead of whole shell commands. A Builder is single-use: once Build
// returns, its stream belongs to the resulting CommandLine and the Builder
// should be discarded.
type Builder struct {
	stream      []slot
	groupStarts []int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// RecordArgStart marks the current buffer position as the start of a
// logical argument group, consumed by flag-per-line decoding.
func (b *Builder) RecordArgStart() *Builder {
	b.groupStarts = append(b.groupStarts, len(b.stream))
	return b
}

// Add appends a single scalar value directive.
func (b *Builder) Add(v any) *Builder {
	b.stream = append(b.stream, slot{kind: slotValue, value: v})
	return b
}

// AddVector validates and serializes a pending vector argument.
func (b *Builder) AddVector(v *VectorArgBuilder) *Builder {
	v.push(&b.stream)
	return b
}

// AddFormatted appends the single-formatted-arg marker for a value
// rendered through a format string at expansion time, rather than eagerly.
func (b *Builder) AddFormatted(v any, format string) *Builder {
	b.stream = append(b.stream,
		slot{kind: slotSingleFormattedMarker},
		slot{kind: slotValue, value: v},
		slot{kind: slotStr, str: format},
	)
	return b
}

// Build finalizes the Builder into a CommandLine. An empty buffer always
// produces a plainCommandLine with a nil stream, regardless of
// flagPerLine — there is nothing to group.
func (b *Builder) Build(flagPerLine bool) CommandLine {
	if len(b.stream) == 0 {
		return &plainCommandLine{}
	}
	if flagPerLine {
		return &groupedCommandLine{
			stream:      b.stream,
			groupStarts: append([]int(nil), b.groupStarts...),
		}
	}
	return &plainCommandLine{stream: b.stream}
}
