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
	"github.com/sushain97/cmdline/nestedset"
	"github.com/sushain97/cmdline/scripting"
)

// slotKind tags one entry of the instruction stream: a heterogeneous flat
// buffer modeled as a tagged variant per slot. The decoder is a
// pattern-match loop over kind; the feature bits recorded alongside a
// vector-argument slot determine how many and which further slots follow.
type slotKind uint8

const (
	slotValue slotKind = iota
	slotStr
	slotInt
	slotCallable
	slotLocation
	slotSemantics
	slotSet
	slotVectorFeatures
	slotSingleFormattedMarker
)

// slot is one entry of the flat instruction buffer: a scalar directive, a
// directive's leading marker, or one field of a directive's payload. Only
// the field matching kind is meaningful; the others are zero. This keeps
// the buffer a single contiguous []slot rather than a []any plus a
// separate type-tag array, while still being a pure function of kind which
// field the decoder reads next.
type slot struct {
	kind slotKind

	value any    // slotValue
	str   string // slotStr
	n     int    // slotInt

	callable  scripting.Callable // slotCallable
	location  scripting.Location // slotLocation
	semantics any                // slotSemantics
	set       nestedSetHandle    // slotSet
	features  *features          // slotVectorFeatures
}

// nestedSetHandle is the lazy set payload of an IS_NESTED_SET vector
// directive. The core never needs its element type statically: every
// element is coerced to a string or handed to a Callable via `any`.
type nestedSetHandle = *nestedset.DepSet[any]
