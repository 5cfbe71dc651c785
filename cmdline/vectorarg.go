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
	"strings"

	"github.com/sushain97/cmdline/nestedset"
	"github.com/sushain97/cmdline/scripting"
	"github.com/sushain97/cmdline/value"
)

// VectorArgBuilder accumulates the options of one vector argument before
// it is pushed into a Builder's instruction stream. One setter per
// feature, mirroring Bazel's Args.add_all builder methods, so that
// feature-word computation happens in exactly one place: push.
type VectorArgBuilder struct {
	mapEach          scripting.Callable
	mapEachLocation  scripting.Location
	mapEachSemantics any

	nestedSet nestedSetHandle
	isNested  bool
	values    []any

	expandDirs bool
	uniq       bool
	omitEmpty  bool

	argName             string
	hasArgNameSet       bool
	formatEach          string
	hasFormatEachSet    bool
	beforeEach          string
	hasBeforeEachSet    bool
	joinWith            string
	hasJoinWithSet      bool
	formatJoined        string
	hasFormatJoinedSet  bool
	terminateWith       string
	hasTerminateWithSet bool
}

// NewVectorArg starts a new vector argument.
func NewVectorArg() *VectorArgBuilder { return &VectorArgBuilder{} }

// SetValues supplies the payload as a plain, eagerly-known slice.
func (b *VectorArgBuilder) SetValues(values ...any) *VectorArgBuilder {
	b.values = values
	b.isNested = false
	return b
}

// SetNestedSet supplies the payload as a lazily-flattened nestedset.DepSet.
func (b *VectorArgBuilder) SetNestedSet(set *nestedset.DepSet[any]) *VectorArgBuilder {
	b.nestedSet = set
	b.isNested = true
	return b
}

// SetMapEach requests per-element transformation via an embedded-scripting
// Callable. A source location is always attached; it's cheap to carry and
// makes a failing map_each's error message point somewhere useful.
func (b *VectorArgBuilder) SetMapEach(callable scripting.Callable, location scripting.Location, semantics any) *VectorArgBuilder {
	b.mapEach = callable
	b.mapEachLocation = location
	b.mapEachSemantics = semantics
	return b
}

func (b *VectorArgBuilder) SetExpandDirectories() *VectorArgBuilder { b.expandDirs = true; return b }
func (b *VectorArgBuilder) SetUniquify() *VectorArgBuilder          { b.uniq = true; return b }
func (b *VectorArgBuilder) SetOmitIfEmpty() *VectorArgBuilder       { b.omitEmpty = true; return b }

func (b *VectorArgBuilder) SetArgName(argName string) *VectorArgBuilder {
	b.argName, b.hasArgNameSet = argName, true
	return b
}

func (b *VectorArgBuilder) SetFormatEach(format string) *VectorArgBuilder {
	b.formatEach, b.hasFormatEachSet = format, true
	return b
}

func (b *VectorArgBuilder) SetBeforeEach(beforeEach string) *VectorArgBuilder {
	b.beforeEach, b.hasBeforeEachSet = beforeEach, true
	return b
}

func (b *VectorArgBuilder) SetJoinWith(joinWith string) *VectorArgBuilder {
	b.joinWith, b.hasJoinWithSet = joinWith, true
	return b
}

func (b *VectorArgBuilder) SetFormatJoined(format string) *VectorArgBuilder {
	b.formatJoined, b.hasFormatJoinedSet = format, true
	return b
}

func (b *VectorArgBuilder) SetTerminateWith(terminateWith string) *VectorArgBuilder {
	b.terminateWith, b.hasTerminateWithSet = terminateWith, true
	return b
}

func (b *VectorArgBuilder) bits() featureBits {
	var bits featureBits
	if b.mapEach != nil {
		bits |= hasMapEach
	}
	if b.isNested {
		bits |= isNestedSet
	}
	if b.expandDirs {
		bits |= expandDirectories
	}
	if b.uniq {
		bits |= uniquify
	}
	if b.omitEmpty {
		bits |= omitIfEmpty
	}
	if b.hasArgNameSet {
		bits |= hasArgName
	}
	if b.hasFormatEachSet {
		bits |= hasFormatEach
	}
	if b.hasBeforeEachSet {
		bits |= hasBeforeEach
	}
	if b.hasJoinWithSet {
		bits |= hasJoinWith
	}
	if b.hasFormatJoinedSet {
		bits |= hasFormatJoined
	}
	if b.hasTerminateWithSet {
		bits |= hasTerminateWith
	}
	return bits
}

// push serializes the pending vector argument into stream, computing the
// feature word and appending the payload in a fixed, feature-bit-ordered
// layout. It panics (an invariant breach, not an ExpansionError) if
// before_each and join_with were both set, since the decoder's emission
// mode is an else-if chain that leaves that combination undefined.
func (b *VectorArgBuilder) push(stream *[]slot) {
	bits := b.bits()
	if bits&hasBeforeEach != 0 && bits&hasJoinWith != 0 {
		panic("cmdline: before_each and join_with are mutually exclusive")
	}

	f := internFeatures(bits)
	*stream = append(*stream, slot{kind: slotVectorFeatures, features: f})

	if f.has(hasMapEach) {
		*stream = append(*stream,
			slot{kind: slotCallable, callable: b.mapEach},
			slot{kind: slotLocation, location: b.mapEachLocation},
			slot{kind: slotSemantics, semantics: b.mapEachSemantics},
		)
	}

	if f.has(isNestedSet) {
		*stream = append(*stream, slot{kind: slotSet, set: b.nestedSet})
	} else {
		*stream = append(*stream, slot{kind: slotInt, n: len(b.values)})
		for _, v := range b.values {
			*stream = append(*stream, slot{kind: slotValue, value: v})
		}
	}

	if f.has(hasArgName) {
		*stream = append(*stream, slot{kind: slotStr, str: b.argName})
	}
	if f.has(hasFormatEach) {
		*stream = append(*stream, slot{kind: slotStr, str: b.formatEach})
	}
	if f.has(hasBeforeEach) {
		*stream = append(*stream, slot{kind: slotStr, str: b.beforeEach})
	}
	if f.has(hasJoinWith) {
		*stream = append(*stream, slot{kind: slotStr, str: b.joinWith})
	}
	if f.has(hasFormatJoined) {
		*stream = append(*stream, slot{kind: slotStr, str: b.formatJoined})
	}
	if f.has(hasTerminateWith) {
		*stream = append(*stream, slot{kind: slotStr, str: b.terminateWith})
	}
}

// decodedVectorArg is everything eval/addToFingerprint need after reading
// the fixed-order payload of one vector directive out of the stream.
type decodedVectorArg struct {
	f *features

	mapEach         scripting.Callable
	mapEachLocation scripting.Location
	mapEachSemantics any

	set    nestedSetHandle
	values []any

	argName, formatEach, beforeEach, joinWith, formatJoined, terminateWith string
}

// decodeVectorArg reads one vector directive's payload starting at i
// (which must point at the slotVectorFeatures marker) and returns the
// decoded fields plus the index of the next directive. It always consumes
// exactly the slots push wrote, so a caller can chain decode calls across
// an arbitrary mix of vector and scalar directives without drifting.
func decodeVectorArg(stream []slot, i int) (decodedVectorArg, int) {
	f := stream[i].features
	i++
	var d decodedVectorArg
	d.f = f

	if f.has(hasMapEach) {
		d.mapEach = stream[i].callable
		i++
		d.mapEachLocation = stream[i].location
		i++
		d.mapEachSemantics = stream[i].semantics
		i++
	}

	if f.has(isNestedSet) {
		d.set = stream[i].set
		i++
	} else {
		n := stream[i].n
		i++
		d.values = make([]any, n)
		for j := 0; j < n; j++ {
			d.values[j] = stream[i].value
			i++
		}
	}

	if f.has(hasArgName) {
		d.argName = stream[i].str
		i++
	}
	if f.has(hasFormatEach) {
		d.formatEach = stream[i].str
		i++
	}
	if f.has(hasBeforeEach) {
		d.beforeEach = stream[i].str
		i++
	}
	if f.has(hasJoinWith) {
		d.joinWith = stream[i].str
		i++
	}
	if f.has(hasFormatJoined) {
		d.formatJoined = stream[i].str
		i++
	}
	if f.has(hasTerminateWith) {
		d.terminateWith = stream[i].str
		i++
	}

	return d, i
}

// evalCtx bundles the execution-time collaborators eval needs. It is
// identical for every vector directive in one CommandLine.Arguments call.
type evalCtx struct {
	ctx      context.Context
	expander value.Expander
	remapper value.Remapper
	host     value.HostCoercer
}

// eval implements the VectorArg evaluation pipeline: resolve values,
// optionally expand directories, stringify, uniquify, then apply the
// configured emission mode, returning the index of the next directive.
func evalVectorArg(ec evalCtx, stream []slot, i int) ([]string, int, error) {
	d, next := decodeVectorArg(stream, i)

	values, err := resolveValues(ec, d)
	if err != nil {
		return nil, next, err
	}

	// A two-parameter map-each callable takes over directory expansion
	// itself (via the DirectoryExpander handed to it); the blanket
	// ExpandDirectories pass below only runs when nothing downstream wants
	// per-value control over it, so a directory value reaches such a
	// callable unexpanded even when EXPAND_DIRECTORIES is set.
	wantsExpanderParam, err := mapEachWantsExpander(ec, d)
	if err != nil {
		return nil, next, err
	}

	if !wantsExpanderParam {
		values, err = value.ExpandDirectories(ec.ctx, values, d.f.has(expandDirectories), ec.expander, ec.remapper)
		if err != nil {
			return nil, next, err
		}
	}

	strs, err := stringify(ec, d, values, wantsExpanderParam)
	if err != nil {
		return nil, next, err
	}

	if d.f.has(uniquify) {
		strs = uniquifyStrings(strs)
	}

	isEmptyAndShouldOmit := len(strs) == 0 && d.f.has(omitIfEmpty)

	var out []string

	if d.f.has(hasArgName) && !isEmptyAndShouldOmit {
		out = append(out, d.argName)
	}

	if d.f.has(hasFormatEach) && len(strs) > 0 {
		formatted := make([]string, len(strs))
		for i, s := range strs {
			formatted[i], err = formatOne(d.formatEach, s)
			if err != nil {
				return nil, next, err
			}
		}
		strs = formatted
	}

	switch {
	case d.f.has(hasBeforeEach):
		for _, s := range strs {
			out = append(out, d.beforeEach, s)
		}
	case d.f.has(hasJoinWith):
		if !isEmptyAndShouldOmit {
			joined := strings.Join(strs, d.joinWith)
			if d.f.has(hasFormatJoined) {
				joined, err = formatOne(d.formatJoined, joined)
				if err != nil {
					return nil, next, err
				}
			}
			out = append(out, joined)
		}
	default:
		out = append(out, strs...)
	}

	if d.f.has(hasTerminateWith) && !isEmptyAndShouldOmit {
		out = append(out, d.terminateWith)
	}

	return out, next, nil
}

// resolveValues turns the decoded payload (either a slice or a nested set)
// into a concrete []any, ready for directory expansion.
func resolveValues(ec evalCtx, d decodedVectorArg) ([]any, error) {
	if d.f.has(isNestedSet) {
		if d.set == nil {
			return nil, nil
		}
		return d.set.ToList(), nil
	}
	return d.values, nil
}

func uniquifyStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
