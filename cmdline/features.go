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

import "sync"

// featureBits is a vector argument's feature set, packed into a uint16:
// which of map-each, nested-set backing, directory expansion,
// uniquification, empty-omission, and the various formatting modes are
// enabled for one VectorArg.
type featureBits uint16

const (
	hasMapEach featureBits = 1 << iota
	isNestedSet
	expandDirectories
	uniquify
	omitIfEmpty
	hasArgName
	hasFormatEach
	hasBeforeEach
	hasJoinWith
	hasFormatJoined
	hasTerminateWith
)

// features is the interned, value-canonical wrapper around a featureBits
// word: equal feature words share one instance, so hash/equality depend
// only on the bits. Two VectorArg directives built with the same set of
// options point at the exact same *features, so pointer equality doubles
// as feature-word equality.
type features struct {
	bits featureBits
}

func (f *features) has(bit featureBits) bool { return f.bits&bit != 0 }

var (
	internMu sync.Mutex
	interned = map[featureBits]*features{}
)

// internFeatures returns the process-wide canonical *features for bits,
// creating it on first use. The interner is never cleared: feature words
// are a small, bounded space (at most 2^11 distinct words).
func internFeatures(bits featureBits) *features {
	internMu.Lock()
	defer internMu.Unlock()
	if f, ok := interned[bits]; ok {
		return f
	}
	f := &features{bits: bits}
	interned[bits] = f
	return f
}
