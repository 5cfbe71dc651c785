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

	"github.com/sushain97/cmdline/fingerprint"
	"github.com/sushain97/cmdline/value"
)

// fpCtx bundles the fingerprinting-time collaborators. Unlike evalCtx, the
// remapper is fixed to value.NOOP throughout, since a fingerprint must stay
// stable across sandboxes that remap output paths differently, and an
// optional cache backs set-payload map-each folding.
type fpCtx struct {
	ctx      context.Context
	host     value.HostCoercer
	expander value.Expander
	cache    *fingerprint.NestedSetFingerprintCache
	sink     fingerprint.Sink
}

func (fc fpCtx) evalCtx() evalCtx {
	return evalCtx{ctx: fc.ctx, expander: fc.expander, remapper: value.NOOP, host: fc.host}
}

// addVectorArgToFingerprint folds one vector directive into the
// fingerprint. It folds the directive's values (mirroring eval's decode,
// stringify and uniquify steps, without the directory-expansion pass, see
// addListToFingerprint; and minus the rendering steps that only rearrange already-folded
// strings) and then tags every set feature bit with its stable salt and,
// where relevant, the bit's own string payload — which is how argName,
// formatEach, beforeEach, joinWith, formatJoined, and terminateWith
// contribute to the fingerprint: as configuration, not as replayed output
// assembly.
func addVectorArgToFingerprint(fc fpCtx, stream []slot, i int) (int, error) {
	d, next := decodeVectorArg(stream, i)

	var err error
	if d.f.has(isNestedSet) {
		err = addNestedSetToFingerprint(fc, d)
	} else {
		err = addListToFingerprint(fc, d)
	}
	if err != nil {
		return next, err
	}

	addFeatureTags(fc.sink, d)
	return next, nil
}

// addListToFingerprint deliberately skips directory expansion for list
// payloads during fingerprinting, even when EXPAND_DIRECTORIES is set, so a
// map-each callable sees unexpanded directory values here. The real
// expander is always consulted at execute time; this is a tolerated
// approximation rather than a correctness bug, since a tree artifact's
// exec path is already a stable stand-in for its eventual contents.
func addListToFingerprint(fc fpCtx, d decodedVectorArg) error {
	ec := fc.evalCtx()
	wantsExpander, err := mapEachWantsExpander(ec, d)
	if err != nil {
		return err
	}
	strs, err := stringify(ec, d, d.values, wantsExpander)
	if err != nil {
		return err
	}
	if d.f.has(uniquify) {
		strs = uniquifyStrings(strs)
	}
	for _, s := range strs {
		fc.sink.AddString(s)
	}
	return nil
}

func addNestedSetToFingerprint(fc fpCtx, d decodedVectorArg) error {
	if d.set == nil {
		return nil
	}

	if !d.f.has(hasMapEach) {
		// Without a map-each callable, fold the set's elements directly
		// into the fingerprint, coerced to command-line strings with no
		// remapping applied.
		for _, v := range d.set.ToList() {
			s, err := value.Expand(v, value.NOOP, fc.host)
			if err != nil {
				return err
			}
			fc.sink.AddString(s)
		}
		return nil
	}

	compute := func() ([]byte, error) {
		ec := fc.evalCtx()
		wantsExpander, err := mapEachWantsExpander(ec, d)
		if err != nil {
			return nil, err
		}
		strs, err := stringify(ec, d, d.set.ToList(), wantsExpander)
		if err != nil {
			return nil, err
		}
		if d.f.has(uniquify) {
			strs = uniquifyStrings(strs)
		}
		sub := fingerprint.NewSha256Sink()
		for _, s := range strs {
			sub.AddString(s)
		}
		digest := sub.Sum()
		return digest[:], nil
	}

	if fc.cache == nil {
		digest, err := compute()
		if err != nil {
			return err
		}
		fc.sink.AddBytes(digest)
		return nil
	}

	// The adaptor's cache identity is (identity(callable), hasExpander),
	// never the expander instance; compute's closure holds the real
	// expander only for the duration of this call, so nothing about the
	// cached entry or its key prolongs the expander's lifetime.
	key := fingerprint.AdaptorKey{Callable: d.mapEach, HasExpander: fc.expander != nil}
	return fc.cache.AddNestedSetToFingerprint(fc.sink, d.set, key, compute)
}

func addFeatureTags(sink fingerprint.Sink, d decodedVectorArg) {
	if d.f.has(expandDirectories) {
		sink.AddUUID(fingerprint.ExpandDirectories)
	}
	if d.f.has(uniquify) {
		sink.AddUUID(fingerprint.Uniquify)
	}
	if d.f.has(omitIfEmpty) {
		sink.AddUUID(fingerprint.OmitIfEmpty)
	}
	if d.f.has(hasArgName) {
		sink.AddUUID(fingerprint.HasArgName)
		sink.AddString(d.argName)
	}
	if d.f.has(hasFormatEach) {
		sink.AddUUID(fingerprint.HasFormatEach)
		sink.AddString(d.formatEach)
	}
	if d.f.has(hasBeforeEach) {
		sink.AddUUID(fingerprint.HasBeforeEach)
		sink.AddString(d.beforeEach)
	}
	if d.f.has(hasJoinWith) {
		sink.AddUUID(fingerprint.HasJoinWith)
		sink.AddString(d.joinWith)
	}
	if d.f.has(hasFormatJoined) {
		sink.AddUUID(fingerprint.HasFormatJoined)
		sink.AddString(d.formatJoined)
	}
	if d.f.has(hasTerminateWith) {
		sink.AddUUID(fingerprint.HasTerminateWith)
		sink.AddString(d.terminateWith)
	}
}
