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

	"github.com/sushain97/cmdline/fingerprint"
	"github.com/sushain97/cmdline/value"
)

// CommandLine is the built, immutable product of a Builder. Its two
// implementations, plainCommandLine and groupedCommandLine, correspond to
// Build's two variants: plain and grouped-by-start-index.
type CommandLine interface {
	// Arguments expands the buffer with no expander and an identity
	// remapper, for callers that only need the argument vector itself
	// (e.g. for display or hashing) and have no real execution-time
	// directory expander available.
	Arguments(ctx context.Context) ([]string, error)

	// ArgumentsWithExpander expands the buffer against a real execution-time
	// expander and remapper.
	ArgumentsWithExpander(ctx context.Context, expander value.Expander, remapper value.Remapper) ([]string, error)

	// AddToFingerprint folds the buffer into sink. expander and cache may
	// both be nil: at pure analysis time there is neither a real directory
	// expander nor a cross-build nested-set fingerprint cache.
	AddToFingerprint(ctx context.Context, expander value.Expander, cache *fingerprint.NestedSetFingerprintCache, sink fingerprint.Sink) error
}

// plainCommandLine decodes the buffer by walking it once, left to right,
// with no grouping.
type plainCommandLine struct {
	stream []slot
}

var _ CommandLine = (*plainCommandLine)(nil)

func (cl *plainCommandLine) Arguments(ctx context.Context) ([]string, error) {
	return cl.ArgumentsWithExpander(ctx, nil, value.NOOP)
}

func (cl *plainCommandLine) ArgumentsWithExpander(ctx context.Context, expander value.Expander, remapper value.Remapper) ([]string, error) {
	ec := evalCtx{ctx: ctx, expander: expander, remapper: remapper, host: value.DefaultCoercer{}}
	out, err := decodeBuffer(ec, cl.stream)
	if err != nil {
		return nil, err
	}
	return remapper.MapCustomStarlarkArgs(out), nil
}

func (cl *plainCommandLine) AddToFingerprint(ctx context.Context, expander value.Expander, cache *fingerprint.NestedSetFingerprintCache, sink fingerprint.Sink) error {
	fc := fpCtx{ctx: ctx, host: value.DefaultCoercer{}, expander: expander, cache: cache, sink: sink}
	return addBufferToFingerprint(fc, cl.stream)
}

// groupedCommandLine implements the flag-per-line variant, mirroring
// Bazel's StarlarkCustomCommandLineWithIndexes: the parallel groupStarts
// list is replayed in lockstep with the decode cursor rather than
// re-scanned.
type groupedCommandLine struct {
	stream      []slot
	groupStarts []int
}

var _ CommandLine = (*groupedCommandLine)(nil)

func (cl *groupedCommandLine) Arguments(ctx context.Context) ([]string, error) {
	return cl.ArgumentsWithExpander(ctx, nil, value.NOOP)
}

func (cl *groupedCommandLine) ArgumentsWithExpander(ctx context.Context, expander value.Expander, remapper value.Remapper) ([]string, error) {
	ec := evalCtx{ctx: ctx, expander: expander, remapper: remapper, host: value.DefaultCoercer{}}
	out, err := decodeBufferGrouped(ec, cl.stream, cl.groupStarts)
	if err != nil {
		return nil, err
	}
	return remapper.MapCustomStarlarkArgs(out), nil
}

func (cl *groupedCommandLine) AddToFingerprint(ctx context.Context, expander value.Expander, cache *fingerprint.NestedSetFingerprintCache, sink fingerprint.Sink) error {
	fc := fpCtx{ctx: ctx, host: value.DefaultCoercer{}, expander: expander, cache: cache, sink: sink}
	return addBufferToFingerprint(fc, cl.stream)
}

// decodeBuffer walks stream once, left to right, with no grouping.
func decodeBuffer(ec evalCtx, stream []slot) ([]string, error) {
	var out []string
	i := 0
	for i < len(stream) {
		switch stream[i].kind {
		case slotVectorFeatures:
			strs, next, err := evalVectorArg(ec, stream, i)
			if err != nil {
				return nil, err
			}
			out = append(out, strs...)
			i = next
		case slotSingleFormattedMarker:
			formatted, err := decodeSingleFormatted(ec, stream, i)
			if err != nil {
				return nil, err
			}
			out = append(out, formatted)
			i += 3
		default:
			coerced, err := value.Expand(stream[i].value, ec.remapper, ec.host)
			if err != nil {
				return nil, err
			}
			out = append(out, coerced)
			i++
		}
	}
	return out, nil
}

func decodeSingleFormatted(ec evalCtx, stream []slot, i int) (string, error) {
	v := stream[i+1].value
	format := stream[i+2].str
	coerced, err := value.Expand(v, ec.remapper, ec.host)
	if err != nil {
		return "", err
	}
	return formatOne(format, coerced)
}

// decodeBufferGrouped decodes like decodeBuffer, but records, for every
// slot index present in groupStarts, the output length at the moment the
// cursor reaches it. Afterwards it coalesces each recorded group of >=2
// tokens into "first=rest joined by spaces".
func decodeBufferGrouped(ec evalCtx, stream []slot, groupStarts []int) ([]string, error) {
	var out []string
	var resultGroupStarts []int
	gi := 0
	i := 0
	for i < len(stream) {
		for gi < len(groupStarts) && groupStarts[gi] == i {
			resultGroupStarts = append(resultGroupStarts, len(out))
			gi++
		}
		switch stream[i].kind {
		case slotVectorFeatures:
			strs, next, err := evalVectorArg(ec, stream, i)
			if err != nil {
				return nil, err
			}
			out = append(out, strs...)
			i = next
		case slotSingleFormattedMarker:
			formatted, err := decodeSingleFormatted(ec, stream, i)
			if err != nil {
				return nil, err
			}
			out = append(out, formatted)
			i += 3
		default:
			coerced, err := value.Expand(stream[i].value, ec.remapper, ec.host)
			if err != nil {
				return nil, err
			}
			out = append(out, coerced)
			i++
		}
	}
	for gi < len(groupStarts) {
		resultGroupStarts = append(resultGroupStarts, len(out))
		gi++
	}
	return coalesceGroups(out, resultGroupStarts), nil
}

// coalesceGroups joins each recorded group into one flag-per-line token.
// Tokens outside any recorded group pass through unchanged.
func coalesceGroups(out []string, starts []int) []string {
	if len(starts) == 0 {
		return out
	}

	var result []string
	cursor := 0
	for gi, start := range starts {
		if start > cursor {
			result = append(result, out[cursor:start]...)
		}
		end := len(out)
		if gi+1 < len(starts) {
			end = starts[gi+1]
		}
		group := out[start:end]
		switch len(group) {
		case 0:
		case 1:
			result = append(result, group[0])
		default:
			first, rest := group[0], group[1:]
			joined := strings.Join(rest, " ")
			if first == "" {
				result = append(result, joined)
			} else {
				result = append(result, first+"="+joined)
			}
		}
		cursor = end
	}
	if cursor < len(out) {
		result = append(result, out[cursor:]...)
	}
	return result
}

// addBufferToFingerprint is the top-level fold walk, folding every
// directive's rendered value into sink in stream order.
func addBufferToFingerprint(fc fpCtx, stream []slot) error {
	i := 0
	for i < len(stream) {
		switch stream[i].kind {
		case slotVectorFeatures:
			next, err := addVectorArgToFingerprint(fc, stream, i)
			if err != nil {
				return err
			}
			i = next
		case slotSingleFormattedMarker:
			v := stream[i+1].value
			format := stream[i+2].str
			coerced, err := value.Expand(v, value.NOOP, fc.host)
			if err != nil {
				return err
			}
			fc.sink.AddString(coerced)
			fc.sink.AddString(format)
			fc.sink.AddUUID(fingerprint.SingleFormatted)
			i += 3
		default:
			coerced, err := value.Expand(stream[i].value, value.NOOP, fc.host)
			if err != nil {
				return err
			}
			fc.sink.AddString(coerced)
			i++
		}
	}
	return nil
}
