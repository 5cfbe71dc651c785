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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sushain97/cmdline/fingerprint"
	"github.com/sushain97/cmdline/nestedset"
	"github.com/sushain97/cmdline/scripting"
	"github.com/sushain97/cmdline/value"
)

type prefixRemapper struct{ prefix string }

func (r prefixRemapper) Map(execPath string) string                   { return r.prefix + execPath }
func (r prefixRemapper) MapCustomStarlarkArgs(args []string) []string { return args }

// The fingerprinter never takes a remapper at all (it fixes it to
// value.NOOP), so two remappers that diverge on Arguments must still agree
// on AddToFingerprint.
func TestFingerprintStableAcrossRemapping(t *testing.T) {
	df := &value.DerivedFile{Path: "out/gen/x"}
	sf := &value.SourceFile{Path: "src/y"}
	cl := NewBuilder().Add(df).Add(sf).Build(false)

	argsA, err := cl.ArgumentsWithExpander(context.Background(), nil, prefixRemapper{"/A/"})
	require.NoError(t, err)
	argsB, err := cl.ArgumentsWithExpander(context.Background(), nil, prefixRemapper{"/B/"})
	require.NoError(t, err)

	require.NotEqual(t, argsA[0], argsB[0], "derived artifact must differ across remappers")
	require.Equal(t, argsA[1], argsB[1], "source artifact must be remapper-invariant")
	require.Equal(t, "src/y", argsA[1])

	sinkA := fingerprint.NewSha256Sink()
	require.NoError(t, cl.AddToFingerprint(context.Background(), nil, nil, sinkA))
	sinkB := fingerprint.NewSha256Sink()
	require.NoError(t, cl.AddToFingerprint(context.Background(), nil, nil, sinkB))
	require.Equal(t, sinkA.Sum(), sinkB.Sum())
}

func TestFeatureTagsDistinguishConfiguredVectors(t *testing.T) {
	fingerprintOf := func(v *VectorArgBuilder) [32]byte {
		cl := NewBuilder().AddVector(v).Build(false)
		sink := fingerprint.NewSha256Sink()
		require.NoError(t, cl.AddToFingerprint(context.Background(), nil, nil, sink))
		return sink.Sum()
	}

	plain := fingerprintOf(NewVectorArg().SetValues(anySlice("a", "b")...))
	uniquified := fingerprintOf(NewVectorArg().SetValues(anySlice("a", "b")...).SetUniquify())
	require.NotEqual(t, plain, uniquified)
}

func TestNestedSetFingerprintCacheIsConsultedOnRepeatedSet(t *testing.T) {
	calls := 0
	callable := &fakeCallable{
		numParams: 1,
		call: func(ctx context.Context, args []any) (any, error) {
			calls++
			return args[0].(string) + "!", nil
		},
	}

	set := nestedset.New[any](nestedset.Preorder, []any{"x", "y"}, nil)
	build := func() CommandLine {
		return NewBuilder().AddVector(
			NewVectorArg().SetNestedSet(set).SetMapEach(callable, scripting.Location{}, nil),
		).Build(false)
	}

	cache := fingerprint.NewNestedSetFingerprintCache(8)
	sink1 := fingerprint.NewSha256Sink()
	require.NoError(t, build().AddToFingerprint(context.Background(), nil, cache, sink1))
	sink2 := fingerprint.NewSha256Sink()
	require.NoError(t, build().AddToFingerprint(context.Background(), nil, cache, sink2))
	require.Equal(t, sink1.Sum(), sink2.Sum())
	require.Equal(t, 2, calls, "the second fold must reuse the cached sub-fingerprint")
}
