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
)

func anySlice(values ...string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func TestBeforeEachEmitsPrefixPerElement(t *testing.T) {
	b := NewBuilder().
		Add("--deps").
		AddVector(NewVectorArg().SetValues(anySlice("a", "b", "c")...).SetBeforeEach("-I"))

	cl := b.Build(false)
	args, err := cl.Arguments(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"--deps", "-I", "a", "-I", "b", "-I", "c"}, args)
}

func TestJoinWithAndFormatJoinedOmitWhenEmpty(t *testing.T) {
	build := func(values ...string) ([]string, error) {
		b := NewBuilder().AddVector(
			NewVectorArg().
				SetValues(anySlice(values...)...).
				SetArgName("--names").
				SetJoinWith(",").
				SetFormatJoined("[%s]").
				SetOmitIfEmpty(),
		)
		return b.Build(false).Arguments(context.Background())
	}

	empty, err := build()
	require.NoError(t, err)
	require.Empty(t, empty)

	single, err := build("x")
	require.NoError(t, err)
	require.Equal(t, []string{"--names", "[x]"}, single)
}

func TestUniquifyPreservesFirstOccurrenceOrder(t *testing.T) {
	b := NewBuilder().AddVector(
		NewVectorArg().
			SetValues(anySlice("b", "a", "b", "c", "a")...).
			SetUniquify().
			SetFormatEach("k=%s"),
	)

	args, err := b.Build(false).Arguments(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"k=b", "k=a", "k=c"}, args)
}

func TestFlagPerLineGroupingCoalescesFirstTokenWithRest(t *testing.T) {
	b := NewBuilder().
		RecordArgStart().
		Add("--flag").
		Add("v1").
		Add("v2").
		RecordArgStart().
		Add("standalone")

	args, err := b.Build(true).Arguments(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"--flag=v1 v2", "standalone"}, args)
}

func TestFlagPerLineGroupingEmptyFirstToken(t *testing.T) {
	b := NewBuilder().
		RecordArgStart().
		Add("").
		Add("v1").
		Add("v2").
		RecordArgStart().
		Add("standalone")

	args, err := b.Build(true).Arguments(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"v1 v2", "standalone"}, args)
}

func TestEmptyBuilderProducesEmptyCommandLine(t *testing.T) {
	args, err := NewBuilder().Build(false).Arguments(context.Background())
	require.NoError(t, err)
	require.Empty(t, args)

	args, err = NewBuilder().Build(true).Arguments(context.Background())
	require.NoError(t, err)
	require.Empty(t, args)
}

func TestBeforeEachAndJoinWithRejectedAtBuildTime(t *testing.T) {
	require.Panics(t, func() {
		NewBuilder().AddVector(
			NewVectorArg().SetValues(anySlice("a")...).SetBeforeEach("-I").SetJoinWith(","),
		)
	})
}
