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

package action

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sushain97/cmdline/cmdline"
	"github.com/sushain97/cmdline/fingerprint"
)

// Build needs a real blueprint.ModuleContext, which this core has no
// fixture for (Soong's own RuleBuilder.Build tests lean on
// android.GroupFixturePreparers, a much larger test harness than this
// core's narrower scope justifies). Build's own argument-expansion and
// error-propagation logic is already exercised through cmdline's own
// CommandLine tests; Fingerprint needs nothing blueprint-shaped and is
// tested directly here.

func buildSpec() Spec {
	b := cmdline.NewBuilder()
	b.Add("gcc").AddVector(cmdline.NewVectorArg().SetValues("-Wall", "-O2"))
	return Spec{
		Name:    "compile",
		Command: b.Build(false),
	}
}

func TestFingerprintIsStableAcrossCalls(t *testing.T) {
	spec := buildSpec()
	cache := fingerprint.NewNestedSetFingerprintCache(16)

	sinkA := fingerprint.NewSha256Sink()
	require.NoError(t, Fingerprint(context.Background(), spec, nil, cache, sinkA))

	sinkB := fingerprint.NewSha256Sink()
	require.NoError(t, Fingerprint(context.Background(), spec, nil, cache, sinkB))

	require.Equal(t, sinkA.Sum(), sinkB.Sum())
}

func TestFingerprintDiffersAcrossDistinctCommands(t *testing.T) {
	cache := fingerprint.NewNestedSetFingerprintCache(16)

	b1 := cmdline.NewBuilder()
	b1.Add("gcc").AddVector(cmdline.NewVectorArg().SetValues("-Wall"))
	spec1 := Spec{Name: "compile", Command: b1.Build(false)}

	b2 := cmdline.NewBuilder()
	b2.Add("gcc").AddVector(cmdline.NewVectorArg().SetValues("-Wextra"))
	spec2 := Spec{Name: "compile", Command: b2.Build(false)}

	sink1 := fingerprint.NewSha256Sink()
	require.NoError(t, Fingerprint(context.Background(), spec1, nil, cache, sink1))

	sink2 := fingerprint.NewSha256Sink()
	require.NoError(t, Fingerprint(context.Background(), spec2, nil, cache, sink2))

	require.NotEqual(t, sink1.Sum(), sink2.Sum())
}
