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

package fingerprint

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSha256SinkLengthPrefixAvoidsConcatenationCollision(t *testing.T) {
	a := NewSha256Sink()
	a.AddString("ab")
	a.AddString("c")

	b := NewSha256Sink()
	b.AddString("a")
	b.AddString("bc")

	require.NotEqual(t, a.Sum(), b.Sum())
}

func TestSha256SinkIsOrderSensitive(t *testing.T) {
	a := NewSha256Sink()
	a.AddString("x")
	a.AddUUID(ExpandDirectories)

	b := NewSha256Sink()
	b.AddUUID(ExpandDirectories)
	b.AddString("x")

	require.NotEqual(t, a.Sum(), b.Sum())
}

func TestSha256SinkAddBytesFoldsRawDigest(t *testing.T) {
	inner := NewSha256Sink()
	inner.AddString("payload")
	digest := inner.Sum()

	a := NewSha256Sink()
	a.AddBytes(digest[:])

	b := NewSha256Sink()
	b.AddBytes(digest[:])

	require.Equal(t, a.Sum(), b.Sum())
	require.NotEqual(t, a.Sum(), inner.Sum())
}

func TestSaltsAreDistinct(t *testing.T) {
	salts := []uuid.UUID{
		ExpandDirectories, Uniquify, OmitIfEmpty, HasArgName, HasFormatEach,
		HasBeforeEach, HasJoinWith, HasFormatJoined, HasTerminateWith, SingleFormatted,
	}
	seen := make(map[uuid.UUID]bool, len(salts))
	for _, s := range salts {
		require.False(t, seen[s], "salt %s reused", s)
		seen[s] = true
	}
}
