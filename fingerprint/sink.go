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

// Package fingerprint implements the content-addressed fold target a built
// CommandLine writes itself into, plus a cache that lets repeated folds of
// the same nested set reuse a previously computed sub-fingerprint rather
// than re-walking it. It uses github.com/google/uuid for stable per-feature
// salts and github.com/hashicorp/golang-lru/v2 for the cache, an
// identity-keyed bounded cache in the same spirit as an in-memory artifact
// cache keyed by an object's identity rather than its contents.
package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"

	"github.com/google/uuid"
)

// Sink is the fold target a CommandLine writes its fingerprint into.
// AddBytes additionally lets the nested-set cache fold a previously
// computed sub-fingerprint in directly.
type Sink interface {
	AddString(s string)
	AddUUID(u uuid.UUID)
	AddBytes(b []byte)
}

// Sha256Sink is the one concrete Sink this module ships: every
// variable-length write (AddString, AddBytes) is length-prefixed so that,
// e.g., AddString("ab"); AddString("c") folds differently from
// AddString("a"); AddString("bc"). AddUUID writes its fixed 16 bytes as-is.
type Sha256Sink struct {
	h hash.Hash
}

var _ Sink = (*Sha256Sink)(nil)

func NewSha256Sink() *Sha256Sink {
	return &Sha256Sink{h: sha256.New()}
}

func (s *Sha256Sink) AddString(str string) {
	s.writeLengthPrefixed([]byte(str))
}

func (s *Sha256Sink) AddUUID(u uuid.UUID) {
	b := u // [16]byte
	s.h.Write(b[:])
}

func (s *Sha256Sink) AddBytes(b []byte) {
	s.writeLengthPrefixed(b)
}

func (s *Sha256Sink) writeLengthPrefixed(b []byte) {
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(b)))
	s.h.Write(lenBuf[:])
	s.h.Write(b)
}

// Sum returns the digest accumulated so far without resetting the sink.
func (s *Sha256Sink) Sum() [sha256.Size]byte {
	var out [sha256.Size]byte
	copy(out[:], s.h.Sum(nil))
	return out
}
