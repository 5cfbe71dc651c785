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
	lru "github.com/hashicorp/golang-lru/v2"
)

// AdaptorKey identifies a map-each adaptor for caching purposes only: two
// adaptors are equal iff they reference the same callable by identity and
// have the same hasArtifactExpander bit. Callable is compared by Go
// interface equality, which for the pointer-backed implementations this
// module ships is exactly identity comparison.
type AdaptorKey struct {
	Callable    any
	HasExpander bool
}

type cacheKey struct {
	set     any
	adaptor AdaptorKey
}

// NestedSetFingerprintCache lets repeated folds of the same (nested set,
// adaptor) pair reuse a previously computed sub-fingerprint instead of
// re-walking the set. Cache lifetime and invalidation are the caller's
// responsibility — a single cache is meant to be shared across the actions
// of one build and discarded afterward — and this module ships one default
// implementation, backed by hashicorp/golang-lru/v2.
type NestedSetFingerprintCache struct {
	cache *lru.Cache[cacheKey, []byte]
}

// NewNestedSetFingerprintCache creates a cache holding up to size distinct
// (nested-set, adaptor) sub-fingerprints.
func NewNestedSetFingerprintCache(size int) *NestedSetFingerprintCache {
	c, err := lru.New[cacheKey, []byte](size)
	if err != nil {
		// Only non-nil for size <= 0; a programming error, not a runtime one.
		panic(err)
	}
	return &NestedSetFingerprintCache{cache: c}
}

// AddNestedSetToFingerprint folds the sub-fingerprint of setIdentity (the
// nested set's own pointer, used as an identity key — never its contents)
// under adaptor into sink, computing it via compute on a cache miss and
// reusing the cached digest on a hit. setIdentity lets one cache serve
// every DepSet[T] instantiation without the cache itself being generic.
func (c *NestedSetFingerprintCache) AddNestedSetToFingerprint(sink Sink, setIdentity any, adaptor AdaptorKey, compute func() ([]byte, error)) error {
	key := cacheKey{set: setIdentity, adaptor: adaptor}
	if cached, ok := c.cache.Get(key); ok {
		sink.AddBytes(cached)
		return nil
	}

	digest, err := compute()
	if err != nil {
		return err
	}
	c.cache.Add(key, digest)
	sink.AddBytes(digest)
	return nil
}
