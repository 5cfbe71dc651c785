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

// Package nestedset implements DepSet, the core's NestedSet collaborator:
// a lazily flattened, deduplicating immutable set of values shared across
// the graph (GLOSSARY "Nested set").
//
// This is conceptually compatible with Bazel's depsets:
// https://docs.bazel.build/versions/master/skylark/depsets.html and with
// Soong's own reflection-based android.DepSet. Soong's own doc comment on
// that type says it predates Go generics and should be replaced with a
// generic implementation once the language supports one, with callers
// getting a thin type-safe wrapper in the meantime; this package is that
// replacement, so there is exactly one DepSet type instead of one untyped
// depSet plus one typed wrapper per element type.
package nestedset

import "fmt"

// Order controls how DepSet.ToList walks the DAG of transitive DepSets.
type Order int

const (
	Preorder Order = iota
	Postorder
	Topological
)

func (o Order) String() string {
	switch o {
	case Preorder:
		return "PREORDER"
	case Postorder:
		return "POSTORDER"
	case Topological:
		return "TOPOLOGICAL"
	default:
		panic(fmt.Errorf("invalid nestedset.Order %d", o))
	}
}

// DepSet efficiently stores a slice of T from transitive dependencies
// without copying. It is stored as a DAG of DepSet nodes, each of which has
// some direct contents and a list of dependency DepSet nodes.
//
// A DepSet is created by New or NewBuilder(...).Build from the direct
// contents and the transitive *DepSets of dependencies. A DepSet is
// immutable once created, the same way a built CommandLine's instruction
// stream is immutable and any NestedSet it references stays that way too.
type DepSet[T any] struct {
	preorder   bool
	reverse    bool
	order      Order
	direct     []T
	transitive []*DepSet[T]
}

// New returns an immutable DepSet with the given order, direct, and
// transitive contents.
func New[T any](order Order, direct []T, transitive []*DepSet[T]) *DepSet[T] {
	var directCopy []T
	if order == Topological {
		directCopy = reverseSlice(direct)
		transitive = reverseSliceCopy(transitive)
	} else {
		directCopy = append([]T(nil), direct...)
	}
	return &DepSet[T]{
		preorder:   order == Preorder,
		reverse:    order == Topological,
		order:      order,
		direct:     directCopy,
		transitive: transitive,
	}
}

// Builder incrementally assembles an immutable DepSet.
type Builder[T any] struct {
	order      Order
	direct     []T
	transitive []*DepSet[T]
}

// NewBuilder returns a Builder for constructing a DepSet with the given
// order.
func NewBuilder[T any](order Order) *Builder[T] {
	return &Builder[T]{order: order}
}

// Direct appends direct contents to the right of any already added.
func (b *Builder[T]) Direct(direct ...T) *Builder[T] {
	b.direct = append(b.direct, direct...)
	return b
}

// Transitive appends transitive DepSets to the right of any already added.
// Every transitive DepSet must share this builder's order.
func (b *Builder[T]) Transitive(transitive ...*DepSet[T]) *Builder[T] {
	for _, t := range transitive {
		if t.order != b.order {
			panic(fmt.Errorf("nestedset: incompatible order, new DepSet is %s but transitive DepSet is %s", b.order, t.order))
		}
	}
	b.transitive = append(b.transitive, transitive...)
	return b
}

// Build returns the DepSet built so far. The Builder retains its contents
// and can go on to build further DepSets.
func (b *Builder[T]) Build() *DepSet[T] {
	return New(b.order, b.direct, b.transitive)
}

// walk calls visit in depth-first order, preordered if d.preorder is set,
// otherwise postordered.
func (d *DepSet[T]) walk(visit func([]T)) {
	visited := make(map[*DepSet[T]]bool)
	var dfs func(d *DepSet[T])
	dfs = func(d *DepSet[T]) {
		visited[d] = true
		if d.preorder {
			visit(d.direct)
		}
		for _, dep := range d.transitive {
			if !visited[dep] {
				dfs(dep)
			}
		}
		if !d.preorder {
			visit(d.direct)
		}
	}
	dfs(d)
}

// ToList flattens the DepSet to a list, deduplicated to the first
// occurrence of each element, in the order determined by d's Order.
func (d *DepSet[T]) ToList() []T {
	if d == nil {
		return nil
	}
	var list []T
	d.walk(func(direct []T) {
		list = append(list, direct...)
	})
	list = firstUnique(list)
	if d.reverse {
		reverseSliceInPlace(list)
	}
	return list
}

// Order returns the DepSet's walk order.
func (d *DepSet[T]) Order() Order { return d.order }

func firstUnique[T any](in []T) []T {
	writeIndex := 0
	seen := make(map[any]bool, len(in))
outer:
	for readIndex := 0; readIndex < len(in); readIndex++ {
		key := any(in[readIndex])
		if seen[key] {
			continue outer
		}
		seen[key] = true
		if readIndex != writeIndex {
			in[writeIndex] = in[readIndex]
		}
		writeIndex++
	}
	return in[:writeIndex]
}

func reverseSliceInPlace[T any](in []T) {
	for i, j := 0, len(in)-1; i < j; i, j = i+1, j-1 {
		in[i], in[j] = in[j], in[i]
	}
}

func reverseSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

func reverseSliceCopy[T any](in []*DepSet[T]) []*DepSet[T] {
	out := make([]*DepSet[T], len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
