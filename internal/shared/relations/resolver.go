// Package relations resolves foreign identifier sets into the entities that
// exist, and keeps in-memory many-to-many associations for the memory stores.
package relations

import (
	"cmp"
	"context"
	"slices"
)

// Lookup loads the entities for the given identifiers. Unknown identifiers are
// simply absent from the result.
type Lookup[T any] func(ctx context.Context, ids []int64) ([]T, error)

// Resolver narrows a set of foreign identifiers to live entity references.
type Resolver[T any] struct {
	lookup   Lookup[T]
	identify func(T) int64
}

// NewResolver builds a resolver over a store lookup and an identity accessor.
func NewResolver[T any](lookup Lookup[T], identify func(T) int64) *Resolver[T] {
	return &Resolver[T]{lookup: lookup, identify: identify}
}

// Resolve returns the entities referenced by ids, ordered by identifier.
// Nil or empty input yields an empty, non-nil slice.
func (r *Resolver[T]) Resolve(ctx context.Context, ids []int64) ([]T, error) {
	wanted := Normalize(ids)
	if len(wanted) == 0 {
		return []T{}, nil
	}
	found, err := r.lookup(ctx, wanted)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(found))
	seen := make(map[int64]struct{}, len(found))
	for _, entity := range found {
		id := r.identify(entity)
		if _, dup := seen[id]; dup {
			continue
		}
		if _, ok := slices.BinarySearch(wanted, id); !ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, entity)
	}
	slices.SortFunc(out, func(a, b T) int {
		return cmp.Compare(r.identify(a), r.identify(b))
	})
	return out, nil
}

// ResolveIDs is Resolve projected to identifiers.
func (r *Resolver[T]) ResolveIDs(ctx context.Context, ids []int64) ([]int64, error) {
	entities, err := r.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(entities))
	for _, entity := range entities {
		out = append(out, r.identify(entity))
	}
	return out, nil
}

// Normalize sorts ids, removes duplicates and drops non-positive values.
func Normalize(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
