// Package search composes conjunctive filter predicates over typed entity
// fields. A predicate can be evaluated in process (memory stores) or translated
// into the storage layer's native where clause (see platform/postgres).
package search

import "strings"

// Operator identifies how a condition compares a column with its value.
type Operator int

const (
	// OpContains is a case-insensitive substring match. The value is stored
	// trimmed and lower-cased, without wildcard markers.
	OpContains Operator = iota + 1
	// OpEqualFold is a case-insensitive exact match on a string or enum column.
	OpEqualFold
	// OpEquals is an exact equality match on a boolean or numeric column.
	OpEquals
)

func (o Operator) String() string {
	switch o {
	case OpContains:
		return "contains"
	case OpEqualFold:
		return "equalFold"
	case OpEquals:
		return "equals"
	default:
		return "unknown"
	}
}

// Condition is a single filter term bound to one column of entity E.
type Condition[E any] struct {
	column string
	op     Operator
	value  any
	match  func(E) bool
}

// Column returns the persisted column the condition applies to.
func (c Condition[E]) Column() string { return c.column }

// Operator returns the comparison operator.
func (c Condition[E]) Operator() Operator { return c.op }

// Value returns the normalized comparison value.
func (c Condition[E]) Value() any { return c.value }

// Matches evaluates the condition against an in-memory entity.
func (c Condition[E]) Matches(entity E) bool {
	if c.match == nil {
		return true
	}
	return c.match(entity)
}

// Predicate is the conjunction of its conditions. The zero value has no
// conditions and matches every entity.
type Predicate[E any] struct {
	conditions []Condition[E]
}

// Conditions returns a copy of the predicate's conditions in insertion order.
func (p Predicate[E]) Conditions() []Condition[E] {
	out := make([]Condition[E], len(p.conditions))
	copy(out, p.conditions)
	return out
}

// IsEmpty reports whether the predicate matches unconditionally.
func (p Predicate[E]) IsEmpty() bool { return len(p.conditions) == 0 }

// Matches reports whether every condition holds for entity.
func (p Predicate[E]) Matches(entity E) bool {
	for _, cond := range p.conditions {
		if !cond.Matches(entity) {
			return false
		}
	}
	return true
}

// Filter returns the entities that satisfy the predicate, preserving order.
func (p Predicate[E]) Filter(entities []E) []E {
	out := make([]E, 0, len(entities))
	for _, entity := range entities {
		if p.Matches(entity) {
			out = append(out, entity)
		}
	}
	return out
}

// Builder accumulates optional conditions. Absent parameters contribute nothing.
type Builder[E any] struct {
	conditions []Condition[E]
}

// Where starts a new predicate over entity type E.
func Where[E any]() *Builder[E] {
	return &Builder[E]{}
}

// Contains adds a case-insensitive substring condition when value is non-blank.
func (b *Builder[E]) Contains(field StringField[E], value *string) *Builder[E] {
	needle, ok := normalize(value)
	if !ok {
		return b
	}
	get := field.Get
	b.conditions = append(b.conditions, Condition[E]{
		column: field.Column,
		op:     OpContains,
		value:  needle,
		match: func(e E) bool {
			return strings.Contains(strings.ToLower(get(e)), needle)
		},
	})
	return b
}

// EqualFold adds a case-insensitive exact condition against the symbolic form
// of an enum column when value is non-blank.
func (b *Builder[E]) EqualFold(field EnumField[E], value *string) *Builder[E] {
	want, ok := normalize(value)
	if !ok {
		return b
	}
	get := field.Get
	b.conditions = append(b.conditions, Condition[E]{
		column: field.Column,
		op:     OpEqualFold,
		value:  want,
		match: func(e E) bool {
			return strings.ToLower(get(e)) == want
		},
	})
	return b
}

// Is adds an equality condition on a boolean column when value is present.
func (b *Builder[E]) Is(field BoolField[E], value *bool) *Builder[E] {
	if value == nil {
		return b
	}
	want := *value
	get := field.Get
	b.conditions = append(b.conditions, Condition[E]{
		column: field.Column,
		op:     OpEquals,
		value:  want,
		match: func(e E) bool {
			return get(e) == want
		},
	})
	return b
}

// Equals adds an equality condition on a numeric column when value is present.
// Entities whose column is null never match.
func (b *Builder[E]) Equals(field IntField[E], value *int64) *Builder[E] {
	if value == nil {
		return b
	}
	want := *value
	get := field.Get
	b.conditions = append(b.conditions, Condition[E]{
		column: field.Column,
		op:     OpEquals,
		value:  want,
		match: func(e E) bool {
			got := get(e)
			return got != nil && *got == want
		},
	})
	return b
}

// Build returns the accumulated predicate.
func (b *Builder[E]) Build() Predicate[E] {
	return Predicate[E]{conditions: append([]Condition[E](nil), b.conditions...)}
}

func normalize(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return "", false
	}
	return strings.ToLower(trimmed), true
}
