package search

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type animal struct {
	id       int64
	name     string
	size     string
	age      *int64
	neutered bool
}

var (
	animalName     = StringField[animal]{Column: "name", Get: func(a animal) string { return a.name }}
	animalSize     = EnumField[animal]{Column: "size", Get: func(a animal) string { return a.size }}
	animalAge      = IntField[animal]{Column: "age", Get: func(a animal) *int64 { return a.age }}
	animalNeutered = BoolField[animal]{Column: "castrated", Get: func(a animal) bool { return a.neutered }}
)

func ptr[T any](v T) *T { return &v }

func TestPredicate_EmptyMatchesEverything(t *testing.T) {
	pred := Where[animal]().
		Contains(animalName, nil).
		Contains(animalName, ptr("   ")).
		EqualFold(animalSize, ptr("")).
		Is(animalNeutered, nil).
		Equals(animalAge, nil).
		Build()

	require.True(t, pred.IsEmpty())
	items := []animal{{id: 1, name: "a"}, {id: 2, name: "b"}}
	require.Len(t, pred.Filter(items), 2)
}

func TestPredicate_ContainsIsCaseInsensitiveSubstring(t *testing.T) {
	pred := Where[animal]().Contains(animalName, ptr("  REX ")).Build()

	conds := pred.Conditions()
	require.Len(t, conds, 1)
	assert.Equal(t, "name", conds[0].Column())
	assert.Equal(t, OpContains, conds[0].Operator())
	assert.Equal(t, "rex", conds[0].Value())

	assert.True(t, pred.Matches(animal{name: "Tyrannorex"}))
	assert.False(t, pred.Matches(animal{name: "Fido"}))
}

func TestPredicate_EnumIsExactIgnoringCase(t *testing.T) {
	pred := Where[animal]().EqualFold(animalSize, ptr("large")).Build()

	assert.True(t, pred.Matches(animal{size: "LARGE"}))
	assert.False(t, pred.Matches(animal{size: "EXTRA_LARGE"}))
	assert.False(t, pred.Matches(animal{}))
}

func TestPredicate_ConjunctionOfConditions(t *testing.T) {
	pred := Where[animal]().
		Is(animalNeutered, ptr(true)).
		EqualFold(animalSize, ptr("LARGE")).
		Equals(animalAge, ptr(int64(3))).
		Build()

	items := []animal{
		{id: 1, size: "LARGE", neutered: true, age: ptr(int64(3))},
		{id: 2, size: "LARGE", neutered: false, age: ptr(int64(3))},
		{id: 3, size: "MEDIUM", neutered: true, age: ptr(int64(3))},
		{id: 4, size: "LARGE", neutered: true},
	}
	matched := pred.Filter(items)
	require.Len(t, matched, 1)
	assert.Equal(t, int64(1), matched[0].id)
}

func TestBuilder_BuildSnapshotsConditions(t *testing.T) {
	b := Where[animal]().Contains(animalName, ptr("a"))
	first := b.Build()
	b.Contains(animalName, ptr("b"))

	assert.Len(t, first.Conditions(), 1)
	assert.Len(t, b.Build().Conditions(), 2)
}

func TestSortable_SortAndWindow(t *testing.T) {
	sortable := Sortable[animal]{
		"name": {Column: "name", Compare: func(a, b animal) int { return cmp.Compare(a.name, b.name) }},
	}
	items := []animal{{id: 3, name: "b"}, {id: 1, name: "c"}, {id: 2, name: "b"}}

	require.NoError(t, sortable.Validate([]Order{{Property: "name", Direction: Desc}}))
	require.ErrorIs(t, sortable.Validate([]Order{{Property: "password"}}), ErrInvalidPageRequest)

	sortable.Sort(items, []Order{{Property: "name", Direction: Desc}}, func(a animal) int64 { return a.id })
	assert.Equal(t, []int64{1, 2, 3}, []int64{items[0].id, items[1].id, items[2].id})

	window := Window(items, PageRequest{Page: 1, Size: 2})
	require.Len(t, window, 1)
	assert.Equal(t, int64(3), window[0].id)
	assert.Empty(t, Window(items, PageRequest{Page: 5, Size: 2}))
}
