package search

// StringField binds a free-text column to its accessor on E.
type StringField[E any] struct {
	Column string
	Get    func(E) string
}

// EnumField binds an enum column to the accessor returning its symbolic form.
type EnumField[E any] struct {
	Column string
	Get    func(E) string
}

// BoolField binds a boolean column to its accessor on E.
type BoolField[E any] struct {
	Column string
	Get    func(E) bool
}

// IntField binds a nullable integer column to its accessor on E.
type IntField[E any] struct {
	Column string
	Get    func(E) *int64
}

// SortField binds a sortable property to its column and in-memory ordering.
type SortField[E any] struct {
	Column  string
	Compare func(a, b E) int
}
