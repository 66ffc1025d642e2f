package ports

import (
	"cmp"
	"strings"

	"github.com/Apurer/paws-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

// Filterable pet columns.
var (
	FieldName        = search.StringField[*domain.Pet]{Column: "name", Get: func(p *domain.Pet) string { return p.Name }}
	FieldBreed       = search.StringField[*domain.Pet]{Column: "breed", Get: func(p *domain.Pet) string { return p.Breed }}
	FieldGender      = search.StringField[*domain.Pet]{Column: "gender", Get: func(p *domain.Pet) string { return p.Gender }}
	FieldDescription = search.StringField[*domain.Pet]{Column: "description", Get: func(p *domain.Pet) string { return p.Description }}
	FieldSize        = search.EnumField[*domain.Pet]{Column: "size", Get: func(p *domain.Pet) string { return string(p.Size) }}
	FieldAge         = search.IntField[*domain.Pet]{Column: "age", Get: func(p *domain.Pet) *int64 { return p.Age }}
	FieldCastrated   = search.BoolField[*domain.Pet]{Column: "castrated", Get: func(p *domain.Pet) bool { return p.Castrated }}
	FieldDewormed    = search.BoolField[*domain.Pet]{Column: "dewormed", Get: func(p *domain.Pet) bool { return p.Dewormed }}
	FieldVaccinated  = search.BoolField[*domain.Pet]{Column: "vaccinated", Get: func(p *domain.Pet) bool { return p.Vaccinated }}
)

// Sortable lists the properties pets can be ordered by.
var Sortable = search.Sortable[*domain.Pet]{
	"id":    {Column: "id", Compare: func(a, b *domain.Pet) int { return cmp.Compare(a.ID, b.ID) }},
	"name":  {Column: "name", Compare: func(a, b *domain.Pet) int { return strings.Compare(a.Name, b.Name) }},
	"breed": {Column: "breed", Compare: func(a, b *domain.Pet) int { return strings.Compare(a.Breed, b.Breed) }},
	"size":  {Column: "size", Compare: func(a, b *domain.Pet) int { return strings.Compare(string(a.Size), string(b.Size)) }},
	"age": {Column: "age", Compare: func(a, b *domain.Pet) int {
		return cmp.Compare(ageOrZero(a), ageOrZero(b))
	}},
}

// PetID identifies a pet for ordering tie-breaks.
func PetID(p *domain.Pet) int64 { return p.ID }

func ageOrZero(p *domain.Pet) int64 {
	if p.Age == nil {
		return -1
	}
	return *p.Age
}
