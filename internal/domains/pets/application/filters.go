package application

import (
	types "github.com/Apurer/paws-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/paws-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/paws-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

// BuildPredicate ANDs together a condition for every filter present in input.
func BuildPredicate(input types.SearchPetsInput) search.Predicate[*domain.Pet] {
	return search.Where[*domain.Pet]().
		Contains(ports.FieldName, input.Name).
		Contains(ports.FieldBreed, input.Breed).
		Equals(ports.FieldAge, input.Age).
		Contains(ports.FieldGender, input.Gender).
		EqualFold(ports.FieldSize, input.Size).
		Is(ports.FieldCastrated, input.Castrated).
		Is(ports.FieldDewormed, input.Dewormed).
		Is(ports.FieldVaccinated, input.Vaccinated).
		Contains(ports.FieldDescription, input.Description).
		Build()
}
