// Package mapper translates HTTP transport shapes into pets application inputs.
package mapper

import (
	"strconv"
	"strings"

	petstypes "github.com/Apurer/paws-adoption-api/internal/domains/pets/application/types"
)

// SearchQuery is the query-string form of a pet search. Absent parameters stay
// nil. Size holds every "size" value; numeric ones are page sizes.
type SearchQuery struct {
	Name        *string  `form:"name"`
	Breed       *string  `form:"breed"`
	Age         *int64   `form:"age"`
	Gender      *string  `form:"gender"`
	Castrated   *bool    `form:"castrated"`
	Dewormed    *bool    `form:"dewormed"`
	Vaccinated  *bool    `form:"vaccinated"`
	Description *string  `form:"description"`
	Size        []string `form:"size"`
}

// ToSearchInput converts the query into application filters. Blank text
// parameters count as absent.
func ToSearchInput(query SearchQuery) petstypes.SearchPetsInput {
	return petstypes.SearchPetsInput{
		Name:        nonBlank(query.Name),
		Breed:       nonBlank(query.Breed),
		Age:         query.Age,
		Gender:      nonBlank(query.Gender),
		Size:        sizeFilter(query.Size),
		Castrated:   query.Castrated,
		Dewormed:    query.Dewormed,
		Vaccinated:  query.Vaccinated,
		Description: nonBlank(query.Description),
	}
}

// ToCreateInput pairs the bound body with the Idempotency-Key header value.
func ToCreateInput(pet petstypes.PetDTO, idempotencyKey string) petstypes.CreatePetInput {
	return petstypes.CreatePetInput{Pet: pet, IdempotencyKey: strings.TrimSpace(idempotencyKey)}
}

func nonBlank(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

// sizeFilter returns the first non-numeric size value.
func sizeFilter(values []string) *string {
	for _, value := range values {
		if _, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			continue
		}
		if filter := nonBlank(&value); filter != nil {
			return filter
		}
	}
	return nil
}
