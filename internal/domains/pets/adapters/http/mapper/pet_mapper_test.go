package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	petstypes "github.com/Apurer/paws-adoption-api/internal/domains/pets/application/types"
)

func TestToSearchInput_DropsBlankText(t *testing.T) {
	blank := "  "
	name := " Rex "
	castrated := true

	input := ToSearchInput(SearchQuery{Name: &name, Breed: &blank, Castrated: &castrated})
	assert.Equal(t, "Rex", *input.Name)
	assert.Nil(t, input.Breed)
	assert.True(t, *input.Castrated)
	assert.Nil(t, input.Age)
}

func TestToSearchInput_SizeSkipsPageSizes(t *testing.T) {
	input := ToSearchInput(SearchQuery{Size: []string{"20", "LARGE"}})
	assert.Equal(t, "LARGE", *input.Size)

	input = ToSearchInput(SearchQuery{Size: []string{"20"}})
	assert.Nil(t, input.Size)
}

func TestToCreateInput_TrimsKey(t *testing.T) {
	input := ToCreateInput(petDTO("Fido"), " key-1 ")
	assert.Equal(t, "key-1", input.IdempotencyKey)
	assert.Equal(t, "Fido", input.Pet.Name)
}

func petDTO(name string) petstypes.PetDTO {
	return petstypes.PetDTO{Name: name}
}
