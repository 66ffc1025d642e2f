package application

import (
	"context"
	"slices"

	types "github.com/Apurer/paws-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/paws-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/paws-adoption-api/internal/domains/pets/ports"
)

// ToDTO projects a pet to its transport form.
func ToDTO(pet *domain.Pet) types.PetDTO {
	if pet == nil {
		return types.PetDTO{}
	}
	dto := types.PetDTO{
		ID:          pet.ID,
		Name:        pet.Name,
		Gender:      pet.Gender,
		Breed:       pet.Breed,
		Size:        string(pet.Size),
		Castrated:   pet.Castrated,
		Dewormed:    pet.Dewormed,
		Vaccinated:  pet.Vaccinated,
		Description: pet.Description,
		ImageURL:    pet.ImageURL,
		Version:     pet.Version,
		SponsorIDs:  sortedIDs(pet.SponsorIDs),
	}
	if pet.Age != nil {
		age := *pet.Age
		dto.Age = &age
	}
	return dto
}

// ToDTOList projects every pet, preserving order.
func ToDTOList(pets []*domain.Pet) []types.PetDTO {
	out := make([]types.PetDTO, 0, len(pets))
	for _, pet := range pets {
		out = append(out, ToDTO(pet))
	}
	return out
}

// ToEntity builds a pet from its transport form. Sponsors stay unresolved.
func ToEntity(dto types.PetDTO) *domain.Pet {
	pet := &domain.Pet{
		ID:          dto.ID,
		Name:        dto.Name,
		Gender:      dto.Gender,
		Breed:       dto.Breed,
		Size:        domain.ParseSize(dto.Size),
		Castrated:   dto.Castrated,
		Dewormed:    dto.Dewormed,
		Vaccinated:  dto.Vaccinated,
		Description: dto.Description,
		ImageURL:    dto.ImageURL,
		Version:     dto.Version,
	}
	if dto.Age != nil {
		age := *dto.Age
		pet.Age = &age
	}
	return pet
}

// Mapper converts transport pets into entities with resolved sponsors.
type Mapper struct {
	sponsors ports.SponsorResolver
}

// NewMapper wires the mapper with the user lookup used for sponsors.
// A nil resolver resolves every sponsor set to empty.
func NewMapper(sponsors ports.SponsorResolver) *Mapper {
	return &Mapper{sponsors: sponsors}
}

// ToEntityWithRelations maps dto and keeps only sponsor ids of existing users.
func (m *Mapper) ToEntityWithRelations(ctx context.Context, dto types.PetDTO) (*domain.Pet, error) {
	pet := ToEntity(dto)
	pet.SponsorIDs = []int64{}
	if m == nil || m.sponsors == nil || len(dto.SponsorIDs) == 0 {
		return pet, nil
	}
	ids, err := m.sponsors.ResolveIDs(ctx, dto.SponsorIDs)
	if err != nil {
		return nil, err
	}
	pet.SponsorIDs = ids
	return pet, nil
}

func sortedIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	if out == nil {
		return []int64{}
	}
	slices.Sort(out)
	return out
}
