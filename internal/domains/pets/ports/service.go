package ports

import (
	"context"

	pettypes "github.com/Apurer/paws-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

// Service defines the pets use cases exposed to adapters (inbound/driving port).
type Service interface {
	Create(ctx context.Context, input pettypes.CreatePetInput) (*pettypes.PetDTO, error)
	GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetDTO, error)
	List(ctx context.Context) ([]pettypes.PetDTO, error)
	Update(ctx context.Context, input pettypes.UpdatePetInput) (*pettypes.PetDTO, error)
	Delete(ctx context.Context, input pettypes.PetIdentifier) error
	Search(ctx context.Context, input pettypes.SearchPetsInput, page search.PageRequest) (search.Page[pettypes.PetDTO], error)
}
