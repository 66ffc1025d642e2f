package application

import (
	"context"
	"errors"
	"strings"

	types "github.com/Apurer/paws-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/paws-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/paws-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo        ports.Repository
	mapper      *Mapper
	idempotency ports.IdempotencyStore
}

// Option customises the service.
type Option func(*Service)

// WithSponsorResolver resolves sponsor ids against the users store.
func WithSponsorResolver(resolver ports.SponsorResolver) Option {
	return func(s *Service) {
		s.mapper = NewMapper(resolver)
	}
}

// WithIdempotencyStore enables Idempotency-Key handling on Create.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	svc := &Service{repo: repo, mapper: NewMapper(nil)}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create persists a new pet. The id and version supplied by the caller are ignored.
func (s *Service) Create(ctx context.Context, input types.CreatePetInput) (*types.PetDTO, error) {
	if strings.TrimSpace(input.Pet.Name) == "" {
		return nil, mapError(domain.ErrEmptyName)
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	var fingerprint string
	if key != "" && s.idempotency != nil {
		if len(key) > ports.MaxIdempotencyKeyLength {
			return nil, mapError(ErrInvalidIdempotencyKey)
		}
		hash, err := FingerprintCreatePet(input.Pet)
		if err != nil {
			return nil, err
		}
		fingerprint = hash
		record, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if record != nil {
			return s.replay(ctx, record, fingerprint)
		}
	}

	pet, err := s.mapper.ToEntityWithRelations(ctx, input.Pet)
	if err != nil {
		return nil, mapError(err)
	}
	pet.ID = 0
	pet.Version = 0
	if err := pet.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}

	if fingerprint != "" {
		stored, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: fingerprint, PetID: saved.ID})
		if err != nil {
			// The key does not point at saved, so saved must not outlive this call.
			if delErr := s.repo.Delete(ctx, saved.ID); delErr != nil {
				return nil, errors.Join(err, delErr)
			}
			// A concurrent request with the same key won the race.
			if errors.Is(err, ports.ErrIdempotencyConflict) && stored != nil {
				return s.replay(ctx, stored, fingerprint)
			}
			return nil, err
		}
	}

	dto := ToDTO(saved)
	return &dto, nil
}

func (s *Service) replay(ctx context.Context, record *ports.IdempotencyRecord, fingerprint string) (*types.PetDTO, error) {
	if record.RequestHash != fingerprint {
		return nil, ports.ErrIdempotencyConflict
	}
	return s.GetByID(ctx, types.PetIdentifier{ID: record.PetID})
}

// GetByID loads a single pet.
func (s *Service) GetByID(ctx context.Context, input types.PetIdentifier) (*types.PetDTO, error) {
	pet, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	dto := ToDTO(pet)
	return &dto, nil
}

// List returns every pet ordered by id.
func (s *Service) List(ctx context.Context) ([]types.PetDTO, error) {
	pets, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return ToDTOList(pets), nil
}

// Update replaces the state of an existing pet. The stored version is carried
// forward so concurrent writers are detected by the repository.
func (s *Service) Update(ctx context.Context, input types.UpdatePetInput) (*types.PetDTO, error) {
	if input.Pet.ID == 0 {
		return nil, mapError(ErrMissingID)
	}
	if strings.TrimSpace(input.Pet.Name) == "" {
		return nil, mapError(domain.ErrEmptyName)
	}
	existing, err := s.repo.GetByID(ctx, input.Pet.ID)
	if err != nil {
		return nil, mapError(err)
	}
	pet, err := s.mapper.ToEntityWithRelations(ctx, input.Pet)
	if err != nil {
		return nil, mapError(err)
	}
	pet.ID = existing.ID
	pet.Version = existing.Version
	if err := pet.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	dto := ToDTO(saved)
	return &dto, nil
}

// Delete removes a pet after confirming it exists.
func (s *Service) Delete(ctx context.Context, input types.PetIdentifier) error {
	if _, err := s.repo.GetByID(ctx, input.ID); err != nil {
		return mapError(err)
	}
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

// Search returns the page of pets matching every supplied filter.
func (s *Service) Search(ctx context.Context, input types.SearchPetsInput, page search.PageRequest) (search.Page[types.PetDTO], error) {
	if err := ports.Sortable.Validate(page.Sort); err != nil {
		return search.Page[types.PetDTO]{}, mapError(err)
	}
	result, err := s.repo.Search(ctx, BuildPredicate(input), page)
	if err != nil {
		return search.Page[types.PetDTO]{}, mapError(err)
	}
	return search.MapPage(result, ToDTO), nil
}

var _ ports.Service = (*Service)(nil)
