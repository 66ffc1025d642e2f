package application

import (
	"context"
	"errors"
	"strings"

	types "github.com/Apurer/paws-adoption-api/internal/domains/users/application/types"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo   ports.Repository
	hasher ports.PasswordHasher
	mapper *Mapper
}

// Option customises the service.
type Option func(*Service)

// WithPetResolver resolves favorite and sponsored pet ids against the pets store.
func WithPetResolver(resolver ports.PetResolver) Option {
	return func(s *Service) {
		s.mapper = NewMapper(resolver)
	}
}

// NewService wires the users service. Passwords are hashed with hasher before
// they reach the repository.
func NewService(repo ports.Repository, hasher ports.PasswordHasher, opts ...Option) *Service {
	svc := &Service{repo: repo, hasher: hasher, mapper: NewMapper(nil)}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create registers a new user. The id and version supplied by the caller are ignored.
func (s *Service) Create(ctx context.Context, input types.CreateUserInput) (*types.PublicUser, error) {
	dto := input.User
	if err := validateRequired(dto, true); err != nil {
		return nil, mapError(err)
	}
	user, err := s.mapper.ToEntityWithRelations(ctx, dto)
	if err != nil {
		return nil, mapError(err)
	}
	user.ID = 0
	user.Version = 0
	if err := s.hashPassword(user); err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	out := ToPublicUser(saved)
	return &out, nil
}

// GetByID loads a single user.
func (s *Service) GetByID(ctx context.Context, input types.UserIdentifier) (*types.PublicUser, error) {
	user, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	out := ToPublicUser(user)
	return &out, nil
}

// List returns every user ordered by id.
func (s *Service) List(ctx context.Context) ([]types.PublicUser, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return ToPublicUsers(users), nil
}

// Update fully replaces a user's state, associations included. A blank
// password keeps the stored hash.
func (s *Service) Update(ctx context.Context, input types.UpdateUserInput) (*types.PublicUser, error) {
	dto := input.User
	if dto.ID == 0 {
		return nil, mapError(ErrMissingID)
	}
	if err := validateRequired(dto, false); err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.GetByID(ctx, dto.ID)
	if err != nil {
		return nil, mapError(err)
	}
	user, err := s.mapper.ToEntityWithRelations(ctx, dto)
	if err != nil {
		return nil, mapError(err)
	}
	user.ID = existing.ID
	user.Version = existing.Version
	if strings.TrimSpace(user.Password) == "" {
		user.Password = ""
		user.PasswordHash = existing.PasswordHash
	} else if err := s.hashPassword(user); err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	out := ToPublicUser(saved)
	return &out, nil
}

// Delete removes a user after confirming it exists.
func (s *Service) Delete(ctx context.Context, input types.UserIdentifier) error {
	if _, err := s.repo.GetByID(ctx, input.ID); err != nil {
		return mapError(err)
	}
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

// Search returns the page of users matching every supplied filter.
func (s *Service) Search(ctx context.Context, input types.SearchUsersInput, page search.PageRequest) (search.Page[types.PublicUser], error) {
	if err := ports.Sortable.Validate(page.Sort); err != nil {
		return search.Page[types.PublicUser]{}, mapError(err)
	}
	result, err := s.repo.Search(ctx, BuildPredicate(input), page)
	if err != nil {
		return search.Page[types.PublicUser]{}, mapError(err)
	}
	return search.MapPage(result, ToPublicUser), nil
}

func (s *Service) hashPassword(user *domain.User) error {
	if s.hasher == nil {
		return errors.New("password hasher not configured")
	}
	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.Password = ""
	return nil
}

func validateRequired(dto types.UserDTO, requirePassword bool) error {
	if strings.TrimSpace(dto.Name) == "" {
		return domain.ErrEmptyName
	}
	if strings.TrimSpace(dto.Username) == "" {
		return domain.ErrEmptyUsername
	}
	if requirePassword && strings.TrimSpace(dto.Password) == "" {
		return domain.ErrEmptyPassword
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
