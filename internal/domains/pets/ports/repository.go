package ports

import (
	"context"
	"errors"

	"github.com/Apurer/paws-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

var (
	ErrNotFound        = errors.New("pet not found")
	ErrVersionConflict = errors.New("pet was modified by another request")
)

// Repository persists pets (outbound/driven port).
//
// Save inserts pets with a zero ID at version 0. Pets with an ID are updated
// only when their Version matches the stored one, and the stored version is
// then incremented. SponsorIDs is never written.
type Repository interface {
	Save(ctx context.Context, pet *domain.Pet) (*domain.Pet, error)
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*domain.Pet, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Pet, error)
	Search(ctx context.Context, predicate search.Predicate[*domain.Pet], page search.PageRequest) (search.Page[*domain.Pet], error)
}

// SponsorResolver narrows user identifiers to the users that exist.
type SponsorResolver interface {
	ResolveIDs(ctx context.Context, ids []int64) ([]int64, error)
}
