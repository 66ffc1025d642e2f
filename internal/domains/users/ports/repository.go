package ports

import (
	"context"
	"errors"

	"github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrVersionConflict   = errors.New("user was modified by another request")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrPetRemoved        = errors.New("a referenced pet was removed concurrently")
)

// Repository persists users together with their pet associations.
//
// Save writes the row and replaces both association sets in one transaction.
// Users with a zero ID are inserted at version 0; others are updated only when
// Version matches the stored one. Stores never return the plaintext Password.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*domain.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.User, error)
	Search(ctx context.Context, predicate search.Predicate[*domain.User], page search.PageRequest) (search.Page[*domain.User], error)
}

// PetResolver narrows pet identifiers to the pets that exist.
type PetResolver interface {
	ResolveIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// PasswordHasher turns plaintext passwords into storable hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
}
