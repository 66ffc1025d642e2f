package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/paws-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid pet input")
	// ErrMissingID is returned when an update does not name its pet.
	ErrMissingID = errors.New("pet ID cannot be null")
	// ErrInvalidIdempotencyKey is returned for oversized Idempotency-Key values.
	ErrInvalidIdempotencyKey = errors.New("idempotency key is too long")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, ErrMissingID) ||
		errors.Is(err, ErrInvalidIdempotencyKey) ||
		errors.Is(err, search.ErrInvalidPageRequest) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
