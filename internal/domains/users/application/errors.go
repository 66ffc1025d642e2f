package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrMissingID is returned when an update does not name its user.
	ErrMissingID = errors.New("user ID cannot be null")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyUsername) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, ErrMissingID) ||
		errors.Is(err, search.ErrInvalidPageRequest) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
