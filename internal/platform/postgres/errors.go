package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrMisconfigured marks failures caused by the database or schema setup
	// rather than by the request: missing tables or columns, unknown database,
	// rejected credentials.
	ErrMisconfigured = errors.New("persistence misconfigured")
	// ErrUniqueViolation marks a write rejected by a unique constraint.
	ErrUniqueViolation = errors.New("unique constraint violated")
	// ErrForeignKeyViolation marks a write referencing a row that no longer
	// exists.
	ErrForeignKeyViolation = errors.New("foreign key constraint violated")
)

// SQLSTATE codes and classes treated as configuration problems.
var misconfiguredCodes = map[string]struct{}{
	"42P01": {}, // undefined_table
	"42703": {}, // undefined_column
	"42883": {}, // undefined_function
	"3D000": {}, // invalid_catalog_name
	"3F000": {}, // invalid_schema_name
}

// Classify wraps driver errors with ErrMisconfigured, ErrUniqueViolation or
// ErrForeignKeyViolation when they match, and returns any other error
// unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
	}
	// The postgres dialector translates 42703 into ErrInvalidField.
	if errors.Is(err, gorm.ErrInvalidDB) || errors.Is(err, gorm.ErrUnsupportedDriver) || errors.Is(err, gorm.ErrInvalidField) {
		return fmt.Errorf("%w: %w", ErrMisconfigured, err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	case "23503":
		return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
	}
	if _, ok := misconfiguredCodes[pgErr.Code]; ok || strings.HasPrefix(pgErr.Code, "28") {
		return fmt.Errorf("%w: %w", ErrMisconfigured, err)
	}
	return err
}
