package ports

import (
	"context"
	"errors"
	"time"
)

// MaxIdempotencyKeyLength bounds client-supplied Idempotency-Key values.
const MaxIdempotencyKeyLength = 255

// ErrIdempotencyConflict indicates the same key was replayed with a different pet payload.
var ErrIdempotencyConflict = errors.New("idempotency key already used for a different pet")

// IdempotencyRecord links a client-supplied key to the pet its first request created.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	PetID       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IdempotencyStore remembers create requests so retries return the original pet.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save stores the record. Saving an identical record again returns the stored one;
	// a different hash or pet for an existing key returns ErrIdempotencyConflict with the stored record.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
