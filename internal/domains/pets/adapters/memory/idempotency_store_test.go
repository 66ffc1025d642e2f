package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/paws-adoption-api/internal/domains/pets/ports"
)

func TestIdempotencyStore_ReplayAndConflict(t *testing.T) {
	ctx := context.Background()
	store := NewIdempotencyStore()

	first, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k", RequestHash: "h", PetID: 7})
	require.NoError(t, err)
	assert.False(t, first.CreatedAt.IsZero())

	replay, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k", RequestHash: "h", PetID: 7})
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, replay.CreatedAt)

	stored, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k", RequestHash: "other", PetID: 8})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	assert.Equal(t, int64(7), stored.PetID)

	missing, err := store.Get(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIdempotencyStore_PurgeBefore(t *testing.T) {
	ctx := context.Background()
	store := NewIdempotencyStore()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	store.WithClock(func() time.Time { return base })
	_, err := store.Save(ctx, ports.IdempotencyRecord{Key: "old", RequestHash: "h", PetID: 1})
	require.NoError(t, err)
	store.WithClock(func() time.Time { return base.Add(48 * time.Hour) })
	_, err = store.Save(ctx, ports.IdempotencyRecord{Key: "new", RequestHash: "h", PetID: 2})
	require.NoError(t, err)

	purged, err := store.PurgeBefore(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	old, err := store.Get(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, old)
	kept, err := store.Get(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, int64(2), kept.PetID)
}
