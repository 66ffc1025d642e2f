package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/paws-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/paws-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/relations"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

func TestRepository_SaveAssignsIDAndVersion(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, &domain.Pet{ID: 0, Name: "Fido", Version: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, int64(0), saved.Version)
	assert.Equal(t, []int64{}, saved.SponsorIDs)

	second, err := repo.Save(ctx, &domain.Pet{Name: "Rex"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
}

func TestRepository_UpdateChecksVersion(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, &domain.Pet{Name: "Fido"})
	require.NoError(t, err)

	saved.Name = "Fido II"
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Version)

	saved.Name = "stale"
	_, err = repo.Save(ctx, saved)
	require.ErrorIs(t, err, ports.ErrVersionConflict)

	_, err = repo.Save(ctx, &domain.Pet{ID: 42, Name: "ghost"})
	require.ErrorIs(t, err, ports.ErrNotFound)

	current, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fido II", current.Name)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	age := int64(3)
	saved, err := repo.Save(ctx, &domain.Pet{Name: "Fido", Age: &age})
	require.NoError(t, err)

	*saved.Age = 10
	saved.Name = "mutated"

	stored, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fido", stored.Name)
	assert.Equal(t, int64(3), *stored.Age)
}

func TestRepository_SponsorsDerivedFromJoinTable(t *testing.T) {
	sponsorships := relations.NewJoinTable()
	favorites := relations.NewJoinTable()
	repo := NewRepository(WithAssociations(sponsorships, favorites))
	ctx := context.Background()

	pet, err := repo.Save(ctx, &domain.Pet{Name: "Fido", SponsorIDs: []int64{99}})
	require.NoError(t, err)
	assert.Empty(t, pet.SponsorIDs)

	sponsorships.Replace(5, []int64{pet.ID})
	sponsorships.Replace(3, []int64{pet.ID})
	favorites.Replace(5, []int64{pet.ID})

	loaded, err := repo.GetByID(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, loaded.SponsorIDs)

	require.NoError(t, repo.Delete(ctx, pet.ID))
	assert.Empty(t, sponsorships.Targets(5))
	assert.Empty(t, favorites.Targets(5))

	require.ErrorIs(t, repo.Delete(ctx, pet.ID), ports.ErrNotFound)
}

func TestRepository_FindByIDsSkipsUnknown(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	first, _ := repo.Save(ctx, &domain.Pet{Name: "a"})
	second, _ := repo.Save(ctx, &domain.Pet{Name: "b"})

	found, err := repo.FindByIDs(ctx, []int64{second.ID, 404, first.ID})
	require.NoError(t, err)
	require.Len(t, found, 2)
}

func TestRepository_SearchPaginatesAndSorts(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for _, pet := range []*domain.Pet{
		{Name: "Tyrannorex", Size: domain.SizeLarge, Castrated: true},
		{Name: "Bella", Size: domain.SizeLarge, Castrated: true},
		{Name: "Max", Size: domain.SizeLarge, Castrated: false},
		{Name: "Luna", Size: domain.SizeNormal, Castrated: true},
		{Name: "Ace", Size: domain.SizeLarge, Castrated: true},
	} {
		_, err := repo.Save(ctx, pet)
		require.NoError(t, err)
	}

	castrated := true
	size := "large"
	predicate := search.Where[*domain.Pet]().
		Is(ports.FieldCastrated, &castrated).
		EqualFold(ports.FieldSize, &size).
		Build()

	first, err := repo.Search(ctx, predicate, search.PageRequest{Page: 0, Size: 2, Sort: []search.Order{{Property: "name", Direction: search.Asc}}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.TotalElements)
	assert.Equal(t, 2, first.TotalPages)
	require.Len(t, first.Content, 2)
	assert.Equal(t, "Ace", first.Content[0].Name)
	assert.Equal(t, "Bella", first.Content[1].Name)
	assert.True(t, first.First)
	assert.False(t, first.Last)

	second, err := repo.Search(ctx, predicate, search.PageRequest{Page: 1, Size: 2, Sort: []search.Order{{Property: "name", Direction: search.Asc}}})
	require.NoError(t, err)
	require.Len(t, second.Content, 1)
	assert.Equal(t, "Tyrannorex", second.Content[0].Name)
	assert.True(t, second.Last)

	_, err = repo.Search(ctx, predicate, search.PageRequest{Size: 2, Sort: []search.Order{{Property: "password"}}})
	require.ErrorIs(t, err, search.ErrInvalidPageRequest)
}

func TestRepository_EmptyPredicateReturnsAll(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		_, err := repo.Save(ctx, &domain.Pet{Name: name})
		require.NoError(t, err)
	}
	page, err := repo.Search(ctx, search.Predicate[*domain.Pet]{}, search.PageRequest{Size: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, int64(1), page.Content[0].ID)
}

func TestRepository_SeedKeepsIdentifiers(t *testing.T) {
	repo := NewRepository()
	repo.Seed(&domain.Pet{ID: 10, Name: "Fixture", Version: 2})

	pet, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pet.Version)

	next, err := repo.Save(context.Background(), &domain.Pet{Name: "next"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), next.ID)
}

func TestIdempotencyStore_SaveAndConflict(t *testing.T) {
	store := NewIdempotencyStore()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	missing, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	saved, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k1", RequestHash: "h1", PetID: 1})
	require.NoError(t, err)
	assert.Equal(t, fixed, saved.CreatedAt)

	again, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k1", RequestHash: "h1", PetID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.PetID)

	stored, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k1", RequestHash: "h2", PetID: 2})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.NotNil(t, stored)
	assert.Equal(t, "h1", stored.RequestHash)
}
