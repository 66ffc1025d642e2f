package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/relations"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

func newUser(name, username string) *domain.User {
	return &domain.User{Name: name, Username: username, PasswordHash: "hash", Active: true, Role: domain.RoleNormal}
}

func TestRepository_SaveWritesAssociations(t *testing.T) {
	sponsorships := relations.NewJoinTable()
	favorites := relations.NewJoinTable()
	repo := NewRepository(WithAssociations(sponsorships, favorites))
	ctx := context.Background()

	user := newUser("Ann", "ann")
	user.Password = "plain"
	user.FavoritePetIDs = []int64{3, 1}
	user.SponsoredPetIDs = []int64{2}
	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Empty(t, saved.Password)
	assert.Equal(t, []int64{1, 3}, saved.FavoritePetIDs)
	assert.Equal(t, []int64{2}, saved.SponsoredPetIDs)
	assert.Equal(t, []int64{1}, sponsorships.Owners(2))

	saved.FavoritePetIDs = nil
	saved.SponsoredPetIDs = nil
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Version)
	assert.Empty(t, updated.FavoritePetIDs)
	assert.Empty(t, sponsorships.Owners(2))
}

func TestRepository_UniqueUsername(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, newUser("Ann", "ann"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newUser("Other Ann", "ann"))
	require.ErrorIs(t, err, ports.ErrDuplicateUsername)
}

func TestRepository_VersionConflict(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, newUser("Ann", "ann"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, saved.Clone())
	require.NoError(t, err)

	_, err = repo.Save(ctx, saved)
	require.ErrorIs(t, err, ports.ErrVersionConflict)
}

func TestRepository_DeleteRemovesAssociations(t *testing.T) {
	sponsorships := relations.NewJoinTable()
	repo := NewRepository(WithAssociations(sponsorships, nil))
	ctx := context.Background()

	user := newUser("Ann", "ann")
	user.SponsoredPetIDs = []int64{5}
	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	assert.Empty(t, sponsorships.Owners(5))
	require.ErrorIs(t, repo.Delete(ctx, saved.ID), ports.ErrNotFound)
}

func TestRepository_Search(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for _, u := range []*domain.User{
		{Name: "Ann", Username: "ann", City: "Berlin", Role: domain.RoleAdmin, Active: true},
		{Name: "Bob", Username: "bob", City: "Bern", Role: domain.RoleNormal, Active: true},
		{Name: "Cid", Username: "cid", City: "berlin", Role: domain.RoleNormal, Active: false},
	} {
		_, err := repo.Save(ctx, u)
		require.NoError(t, err)
	}

	city := "BER"
	active := true
	page, err := repo.Search(ctx, search.Where[*domain.User]().
		Contains(ports.FieldCity, &city).
		Is(ports.FieldActive, &active).
		Build(), search.PageRequest{Size: 10, Sort: []search.Order{{Property: "username", Direction: search.Desc}}})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "bob", page.Content[0].Username)

	role := "normal"
	page, err = repo.Search(ctx, search.Where[*domain.User]().EqualFold(ports.FieldRole, &role).Build(), search.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
}
