package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	usertypes "github.com/Apurer/paws-adoption-api/internal/domains/users/application/types"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
)

func TestMapping_ContactAndAddressAreLossless(t *testing.T) {
	user := &domain.User{
		ID:              8,
		Name:            "Ann",
		Username:        "ann",
		PasswordHash:    "hash",
		Email:           "ann@example.com",
		PhoneNumber:     "555",
		Street:          "Main 1",
		City:            "Berlin",
		State:           "BE",
		Country:         "DE",
		PostalCode:      "10115",
		Active:          true,
		Role:            domain.RoleAdmin,
		ProfileImageURL: "http://img/ann.png",
		Version:         3,
		FavoritePetIDs:  []int64{4, 2},
		SponsoredPetIDs: []int64{1},
	}

	back := ToEntity(ToDTO(user))
	user.PasswordHash = ""
	user.FavoritePetIDs = nil
	user.SponsoredPetIDs = nil
	assert.Equal(t, user, back)
}

func TestToEntity_Defaults(t *testing.T) {
	user := ToEntity(usertypes.UserDTO{Name: "x", Role: "superuser"})
	assert.True(t, user.Active)
	assert.Equal(t, domain.Role(""), user.Role)
	assert.Empty(t, user.Email)
	assert.Empty(t, user.City)
	assert.Nil(t, user.FavoritePetIDs)
}

func TestToPublicUser_SortsAssociations(t *testing.T) {
	public := ToPublicUser(&domain.User{ID: 1, FavoritePetIDs: []int64{9, 3}})
	assert.Equal(t, []int64{3, 9}, public.FavoritePetIDs)
	assert.Equal(t, []int64{}, public.SponsoredPetIDs)
}

func TestBuildPredicate_UserFilters(t *testing.T) {
	assert.True(t, BuildPredicate(usertypes.SearchUsersInput{}).IsEmpty())

	email := "example"
	active := false
	p := BuildPredicate(usertypes.SearchUsersInput{Email: &email, Active: &active})
	cols := []string{}
	for _, c := range p.Conditions() {
		cols = append(cols, c.Column())
	}
	assert.Equal(t, []string{"email", "active"}, cols)
}
