package domain

import (
	"errors"
	"slices"
	"strings"
)

// Role is the authorization tier of a user account.
type Role string

const (
	RoleNormal   Role = "NORMAL"
	RoleOperator Role = "OPERATOR"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole maps the exact symbolic name to a Role, or the zero Role otherwise.
func ParseRole(value string) Role {
	switch r := Role(value); r {
	case RoleNormal, RoleOperator, RoleAdmin:
		return r
	default:
		return ""
	}
}

var (
	ErrEmptyName     = errors.New("user name cannot be empty")
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
)

// User is an adopter, sponsor or staff account.
type User struct {
	ID       int64
	Name     string
	Username string
	// Password carries plaintext between mapping and hashing only. It is never
	// persisted or returned by a store.
	Password     string
	PasswordHash string

	Email       string
	PhoneNumber string

	Street     string
	City       string
	State      string
	Country    string
	PostalCode string

	Active          bool
	Role            Role
	ProfileImageURL string
	Version         int64

	FavoritePetIDs []int64
	// SponsoredPetIDs is the owning side of the sponsorship relation.
	SponsoredPetIDs []int64
}

// Validate checks the invariants required before persisting.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if u.PasswordHash == "" && strings.TrimSpace(u.Password) == "" {
		return ErrEmptyPassword
	}
	return nil
}

// Equal reports identity equality: both users are persisted and share an id.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil || u.ID == 0 {
		return false
	}
	return u.ID == other.ID
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.FavoritePetIDs = slices.Clone(u.FavoritePetIDs)
	clone.SponsoredPetIDs = slices.Clone(u.SponsoredPetIDs)
	return &clone
}
