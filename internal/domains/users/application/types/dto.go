package types

// Contact groups the ways to reach a user.
type Contact struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Address is the postal address of a user.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// UserDTO is the inbound user representation. It is the only shape that
// carries a password.
type UserDTO struct {
	ID              int64    `json:"id,omitempty"`
	Name            string   `json:"name"`
	Username        string   `json:"username"`
	Password        string   `json:"password,omitempty"`
	Contact         *Contact `json:"contact,omitempty"`
	Address         *Address `json:"address,omitempty"`
	Active          *bool    `json:"active,omitempty"`
	Role            string   `json:"role,omitempty"`
	ProfileImageURL string   `json:"profileImageUrl,omitempty"`
	Version         int64    `json:"version"`
	FavoritePetIDs  []int64  `json:"favoritePetIds"`
	SponsoredPetIDs []int64  `json:"sponsoredPetIds"`
}

// PublicUser is the outbound user representation. It has no password field.
type PublicUser struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Username        string  `json:"username"`
	Contact         Contact `json:"contact"`
	Address         Address `json:"address"`
	Active          bool    `json:"active"`
	Role            string  `json:"role,omitempty"`
	ProfileImageURL string  `json:"profileImageUrl,omitempty"`
	Version         int64   `json:"version"`
	FavoritePetIDs  []int64 `json:"favoritePetIds"`
	SponsoredPetIDs []int64 `json:"sponsoredPetIds"`
}
