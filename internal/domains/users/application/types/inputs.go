package types

// UserIdentifier addresses a single user.
type UserIdentifier struct {
	ID int64
}

// CreateUserInput carries a new user account.
type CreateUserInput struct {
	User UserDTO
}

// UpdateUserInput replaces the state of the user identified by User.ID.
// A blank password keeps the stored one.
type UpdateUserInput struct {
	User UserDTO
}

// SearchUsersInput holds optional filters; nil fields are ignored.
type SearchUsersInput struct {
	Name        *string
	Email       *string
	Active      *bool
	Role        *string
	Username    *string
	PhoneNumber *string
	City        *string
	State       *string
	Country     *string
	PostalCode  *string
}
