package ports

import (
	"cmp"
	"strings"

	"github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

// Filterable user columns.
var (
	FieldName        = search.StringField[*domain.User]{Column: "name", Get: func(u *domain.User) string { return u.Name }}
	FieldUsername    = search.StringField[*domain.User]{Column: "username", Get: func(u *domain.User) string { return u.Username }}
	FieldEmail       = search.StringField[*domain.User]{Column: "email", Get: func(u *domain.User) string { return u.Email }}
	FieldPhoneNumber = search.StringField[*domain.User]{Column: "phone_number", Get: func(u *domain.User) string { return u.PhoneNumber }}
	FieldCity        = search.StringField[*domain.User]{Column: "city", Get: func(u *domain.User) string { return u.City }}
	FieldState       = search.StringField[*domain.User]{Column: "state", Get: func(u *domain.User) string { return u.State }}
	FieldCountry     = search.StringField[*domain.User]{Column: "country", Get: func(u *domain.User) string { return u.Country }}
	FieldPostalCode  = search.StringField[*domain.User]{Column: "postal_code", Get: func(u *domain.User) string { return u.PostalCode }}
	FieldRole        = search.EnumField[*domain.User]{Column: "role", Get: func(u *domain.User) string { return string(u.Role) }}
	FieldActive      = search.BoolField[*domain.User]{Column: "active", Get: func(u *domain.User) bool { return u.Active }}
)

// Sortable lists the properties users can be ordered by.
var Sortable = search.Sortable[*domain.User]{
	"id":       {Column: "id", Compare: func(a, b *domain.User) int { return cmp.Compare(a.ID, b.ID) }},
	"name":     {Column: "name", Compare: func(a, b *domain.User) int { return strings.Compare(a.Name, b.Name) }},
	"username": {Column: "username", Compare: func(a, b *domain.User) int { return strings.Compare(a.Username, b.Username) }},
	"email":    {Column: "email", Compare: func(a, b *domain.User) int { return strings.Compare(a.Email, b.Email) }},
	"city":     {Column: "city", Compare: func(a, b *domain.User) int { return strings.Compare(a.City, b.City) }},
	"country":  {Column: "country", Compare: func(a, b *domain.User) int { return strings.Compare(a.Country, b.Country) }},
	"role":     {Column: "role", Compare: func(a, b *domain.User) int { return strings.Compare(string(a.Role), string(b.Role)) }},
}

// UserID identifies a user for ordering tie-breaks.
func UserID(u *domain.User) int64 { return u.ID }
