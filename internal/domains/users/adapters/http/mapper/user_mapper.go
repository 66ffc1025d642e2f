// Package mapper translates HTTP transport shapes into users application inputs.
package mapper

import (
	"strings"

	usertypes "github.com/Apurer/paws-adoption-api/internal/domains/users/application/types"
)

// SearchQuery is the query-string form of a user search.
type SearchQuery struct {
	Name        *string `form:"name"`
	Email       *string `form:"email"`
	Active      *bool   `form:"active"`
	Role        *string `form:"role"`
	Username    *string `form:"username"`
	PhoneNumber *string `form:"phoneNumber"`
	City        *string `form:"city"`
	State       *string `form:"state"`
	Country     *string `form:"country"`
	PostalCode  *string `form:"postalCode"`
}

// ToSearchInput converts the query into application filters. Blank text
// parameters count as absent.
func ToSearchInput(query SearchQuery) usertypes.SearchUsersInput {
	return usertypes.SearchUsersInput{
		Name:        nonBlank(query.Name),
		Email:       nonBlank(query.Email),
		Active:      query.Active,
		Role:        nonBlank(query.Role),
		Username:    nonBlank(query.Username),
		PhoneNumber: nonBlank(query.PhoneNumber),
		City:        nonBlank(query.City),
		State:       nonBlank(query.State),
		Country:     nonBlank(query.Country),
		PostalCode:  nonBlank(query.PostalCode),
	}
}

func nonBlank(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
