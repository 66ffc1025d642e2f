package application

import (
	types "github.com/Apurer/paws-adoption-api/internal/domains/users/application/types"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

// BuildPredicate ANDs together a condition for every filter present in input.
// With no filters the predicate matches every user.
func BuildPredicate(input types.SearchUsersInput) search.Predicate[*domain.User] {
	return search.Where[*domain.User]().
		Contains(ports.FieldName, input.Name).
		Contains(ports.FieldEmail, input.Email).
		Is(ports.FieldActive, input.Active).
		EqualFold(ports.FieldRole, input.Role).
		Contains(ports.FieldUsername, input.Username).
		Contains(ports.FieldPhoneNumber, input.PhoneNumber).
		Contains(ports.FieldCity, input.City).
		Contains(ports.FieldState, input.State).
		Contains(ports.FieldCountry, input.Country).
		Contains(ports.FieldPostalCode, input.PostalCode).
		Build()
}
