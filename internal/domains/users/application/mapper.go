package application

import (
	"context"
	"slices"

	types "github.com/Apurer/paws-adoption-api/internal/domains/users/application/types"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/ports"
)

// ToPublicUser projects a user to its outbound form, grouping the flat
// contact and address columns.
func ToPublicUser(user *domain.User) types.PublicUser {
	if user == nil {
		return types.PublicUser{}
	}
	return types.PublicUser{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Contact: types.Contact{
			Email:       user.Email,
			PhoneNumber: user.PhoneNumber,
		},
		Address: types.Address{
			Street:     user.Street,
			City:       user.City,
			State:      user.State,
			Country:    user.Country,
			PostalCode: user.PostalCode,
		},
		Active:          user.Active,
		Role:            string(user.Role),
		ProfileImageURL: user.ProfileImageURL,
		Version:         user.Version,
		FavoritePetIDs:  sortedIDs(user.FavoritePetIDs),
		SponsoredPetIDs: sortedIDs(user.SponsoredPetIDs),
	}
}

// ToPublicUsers projects every user, preserving order.
func ToPublicUsers(users []*domain.User) []types.PublicUser {
	out := make([]types.PublicUser, 0, len(users))
	for _, user := range users {
		out = append(out, ToPublicUser(user))
	}
	return out
}

// ToEntity builds a user from its inbound form. The plaintext password is
// kept in the transient Password field and associations stay unresolved.
func ToEntity(dto types.UserDTO) *domain.User {
	user := &domain.User{
		ID:              dto.ID,
		Name:            dto.Name,
		Username:        dto.Username,
		Password:        dto.Password,
		Active:          true,
		Role:            domain.ParseRole(dto.Role),
		ProfileImageURL: dto.ProfileImageURL,
		Version:         dto.Version,
	}
	if dto.Active != nil {
		user.Active = *dto.Active
	}
	if c := dto.Contact; c != nil {
		user.Email = c.Email
		user.PhoneNumber = c.PhoneNumber
	}
	if a := dto.Address; a != nil {
		user.Street = a.Street
		user.City = a.City
		user.State = a.State
		user.Country = a.Country
		user.PostalCode = a.PostalCode
	}
	return user
}

// ToDTO is the inverse of ToEntity for an entity read from a store. The
// password is never populated.
func ToDTO(user *domain.User) types.UserDTO {
	public := ToPublicUser(user)
	active := public.Active
	contact := public.Contact
	address := public.Address
	return types.UserDTO{
		ID:              public.ID,
		Name:            public.Name,
		Username:        public.Username,
		Contact:         &contact,
		Address:         &address,
		Active:          &active,
		Role:            public.Role,
		ProfileImageURL: public.ProfileImageURL,
		Version:         public.Version,
		FavoritePetIDs:  public.FavoritePetIDs,
		SponsoredPetIDs: public.SponsoredPetIDs,
	}
}

// Mapper converts inbound users into entities with resolved pet associations.
type Mapper struct {
	pets ports.PetResolver
}

// NewMapper wires the mapper with the pet lookup. A nil resolver resolves
// every association to empty.
func NewMapper(pets ports.PetResolver) *Mapper {
	return &Mapper{pets: pets}
}

// ToEntityWithRelations maps dto and keeps only the ids of existing pets in
// both association sets.
func (m *Mapper) ToEntityWithRelations(ctx context.Context, dto types.UserDTO) (*domain.User, error) {
	user := ToEntity(dto)
	favorites, err := m.resolve(ctx, dto.FavoritePetIDs)
	if err != nil {
		return nil, err
	}
	sponsored, err := m.resolve(ctx, dto.SponsoredPetIDs)
	if err != nil {
		return nil, err
	}
	user.FavoritePetIDs = favorites
	user.SponsoredPetIDs = sponsored
	return user, nil
}

func (m *Mapper) resolve(ctx context.Context, ids []int64) ([]int64, error) {
	if m == nil || m.pets == nil || len(ids) == 0 {
		return []int64{}, nil
	}
	return m.pets.ResolveIDs(ctx, ids)
}

func sortedIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	if out == nil {
		return []int64{}
	}
	slices.Sort(out)
	return out
}
