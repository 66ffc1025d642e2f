package ports

import (
	"context"

	usertypes "github.com/Apurer/paws-adoption-api/internal/domains/users/application/types"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Create(ctx context.Context, input usertypes.CreateUserInput) (*usertypes.PublicUser, error)
	GetByID(ctx context.Context, input usertypes.UserIdentifier) (*usertypes.PublicUser, error)
	List(ctx context.Context) ([]usertypes.PublicUser, error)
	Update(ctx context.Context, input usertypes.UpdateUserInput) (*usertypes.PublicUser, error)
	Delete(ctx context.Context, input usertypes.UserIdentifier) error
	Search(ctx context.Context, input usertypes.SearchUsersInput, page search.PageRequest) (search.Page[usertypes.PublicUser], error)
}
