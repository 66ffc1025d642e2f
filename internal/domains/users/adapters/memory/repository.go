package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/relations"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user store. It owns the favorite and sponsorship
// join tables that the pets store reads.
type Repository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64

	sponsorships *relations.JoinTable
	favorites    *relations.JoinTable
}

// Option customises the repository.
type Option func(*Repository)

// WithAssociations replaces the private join tables with shared ones.
func WithAssociations(sponsorships, favorites *relations.JoinTable) Option {
	return func(r *Repository) {
		if sponsorships != nil {
			r.sponsorships = sponsorships
		}
		if favorites != nil {
			r.favorites = favorites
		}
	}
}

// NewRepository constructs an empty in-memory store.
func NewRepository(opts ...Option) *Repository {
	repo := &Repository{
		users:        map[int64]*domain.User{},
		sponsorships: relations.NewJoinTable(),
		favorites:    relations.NewJoinTable(),
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Save inserts or version-checks and updates a user, then replaces both of
// its association sets.
func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := user.Clone()
	clone.Password = ""

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, other := range r.users {
		if id != clone.ID && other.Username == clone.Username {
			return nil, ports.ErrDuplicateUsername
		}
	}
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
		clone.Version = 0
	} else {
		existing, ok := r.users[clone.ID]
		if !ok {
			return nil, ports.ErrNotFound
		}
		if existing.Version != clone.Version {
			return nil, ports.ErrVersionConflict
		}
		clone.Version = existing.Version + 1
	}
	r.favorites.Replace(clone.ID, clone.FavoritePetIDs)
	r.sponsorships.Replace(clone.ID, clone.SponsoredPetIDs)
	clone.FavoritePetIDs = nil
	clone.SponsoredPetIDs = nil
	r.users[clone.ID] = clone
	return r.view(clone), nil
}

// Seed stores user under its own id and version with its associations.
func (r *Repository) Seed(user *domain.User) {
	if user == nil || user.ID <= 0 {
		return
	}
	clone := user.Clone()
	clone.Password = ""
	r.mu.Lock()
	defer r.mu.Unlock()
	r.favorites.Replace(clone.ID, clone.FavoritePetIDs)
	r.sponsorships.Replace(clone.ID, clone.SponsoredPetIDs)
	clone.FavoritePetIDs = nil
	clone.SponsoredPetIDs = nil
	r.users[clone.ID] = clone
	r.nextID = max(r.nextID, clone.ID)
}

// GetByID fetches a user if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.view(user), nil
}

// FindByIDs returns the users that exist among ids.
func (r *Repository) FindByIDs(_ context.Context, ids []int64) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			list = append(list, r.view(user))
		}
	}
	return list, nil
}

// Delete removes a user and its association rows.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, id)
	r.favorites.RemoveOwner(id)
	r.sponsorships.RemoveOwner(id)
	return nil
}

// List returns all users ordered by id.
func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(), nil
}

// Search filters, orders and windows the stored users.
func (r *Repository) Search(_ context.Context, predicate search.Predicate[*domain.User], page search.PageRequest) (search.Page[*domain.User], error) {
	if err := ports.Sortable.Validate(page.Sort); err != nil {
		return search.Page[*domain.User]{}, err
	}
	r.mu.RLock()
	matched := predicate.Filter(r.sorted())
	r.mu.RUnlock()

	ports.Sortable.Sort(matched, page.Sort, ports.UserID)
	return search.NewPage(search.Window(matched, page), page, int64(len(matched))), nil
}

func (r *Repository) sorted() []*domain.User {
	list := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		list = append(list, r.view(user))
	}
	slices.SortFunc(list, func(a, b *domain.User) int { return cmp.Compare(a.ID, b.ID) })
	return list
}

func (r *Repository) view(user *domain.User) *domain.User {
	clone := user.Clone()
	clone.FavoritePetIDs = r.favorites.Targets(user.ID)
	clone.SponsoredPetIDs = r.sponsorships.Targets(user.ID)
	return clone
}
