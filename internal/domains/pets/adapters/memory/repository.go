package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/Apurer/paws-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/paws-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/relations"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory pet store used for local runs and tests.
type Repository struct {
	mu     sync.RWMutex
	pets   map[int64]*domain.Pet
	nextID int64

	sponsorships *relations.JoinTable
	favorites    *relations.JoinTable
}

// Option customises the repository.
type Option func(*Repository)

// WithAssociations shares the user→pet join tables owned by the users store,
// so sponsor views and delete cascades stay consistent across both stores.
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
		pets:         map[int64]*domain.Pet{},
		sponsorships: relations.NewJoinTable(),
		favorites:    relations.NewJoinTable(),
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Save inserts a pet with a zero id, or updates an existing one when its
// version matches.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*domain.Pet, error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	clone := pet.Clone()
	clone.SponsorIDs = nil

	r.mu.Lock()
	defer r.mu.Unlock()

	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
		clone.Version = 0
	} else {
		existing, ok := r.pets[clone.ID]
		if !ok {
			return nil, ports.ErrNotFound
		}
		if existing.Version != clone.Version {
			return nil, ports.ErrVersionConflict
		}
		clone.Version = existing.Version + 1
	}
	r.pets[clone.ID] = clone
	return r.view(clone), nil
}

// Seed stores pet under its own id and version, bypassing the version check.
// Intended for fixtures that need stable identifiers.
func (r *Repository) Seed(pet *domain.Pet) {
	if pet == nil || pet.ID <= 0 {
		return
	}
	clone := pet.Clone()
	clone.SponsorIDs = nil
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pets[clone.ID] = clone
	r.nextID = max(r.nextID, clone.ID)
}

// GetByID fetches a pet if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pet, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.view(pet), nil
}

// FindByIDs returns the pets that exist among ids.
func (r *Repository) FindByIDs(_ context.Context, ids []int64) ([]*domain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Pet, 0, len(ids))
	for _, id := range ids {
		if pet, ok := r.pets[id]; ok {
			list = append(list, r.view(pet))
		}
	}
	return list, nil
}

// Delete removes a pet along with the user associations that reference it.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	r.sponsorships.RemoveTarget(id)
	r.favorites.RemoveTarget(id)
	return nil
}

// List returns all pets ordered by id.
func (r *Repository) List(_ context.Context) ([]*domain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(), nil
}

// Search filters, orders and windows the stored pets.
func (r *Repository) Search(_ context.Context, predicate search.Predicate[*domain.Pet], page search.PageRequest) (search.Page[*domain.Pet], error) {
	if err := ports.Sortable.Validate(page.Sort); err != nil {
		return search.Page[*domain.Pet]{}, err
	}
	r.mu.RLock()
	matched := predicate.Filter(r.sorted())
	r.mu.RUnlock()

	ports.Sortable.Sort(matched, page.Sort, ports.PetID)
	return search.NewPage(search.Window(matched, page), page, int64(len(matched))), nil
}

func (r *Repository) sorted() []*domain.Pet {
	list := make([]*domain.Pet, 0, len(r.pets))
	for _, pet := range r.pets {
		list = append(list, r.view(pet))
	}
	slices.SortFunc(list, func(a, b *domain.Pet) int { return cmp.Compare(a.ID, b.ID) })
	return list
}

func (r *Repository) view(pet *domain.Pet) *domain.Pet {
	clone := pet.Clone()
	clone.SponsorIDs = r.sponsorships.Owners(pet.ID)
	return clone
}
