package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/ports"
	platformpostgres "github.com/Apurer/paws-adoption-api/internal/platform/postgres"
	"github.com/Apurer/paws-adoption-api/internal/shared/relations"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users and their pet associations in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID              int64     `gorm:"primaryKey;column:id"`
	Name            string    `gorm:"column:name"`
	Username        string    `gorm:"column:username"`
	PasswordHash    string    `gorm:"column:password"`
	Email           string    `gorm:"column:email"`
	PhoneNumber     string    `gorm:"column:phone_number"`
	Street          string    `gorm:"column:street"`
	City            string    `gorm:"column:city"`
	State           string    `gorm:"column:state"`
	Country         string    `gorm:"column:country"`
	PostalCode      string    `gorm:"column:postal_code"`
	Active          bool      `gorm:"column:active"`
	Role            string    `gorm:"column:role"`
	ProfileImageURL string    `gorm:"column:profile_image_url"`
	Version         int64     `gorm:"column:version"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "app_user" }

type favoriteRow struct {
	AppUserID int64 `gorm:"primaryKey;column:app_user_id"`
	PetID     int64 `gorm:"primaryKey;column:pet_id"`
}

func (favoriteRow) TableName() string { return "app_user_favorite_pets" }

type sponsoredRow struct {
	AppUserID int64 `gorm:"primaryKey;column:app_user_id"`
	PetID     int64 `gorm:"primaryKey;column:pet_id"`
}

func (sponsoredRow) TableName() string { return "app_user_sponsored_pets" }

// Save writes the user row and replaces both association sets in one
// transaction. Updates are guarded by the stored version.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	favorites := relations.Normalize(user.FavoritePetIDs)
	sponsored := relations.Normalize(user.SponsoredPetIDs)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if record.ID == 0 {
			record.Version = 0
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		} else {
			result := tx.Model(&userRecord{}).
				Where("id = ? AND version = ?", record.ID, record.Version).
				Updates(map[string]any{
					"name":              record.Name,
					"username":          record.Username,
					"password":          record.PasswordHash,
					"email":             record.Email,
					"phone_number":      record.PhoneNumber,
					"street":            record.Street,
					"city":              record.City,
					"state":             record.State,
					"country":           record.Country,
					"postal_code":       record.PostalCode,
					"active":            record.Active,
					"role":              record.Role,
					"profile_image_url": record.ProfileImageURL,
					"version":           gorm.Expr("version + 1"),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return missingOrStale(tx, record.ID)
			}
			if err := tx.First(&record, "id = ?", record.ID).Error; err != nil {
				return err
			}
			if err := tx.Where("app_user_id = ?", record.ID).Delete(&favoriteRow{}).Error; err != nil {
				return err
			}
			if err := tx.Where("app_user_id = ?", record.ID).Delete(&sponsoredRow{}).Error; err != nil {
				return err
			}
		}
		return insertAssociations(tx, record.ID, favorites, sponsored)
	})
	if err != nil {
		return nil, translate(err)
	}
	saved := record.toDomain()
	saved.FavoritePetIDs = favorites
	saved.SponsoredPetIDs = sponsored
	return saved, nil
}

func insertAssociations(tx *gorm.DB, userID int64, favorites, sponsored []int64) error {
	if len(favorites) > 0 {
		rows := make([]favoriteRow, 0, len(favorites))
		for _, petID := range favorites {
			rows = append(rows, favoriteRow{AppUserID: userID, PetID: petID})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	if len(sponsored) > 0 {
		rows := make([]sponsoredRow, 0, len(sponsored))
		for _, petID := range sponsored {
			rows = append(rows, sponsoredRow{AppUserID: userID, PetID: petID})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches a user with both association sets.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	users, err := r.hydrate(ctx, []userRecord{record})
	if err != nil {
		return nil, err
	}
	return users[0], nil
}

// FindByIDs returns the users that exist among ids, ordered by id.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) ([]*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	return r.hydrate(ctx, records)
}

// Delete removes a user. Association rows cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRecord{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all users ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	return r.hydrate(ctx, records)
}

// Search counts the matching rows and loads the requested page.
func (r *Repository) Search(ctx context.Context, predicate search.Predicate[*domain.User], page search.PageRequest) (search.Page[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return search.Page[*domain.User]{}, err
	}
	if err := ports.Sortable.Validate(page.Sort); err != nil {
		return search.Page[*domain.User]{}, err
	}
	query := platformpostgres.ApplyPredicate(r.db.WithContext(ctx).Model(&userRecord{}), predicate).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return search.Page[*domain.User]{}, translate(err)
	}
	var records []userRecord
	if total > int64(page.Offset()) {
		if err := platformpostgres.ApplyPage(query, page, ports.Sortable).Find(&records).Error; err != nil {
			return search.Page[*domain.User]{}, translate(err)
		}
	}
	users, err := r.hydrate(ctx, records)
	if err != nil {
		return search.Page[*domain.User]{}, err
	}
	return search.NewPage(users, page, total), nil
}

type associationRow struct {
	AppUserID int64 `gorm:"column:app_user_id"`
	PetID     int64 `gorm:"column:pet_id"`
}

func (r *Repository) hydrate(ctx context.Context, records []userRecord) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(records))
	if len(records) == 0 {
		return users, nil
	}
	ids := make([]int64, 0, len(records))
	for i := range records {
		ids = append(ids, records[i].ID)
	}
	favorites, err := r.associations(ctx, "app_user_favorite_pets", ids)
	if err != nil {
		return nil, err
	}
	sponsored, err := r.associations(ctx, "app_user_sponsored_pets", ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		user := records[i].toDomain()
		if pets, ok := favorites[user.ID]; ok {
			user.FavoritePetIDs = pets
		}
		if pets, ok := sponsored[user.ID]; ok {
			user.SponsoredPetIDs = pets
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *Repository) associations(ctx context.Context, table string, userIDs []int64) (map[int64][]int64, error) {
	var rows []associationRow
	if err := r.db.WithContext(ctx).
		Table(table).
		Select("app_user_id, pet_id").
		Where("app_user_id IN ?", userIDs).
		Order("pet_id").
		Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make(map[int64][]int64, len(userIDs))
	for _, row := range rows {
		out[row.AppUserID] = append(out[row.AppUserID], row.PetID)
	}
	return out, nil
}

func missingOrStale(tx *gorm.DB, id int64) error {
	var count int64
	if err := tx.Model(&userRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrNotFound
	}
	return ports.ErrVersionConflict
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ports.ErrNotFound
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrVersionConflict):
		return err
	}
	classified := platformpostgres.Classify(err)
	if errors.Is(classified, platformpostgres.ErrUniqueViolation) {
		return fmt.Errorf("%w: %w", ports.ErrDuplicateUsername, classified)
	}
	if errors.Is(classified, platformpostgres.ErrForeignKeyViolation) {
		return fmt.Errorf("%w: %w", ports.ErrPetRemoved, classified)
	}
	return classified
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return fmt.Errorf("%w: postgres user repository not configured", platformpostgres.ErrMisconfigured)
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:              user.ID,
		Name:            user.Name,
		Username:        user.Username,
		PasswordHash:    user.PasswordHash,
		Email:           user.Email,
		PhoneNumber:     user.PhoneNumber,
		Street:          user.Street,
		City:            user.City,
		State:           user.State,
		Country:         user.Country,
		PostalCode:      user.PostalCode,
		Active:          user.Active,
		Role:            string(user.Role),
		ProfileImageURL: user.ProfileImageURL,
		Version:         user.Version,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:              r.ID,
		Name:            r.Name,
		Username:        r.Username,
		PasswordHash:    r.PasswordHash,
		Email:           r.Email,
		PhoneNumber:     r.PhoneNumber,
		Street:          r.Street,
		City:            r.City,
		State:           r.State,
		Country:         r.Country,
		PostalCode:      r.PostalCode,
		Active:          r.Active,
		Role:            domain.ParseRole(r.Role),
		ProfileImageURL: r.ProfileImageURL,
		Version:         r.Version,
		FavoritePetIDs:  []int64{},
		SponsoredPetIDs: []int64{},
	}
}
