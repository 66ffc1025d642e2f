package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/paws-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/paws-adoption-api/internal/domains/pets/ports"
	platformpostgres "github.com/Apurer/paws-adoption-api/internal/platform/postgres"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets in PostgreSQL using GORM. The schema is owned by
// the goose migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type petRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name"`
	Age         *int64    `gorm:"column:age"`
	Gender      string    `gorm:"column:gender"`
	Breed       string    `gorm:"column:breed"`
	Size        string    `gorm:"column:size"`
	Castrated   bool      `gorm:"column:castrated"`
	Dewormed    bool      `gorm:"column:dewormed"`
	Vaccinated  bool      `gorm:"column:vaccinated"`
	Description string    `gorm:"column:description"`
	ImageURL    string    `gorm:"column:image_url"`
	Version     int64     `gorm:"column:version"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pet" }

type sponsorRow struct {
	AppUserID int64 `gorm:"column:app_user_id"`
	PetID     int64 `gorm:"column:pet_id"`
}

// Save inserts a pet with a zero id at version 0. Otherwise it updates the row
// only if the stored version still equals pet.Version.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*domain.Pet, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("pet is nil")
	}
	record := toRecord(pet)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if record.ID == 0 {
			record.Version = 0
			return tx.Create(&record).Error
		}
		result := tx.Model(&petRecord{}).
			Where("id = ? AND version = ?", record.ID, record.Version).
			Updates(map[string]any{
				"name":        record.Name,
				"age":         record.Age,
				"gender":      record.Gender,
				"breed":       record.Breed,
				"size":        record.Size,
				"castrated":   record.Castrated,
				"dewormed":    record.Dewormed,
				"vaccinated":  record.Vaccinated,
				"description": record.Description,
				"image_url":   record.ImageURL,
				"version":     gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return missingOrStale(tx, record.ID)
		}
		return tx.First(&record, "id = ?", record.ID).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return r.hydrateOne(ctx, record)
}

// GetByID fetches a pet with its derived sponsors.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return r.hydrateOne(ctx, record)
}

// FindByIDs returns the pets that exist among ids, ordered by id.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) ([]*domain.Pet, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Pet{}, nil
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	return r.hydrate(ctx, records)
}

// Delete removes a pet. Join-table rows go with it through ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&petRecord{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all pets ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.Pet, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	return r.hydrate(ctx, records)
}

// Search counts the matching rows and loads the requested page.
func (r *Repository) Search(ctx context.Context, predicate search.Predicate[*domain.Pet], page search.PageRequest) (search.Page[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return search.Page[*domain.Pet]{}, err
	}
	if err := ports.Sortable.Validate(page.Sort); err != nil {
		return search.Page[*domain.Pet]{}, err
	}
	query := platformpostgres.ApplyPredicate(r.db.WithContext(ctx).Model(&petRecord{}), predicate).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return search.Page[*domain.Pet]{}, translate(err)
	}
	var records []petRecord
	if total > int64(page.Offset()) {
		if err := platformpostgres.ApplyPage(query, page, ports.Sortable).Find(&records).Error; err != nil {
			return search.Page[*domain.Pet]{}, translate(err)
		}
	}
	pets, err := r.hydrate(ctx, records)
	if err != nil {
		return search.Page[*domain.Pet]{}, err
	}
	return search.NewPage(pets, page, total), nil
}

func (r *Repository) hydrateOne(ctx context.Context, record petRecord) (*domain.Pet, error) {
	pets, err := r.hydrate(ctx, []petRecord{record})
	if err != nil {
		return nil, err
	}
	return pets[0], nil
}

// hydrate maps records and attaches the sponsor view read from the owning
// user side of app_user_sponsored_pets.
func (r *Repository) hydrate(ctx context.Context, records []petRecord) ([]*domain.Pet, error) {
	pets := make([]*domain.Pet, 0, len(records))
	if len(records) == 0 {
		return pets, nil
	}
	ids := make([]int64, 0, len(records))
	for i := range records {
		ids = append(ids, records[i].ID)
	}
	var rows []sponsorRow
	if err := r.db.WithContext(ctx).
		Table("app_user_sponsored_pets").
		Select("app_user_id, pet_id").
		Where("pet_id IN ?", ids).
		Order("app_user_id").
		Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	sponsors := make(map[int64][]int64, len(records))
	for _, row := range rows {
		sponsors[row.PetID] = append(sponsors[row.PetID], row.AppUserID)
	}
	for i := range records {
		pet := records[i].toDomain()
		if ids, ok := sponsors[pet.ID]; ok {
			pet.SponsorIDs = ids
		}
		pets = append(pets, pet)
	}
	return pets, nil
}

func missingOrStale(tx *gorm.DB, id int64) error {
	var count int64
	if err := tx.Model(&petRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
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
	default:
		return platformpostgres.Classify(err)
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return fmt.Errorf("%w: postgres pet repository not configured", platformpostgres.ErrMisconfigured)
	}
	return nil
}

func toRecord(pet *domain.Pet) petRecord {
	return petRecord{
		ID:          pet.ID,
		Name:        pet.Name,
		Age:         pet.Age,
		Gender:      pet.Gender,
		Breed:       pet.Breed,
		Size:        string(pet.Size),
		Castrated:   pet.Castrated,
		Dewormed:    pet.Dewormed,
		Vaccinated:  pet.Vaccinated,
		Description: pet.Description,
		ImageURL:    pet.ImageURL,
		Version:     pet.Version,
	}
}

func (r petRecord) toDomain() *domain.Pet {
	return &domain.Pet{
		ID:          r.ID,
		Name:        r.Name,
		Age:         r.Age,
		Gender:      r.Gender,
		Breed:       r.Breed,
		Size:        domain.ParseSize(r.Size),
		Castrated:   r.Castrated,
		Dewormed:    r.Dewormed,
		Vaccinated:  r.Vaccinated,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Version:     r.Version,
		SponsorIDs:  []int64{},
	}
}
