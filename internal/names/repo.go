package names

import (
	"context"

	"github.com/google/uuid"
	"github.com/okuyamiwatch/backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates name-record persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a names repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to a transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new name record.
func (r *Repository) Create(ctx context.Context, name *models.Name) error {
	return r.db.WithContext(ctx).Create(name).Error
}

// ListByUser returns every record owned by the user, oldest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Name, error) {
	var records []models.Name
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID loads a single record regardless of owner; ownership is enforced
// by the service layer.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Name, error) {
	var record models.Name
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Save persists label/kana/normalized columns and bumps updated_at.
func (r *Repository) Save(ctx context.Context, name *models.Name) error {
	return r.db.WithContext(ctx).Save(name).Error
}

// Delete removes the record by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Name{}, "id = ?", id).Error
}
