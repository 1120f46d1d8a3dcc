package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Name is a watched name record owned by exactly one user. The normalized
// columns carry whitespace-stripped, case-folded derivatives kept for the
// future obituary matcher.
type Name struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:names_user_id_idx"`
	Label           string    `gorm:"column:label;type:varchar(191);not null"`
	Kana            *string   `gorm:"column:kana;type:varchar(191)"`
	NormalizedLabel *string   `gorm:"column:normalized_label;type:varchar(191)"`
	NormalizedKana  *string   `gorm:"column:normalized_kana;type:varchar(191)"`
	IsActive        bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (n *Name) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
