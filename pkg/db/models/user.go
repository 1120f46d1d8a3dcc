package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/okuyamiwatch/backend/pkg/enums"
	"gorm.io/gorm"
)

// User represents the canonical identity entity. PasswordHash is nullable so
// identities created by future credential providers can exist without one.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Email        string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash *string    `gorm:"column:password_hash;type:text"`
	Name         *string    `gorm:"column:name;type:varchar(191)"`
	Role         enums.Role `gorm:"column:role;type:text;not null;default:USER"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = enums.RoleUser
	}
	return nil
}
