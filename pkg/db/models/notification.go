package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification stores an in-app match candidate tied to a watched name.
// Rows are written by the (future) obituary matcher and must be removed
// whenever the referenced name is deleted.
type Notification struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:notifications_user_id_idx"`
	NameID    uuid.UUID  `gorm:"column:name_id;type:uuid;not null;index:notifications_name_id_idx"`
	Title     string     `gorm:"column:title;type:text;not null"`
	Body      string     `gorm:"column:body;type:text;not null"`
	ReadAt    *time.Time `gorm:"column:read_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
