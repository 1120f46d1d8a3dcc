package names

import (
	"time"

	"github.com/google/uuid"
	"github.com/okuyamiwatch/backend/pkg/db/models"
)

// NameDTO is the client-facing view of a name record. Kana stays a pointer so
// an absent reading serializes as null rather than an empty string.
type NameDTO struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Kana      *string   `json:"kana"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NameInput carries the writable fields shared by create and update.
type NameInput struct {
	Label string  `json:"label"`
	Kana  *string `json:"kana"`
}

func fromModel(m *models.Name) *NameDTO {
	if m == nil {
		return nil
	}
	return &NameDTO{
		ID:        m.ID,
		Label:     m.Label,
		Kana:      m.Kana,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromModels(records []models.Name) []NameDTO {
	out := make([]NameDTO, 0, len(records))
	for i := range records {
		out = append(out, *fromModel(&records[i]))
	}
	return out
}
