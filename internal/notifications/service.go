package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okuyamiwatch/backend/pkg/db"
	"github.com/okuyamiwatch/backend/pkg/db/models"
	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
)

// NotificationDTO is the client-facing view of a stored match candidate.
type NotificationDTO struct {
	ID        uuid.UUID  `json:"id"`
	NameID    uuid.UUID  `json:"nameId"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"readAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Service exposes the caller-scoped notification inbox.
type Service interface {
	List(ctx context.Context, callerID uuid.UUID) ([]NotificationDTO, error)
	MarkRead(ctx context.Context, callerID, notificationID uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService builds a notifications service on top of the shared DB client.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) List(ctx context.Context, callerID uuid.UUID) ([]NotificationDTO, error) {
	if callerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}

	rows, err := NewRepository(s.db.DB()).ListByUser(ctx, callerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notifications")
	}

	out := make([]NotificationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, fromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) MarkRead(ctx context.Context, callerID, notificationID uuid.UUID) error {
	if callerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}

	// Rows owned by someone else look identical to missing rows.
	found, err := NewRepository(s.db.DB()).MarkRead(ctx, callerID, notificationID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notification read")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Not found")
	}
	return nil
}

func fromModel(m *models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        m.ID,
		NameID:    m.NameID,
		Title:     m.Title,
		Body:      m.Body,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}
