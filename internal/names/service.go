package names

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/okuyamiwatch/backend/internal/notifications"
	"github.com/okuyamiwatch/backend/pkg/db"
	"github.com/okuyamiwatch/backend/pkg/db/models"
	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
	"gorm.io/gorm"
)

const maxFieldLength = 191

// Service exposes caller-scoped CRUD over name records. Every operation
// requires a resolved caller id; records owned by someone else are reported
// as missing so callers cannot probe for other users' data.
type Service interface {
	List(ctx context.Context, callerID uuid.UUID) ([]NameDTO, error)
	Create(ctx context.Context, callerID uuid.UUID, input NameInput) (*NameDTO, error)
	Update(ctx context.Context, callerID, nameID uuid.UUID, input NameInput) (*NameDTO, error)
	Toggle(ctx context.Context, callerID, nameID uuid.UUID, isActive bool) (*NameDTO, error)
	Delete(ctx context.Context, callerID, nameID uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService builds a name-record service on top of the shared DB client.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) List(ctx context.Context, callerID uuid.UUID) ([]NameDTO, error) {
	if callerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}

	records, err := NewRepository(s.db.DB()).ListByUser(ctx, callerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list names")
	}
	return fromModels(records), nil
}

func (s *service) Create(ctx context.Context, callerID uuid.UUID, input NameInput) (*NameDTO, error) {
	if callerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}

	label, kana, err := sanitizeInput(input)
	if err != nil {
		return nil, err
	}

	record := &models.Name{
		UserID:          callerID,
		Label:           label,
		Kana:            kana,
		NormalizedLabel: normalize(label),
		NormalizedKana:  normalizeOptional(kana),
		IsActive:        true,
	}
	if err := NewRepository(s.db.DB()).Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create name")
	}
	return fromModel(record), nil
}

func (s *service) Update(ctx context.Context, callerID, nameID uuid.UUID, input NameInput) (*NameDTO, error) {
	if callerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}

	label, kana, err := sanitizeInput(input)
	if err != nil {
		return nil, err
	}

	record, err := s.findOwned(ctx, callerID, nameID)
	if err != nil {
		return nil, err
	}

	record.Label = label
	record.Kana = kana
	record.NormalizedLabel = normalize(label)
	record.NormalizedKana = normalizeOptional(kana)

	if err := NewRepository(s.db.DB()).Save(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update name")
	}
	return fromModel(record), nil
}

func (s *service) Toggle(ctx context.Context, callerID, nameID uuid.UUID, isActive bool) (*NameDTO, error) {
	record, err := s.findOwned(ctx, callerID, nameID)
	if err != nil {
		return nil, err
	}

	record.IsActive = isActive
	if err := NewRepository(s.db.DB()).Save(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle name")
	}
	return fromModel(record), nil
}

func (s *service) Delete(ctx context.Context, callerID, nameID uuid.UUID) error {
	record, err := s.findOwned(ctx, callerID, nameID)
	if err != nil {
		return err
	}

	// Dependent notifications and the record go in one transaction so a
	// partial failure can never leave notification rows pointing at a
	// deleted name.
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := notifications.NewRepository(tx).DeleteByNameID(ctx, record.ID); err != nil {
			return err
		}
		return NewRepository(tx).Delete(ctx, record.ID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete name")
	}
	return nil
}

// findOwned implements the ownership check shared by update/toggle/delete: a
// record that does not exist and a record owned by another user produce the
// same NotFound, so existence of other users' records never leaks.
func (s *service) findOwned(ctx context.Context, callerID, nameID uuid.UUID) (*models.Name, error) {
	if callerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}

	record, err := NewRepository(s.db.DB()).FindByID(ctx, nameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup name")
	}
	if record.UserID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Not found")
	}
	return record, nil
}

func sanitizeInput(input NameInput) (string, *string, error) {
	issues := map[string]string{}

	label := strings.TrimSpace(input.Label)
	if label == "" {
		issues["label"] = "is required"
	} else if len([]rune(label)) > maxFieldLength {
		issues["label"] = "must be at most 191 characters"
	}

	var kana *string
	if input.Kana != nil {
		trimmed := strings.TrimSpace(*input.Kana)
		if len([]rune(trimmed)) > maxFieldLength {
			issues["kana"] = "must be at most 191 characters"
		}
		// Blank after trim is treated as absent.
		if trimmed != "" {
			kana = &trimmed
		}
	}

	if len(issues) > 0 {
		return "", nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid payload").WithIssues(issues)
	}
	return label, kana, nil
}
