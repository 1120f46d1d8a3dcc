package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/okuyamiwatch/backend/pkg/db/models"
	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
	"github.com/okuyamiwatch/backend/pkg/security"
	"gorm.io/gorm"
)

// ErrBadCredentials collapses every authentication failure (unknown email,
// absent password hash, mismatch) into one indistinguishable error.
var ErrBadCredentials = errors.New("bad credentials")

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// CredentialVerifier checks a submitted credential pair against a backing
// identity store. Today there is a single password-backed implementation;
// future providers plug in behind the same capability.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*models.User, error)
}

type passwordVerifier struct {
	users userFinder
}

// NewPasswordVerifier builds the bcrypt-backed credential verifier.
func NewPasswordVerifier(users userFinder) (CredentialVerifier, error) {
	if users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repository required")
	}
	return &passwordVerifier{users: users}, nil
}

func (v *passwordVerifier) Verify(ctx context.Context, email, password string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, ErrBadCredentials
	}

	user, err := v.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	// Identities without a password hash can never authenticate here.
	if user.PasswordHash == nil {
		return nil, ErrBadCredentials
	}

	valid, err := security.VerifyPassword(password, *user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, ErrBadCredentials
	}
	return user, nil
}
