package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/okuyamiwatch/backend/pkg/enums"
)

// SessionPayload captures the identity descriptor available when minting a
// session token. The whole descriptor travels inside the token so no server
// side session table is needed.
type SessionPayload struct {
	UserID uuid.UUID
	Email  string
	Name   *string
	Role   enums.Role
	JTI    string
}

// SessionClaims represents the typed JWT issued to clients. The user id is
// carried as the registered subject; role is a custom claim copied from the
// identity at session start.
type SessionClaims struct {
	Email string     `json:"email"`
	Name  *string    `json:"name,omitempty"`
	Role  enums.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject back into the owning user's id.
func (c *SessionClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
