package auth

import "github.com/okuyamiwatch/backend/internal/users"

// RegisterRequest contains the payload required to create an account.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=191"`
}

// LoginRequest carries submitted credentials. Shape problems are checked by
// the service itself so malformed input fails exactly like a wrong password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the minted session and the identity descriptor.
type LoginResponse struct {
	SessionToken string
	RefreshToken string
	User         *users.UserDTO
}
