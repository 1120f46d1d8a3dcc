package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/okuyamiwatch/backend/internal/users"
	pkgAuth "github.com/okuyamiwatch/backend/pkg/auth"
	"github.com/okuyamiwatch/backend/pkg/auth/session"
	"github.com/okuyamiwatch/backend/pkg/config"
	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
)

const invalidCredentialsMessage = "Invalid email or password"

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type sessionManager interface {
	Generate(ctx context.Context, tokenID string) (string, error)
}

type service struct {
	verifier CredentialVerifier
	session  sessionManager
	jwtCfg   config.JWTConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
// The JWT config is passed explicitly; there is no ambient auth singleton.
type ServiceParams struct {
	Verifier       CredentialVerifier
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Verifier == nil {
		return nil, fmt.Errorf("credential verifier is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		verifier: params.Verifier,
		session:  params.SessionManager,
		jwtCfg:   params.JWTConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// Shape problems fail exactly like a wrong password so the response
	// never signals whether an account exists.
	if !emailPattern.MatchString(req.Email) || len(req.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.verifier.Verify(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, err
	}

	tokenID := session.NewTokenID()
	sessionToken, err := pkgAuth.MintSessionToken(s.jwtCfg, time.Now().UTC(), pkgAuth.SessionPayload{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		JTI:    tokenID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	refreshToken, err := s.session.Generate(ctx, tokenID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &LoginResponse{
		SessionToken: sessionToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
	}, nil
}
