package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okuyamiwatch/backend/api/middleware"
	"github.com/okuyamiwatch/backend/api/responses"
	"github.com/okuyamiwatch/backend/api/validators"
	"github.com/okuyamiwatch/backend/internal/auth"
	pkgAuth "github.com/okuyamiwatch/backend/pkg/auth"
	"github.com/okuyamiwatch/backend/pkg/auth/session"
	"github.com/okuyamiwatch/backend/pkg/config"
	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
	"github.com/okuyamiwatch/backend/pkg/logger"
)

type sessionTokenRotator interface {
	Rotate(ctx context.Context, oldTokenID, provided string) (string, string, error)
	Revoke(ctx context.Context, tokenID string) error
}

type loginResponse struct {
	Success      bool   `json:"success"`
	RedirectURL  string `json:"redirectUrl"`
	RefreshToken string `json:"refreshToken"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthLogin exchanges credentials for a session cookie. Failures are always
// the same generic message so nothing reveals which part was wrong.
func AuthLogin(svc auth.Service, jwtCfg config.JWTConfig, sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			// Malformed input must look like bad credentials.
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid email or password"))
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setSessionCookie(w, jwtCfg, sessionCfg, result.SessionToken)
		responses.WriteJSON(w, loginResponse{
			Success:      true,
			RedirectURL:  safeCallback(r.URL.Query().Get("callbackUrl")),
			RefreshToken: result.RefreshToken,
		})
	}
}

// AuthLogout revokes the refresh mapping tied to the presented session token
// and clears the cookie. An expired token can still log out.
func AuthLogout(manager sessionTokenRotator, jwtCfg config.JWTConfig, sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		token := middleware.SessionToken(r, sessionCfg)
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"))
			return
		}

		claims, err := pkgAuth.ParseSessionTokenAllowExpired(jwtCfg, token)
		if err != nil || claims.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Unauthorized"))
			return
		}

		if err := manager.Revoke(r.Context(), claims.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session"))
			return
		}

		clearSessionCookie(w, sessionCfg)
		responses.WriteJSON(w, map[string]bool{"success": true})
	}
}

// AuthRefresh rotates the refresh token and issues a fresh session cookie.
func AuthRefresh(manager sessionTokenRotator, jwtCfg config.JWTConfig, sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		var body refreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.SessionToken(r, sessionCfg)
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"))
			return
		}

		claims, err := pkgAuth.ParseSessionTokenAllowExpired(jwtCfg, token)
		if err != nil || claims.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Unauthorized"))
			return
		}

		newTokenID, newRefreshToken, err := manager.Rotate(r.Context(), claims.ID, body.RefreshToken)
		if err != nil {
			if errors.Is(err, session.ErrInvalidRefreshToken) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session"))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Unauthorized"))
			return
		}

		sessionToken, err := pkgAuth.MintSessionToken(jwtCfg, time.Now().UTC(), pkgAuth.SessionPayload{
			UserID: userID,
			Email:  claims.Email,
			Name:   claims.Name,
			Role:   claims.Role,
			JTI:    newTokenID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token"))
			return
		}

		setSessionCookie(w, jwtCfg, sessionCfg, sessionToken)
		responses.WriteJSON(w, map[string]any{
			"success":      true,
			"refreshToken": newRefreshToken,
		})
	}
}

func setSessionCookie(w http.ResponseWriter, jwtCfg config.JWTConfig, sessionCfg config.SessionConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCfg.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   sessionCfg.CookieDomain,
		MaxAge:   jwtCfg.ExpirationMinutes * 60,
		HttpOnly: true,
		Secure:   sessionCfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, sessionCfg config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCfg.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   sessionCfg.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sessionCfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeCallback only honors same-site relative callbacks so login can never
// become an open redirect. Browsers normalize backslashes to forward slashes,
// so "/\host" is as protocol-relative as "//host" and is rejected too.
func safeCallback(callback string) string {
	callback = strings.TrimSpace(callback)
	if callback == "" || !strings.HasPrefix(callback, "/") {
		return middleware.DashboardPath
	}
	if strings.HasPrefix(callback, "//") || strings.HasPrefix(callback, "/\\") {
		return middleware.DashboardPath
	}
	parsed, err := url.Parse(callback)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return middleware.DashboardPath
	}
	return callback
}
