package middleware

import (
	"net/http"
	"net/url"

	pkgAuth "github.com/okuyamiwatch/backend/pkg/auth"
	"github.com/okuyamiwatch/backend/pkg/config"
	"github.com/okuyamiwatch/backend/pkg/logger"
)

const (
	// LoginPath is the only public page inside the registered area.
	LoginPath = "/app/login"
	// DashboardPath is where authenticated visitors land by default.
	DashboardPath = "/app/dashboard"

	callbackParam = "callbackUrl"
)

// GateAction is the outcome of evaluating the session gate for one request:
// either let the request through or redirect the client elsewhere.
type GateAction struct {
	Allow      bool
	RedirectTo string
}

// EvaluateGate decides what happens to a registered-area page request. It is
// a pure function of the request path/query and token validity; the gate
// keeps no state of its own.
//
// An authenticated visitor on the login page is bounced to the dashboard with
// the query dropped. An anonymous visitor anywhere else is bounced to login
// carrying the original path+query so the client can return after signing in.
func EvaluateGate(jwtCfg config.JWTConfig, path, rawQuery, token string) GateAction {
	authenticated := false
	if token != "" {
		if _, err := pkgAuth.ParseSessionToken(jwtCfg, token); err == nil {
			authenticated = true
		}
	}

	if path == LoginPath {
		if authenticated {
			return GateAction{RedirectTo: DashboardPath}
		}
		return GateAction{Allow: true}
	}

	if !authenticated {
		callback := path
		if rawQuery != "" {
			callback += "?" + rawQuery
		}
		return GateAction{RedirectTo: LoginPath + "?" + callbackParam + "=" + url.QueryEscape(callback)}
	}
	return GateAction{Allow: true}
}

// SessionGate applies EvaluateGate ahead of every registered-area page handler.
func SessionGate(jwtCfg config.JWTConfig, sessionCfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			action := EvaluateGate(jwtCfg, r.URL.Path, r.URL.RawQuery, SessionToken(r, sessionCfg))
			if !action.Allow {
				if logg != nil {
					ctx := logg.WithField(r.Context(), "redirect_to", action.RedirectTo)
					logg.Info(ctx, "gate.redirect")
				}
				http.Redirect(w, r, action.RedirectTo, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
