package controllers

import (
	"context"
	"net/http"

	"github.com/okuyamiwatch/backend/api/responses"
	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
	"github.com/okuyamiwatch/backend/pkg/logger"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive answers as long as the process can serve requests.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, map[string]string{"status": "ok"})
	}
}

// HealthReady checks every backing dependency before reporting ready.
func HealthReady(logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteJSON(w, map[string]string{"status": "ready"})
	}
}
