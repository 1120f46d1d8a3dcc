package controllers

import (
	"net/http"

	"github.com/okuyamiwatch/backend/api/responses"
	"github.com/okuyamiwatch/backend/api/validators"
	"github.com/okuyamiwatch/backend/internal/auth"
	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
	"github.com/okuyamiwatch/backend/pkg/logger"
)

// AuthRegister handles new account creation. The response never echoes any
// credential material back.
func AuthRegister(reg auth.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := reg.Register(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, map[string]bool{"success": true})
	}
}
