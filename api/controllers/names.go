package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/okuyamiwatch/backend/api/middleware"
	"github.com/okuyamiwatch/backend/api/responses"
	"github.com/okuyamiwatch/backend/api/validators"
	"github.com/okuyamiwatch/backend/internal/names"
	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
	"github.com/okuyamiwatch/backend/pkg/logger"
)

type toggleRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// NamesList returns every watch entry owned by the caller, oldest first.
func NamesList(svc names.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.List(r.Context(), callerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, map[string]any{"names": records})
	}
}

// NameCreate registers a new watch entry for the caller.
func NameCreate(svc names.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body names.NameInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), callerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSONStatus(w, http.StatusCreated, map[string]any{"name": record})
	}
}

// NameUpdate replaces the label and kana of an owned watch entry.
func NameUpdate(svc names.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		nameID, err := nameIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body names.NameInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), callerID, nameID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, map[string]any{"name": record})
	}
}

// NameToggle flips the active flag without touching the label fields.
func NameToggle(svc names.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		nameID, err := nameIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body toggleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Toggle(r.Context(), callerID, nameID, *body.IsActive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, map[string]any{"name": record})
	}
}

// NameDelete removes an owned watch entry and its notifications.
func NameDelete(svc names.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		nameID, err := nameIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), callerID, nameID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, map[string]bool{"success": true})
	}
}

func callerFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	callerID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Unauthorized")
	}
	return callerID, nil
}

// nameIDParam maps an unparseable id to the same not-found the ownership
// check produces, so malformed ids and foreign ids are indistinguishable.
func nameIDParam(r *http.Request) (uuid.UUID, error) {
	nameID, err := uuid.Parse(chi.URLParam(r, "nameId"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Not found")
	}
	return nameID, nil
}
