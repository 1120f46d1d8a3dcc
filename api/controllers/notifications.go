package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/okuyamiwatch/backend/api/responses"
	"github.com/okuyamiwatch/backend/internal/notifications"
	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
	"github.com/okuyamiwatch/backend/pkg/logger"
)

// NotificationsList returns the caller's inbox, newest first.
func NotificationsList(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), callerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, map[string]any{"notifications": items})
	}
}

// NotificationRead marks a single notification as read. Re-reading an
// already-read notification is a no-op success.
func NotificationRead(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		notificationID, err := uuid.Parse(chi.URLParam(r, "notificationId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Not found"))
			return
		}

		if err := svc.MarkRead(r.Context(), callerID, notificationID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, map[string]bool{"success": true})
	}
}
