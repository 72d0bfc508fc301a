package http

import (
	"net/http"

	"github.com/fjod/go_shop/internal/notify"
	"github.com/go-chi/chi/v5"
)

type NotificationHandler struct {
	svc ShopService
}

func NewNotificationHandler(svc ShopService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type NotificationsResponse struct {
	Notifications []notify.Notification `json:"notifications"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	v, ok := visitorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing_session", errMissingSession.Error())
		return
	}

	respondJSON(w, http.StatusOK, NotificationsResponse{
		Notifications: h.svc.Notifications(r.Context(), v),
	})
}

// Dismiss always succeeds; the notification may already have expired.
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	v, ok := visitorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing_session", errMissingSession.Error())
		return
	}

	h.svc.DismissNotification(r.Context(), v, chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
