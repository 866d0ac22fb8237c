package handlers

import (
	"net/http"

	"dustbin-dashboard/internal/models"
	"dustbin-dashboard/internal/notifications"
	"dustbin-dashboard/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// GetNotifications returns the notifications currently visible
// GET /api/notifications
func GetNotifications(q *notifications.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.Success(w, models.ToNotificationResponses(q.Visible()))
	}
}

// GetNotificationHistory returns every notification raised since startup
// GET /api/notifications/history
func GetNotificationHistory(q *notifications.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.Success(w, models.ToNotificationResponses(q.History()))
	}
}

// DismissNotification hides a visible notification. Dismissing twice is harmless.
// DELETE /api/notifications/{id}
func DismissNotification(q *notifications.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.RespondError(w, http.StatusBadRequest, "Bad Request")
			return
		}

		q.Dismiss(id)
		w.WriteHeader(http.StatusNoContent)
	}
}
