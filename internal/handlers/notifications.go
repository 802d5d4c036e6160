package handlers

import (
	"net/http"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/notify"
)

// NotificationsHandler handles notification scheduling requests.
type NotificationsHandler struct {
	logger    *common.Logger
	store     *notify.SettingsStore
	scheduler *notify.Scheduler
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(logger *common.Logger, store *notify.SettingsStore, scheduler *notify.Scheduler) *NotificationsHandler {
	return &NotificationsHandler{logger: logger, store: store, scheduler: scheduler}
}

// HandleSchedule handles POST /api/notifications/schedule. Re-arms the
// schedule from the stored settings.
func (h *NotificationsHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	settings := h.store.Load(r.Context())
	if !h.scheduler.ScheduleNotifications(r.Context(), settings) {
		WriteError(w, http.StatusInternalServerError, "failed to schedule notifications")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"scheduled": h.scheduler.Scheduled(r.Context()),
	})
}

// HandleScheduled handles GET /api/notifications/scheduled.
func (h *NotificationsHandler) HandleScheduled(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	scheduled := h.scheduler.Scheduled(r.Context())
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"scheduled": scheduled,
		"count":     len(scheduled),
	})
}

// HandleCancelAll handles POST /api/notifications/cancel.
func (h *NotificationsHandler) HandleCancelAll(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if !h.scheduler.CancelAll(r.Context()) {
		WriteError(w, http.StatusInternalServerError, "failed to cancel notifications")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleTest handles POST /api/notifications/test. Fires a one-shot
// notification through the capability without touching the schedule.
func (h *NotificationsHandler) HandleTest(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if !h.scheduler.SendTest(r.Context()) {
		WriteError(w, http.StatusInternalServerError, "failed to send test notification")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandlePermissions handles GET and POST /api/notifications/permissions.
// GET reports the current grant; POST requests it.
func (h *NotificationsHandler) HandlePermissions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		WriteJSON(w, http.StatusOK, map[string]bool{
			"granted": h.scheduler.HasPermissions(r.Context()),
		})
	case http.MethodPost:
		WriteJSON(w, http.StatusOK, map[string]bool{
			"granted": h.scheduler.RequestPermissions(r.Context()),
		})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
