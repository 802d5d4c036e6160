package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/notify"
)

// SettingsHandler serves notification settings reads and updates.
// Saving settings re-arms the notification schedule to match.
type SettingsHandler struct {
	logger    *common.Logger
	store     *notify.SettingsStore
	scheduler *notify.Scheduler
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(logger *common.Logger, store *notify.SettingsStore, scheduler *notify.Scheduler) *SettingsHandler {
	return &SettingsHandler{logger: logger, store: store, scheduler: scheduler}
}

// ServeHTTP dispatches /api/settings by method.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.handleGet(w, r)
	case http.MethodPut, http.MethodPost:
		h.handleSave(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGet returns the stored settings merged over defaults.
func (h *SettingsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.Load(r.Context()))
}

// handleSave validates and persists settings, then reschedules.
func (h *SettingsHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var settings models.NotificationSettings
	if err := ReadJSON(r, &settings); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := validateSettings(settings); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.store.Save(r.Context(), settings) {
		WriteError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	rescheduled := h.scheduler.ScheduleNotifications(r.Context(), settings)
	if !rescheduled {
		h.logger.Warn().Msg("settings saved but rescheduling failed")
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"settings":    settings,
		"rescheduled": rescheduled,
	})
}

func validateSettings(s models.NotificationSettings) error {
	switch s.Frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyOff:
	default:
		return fmt.Errorf("invalid frequency: %s", s.Frequency)
	}

	if !s.Time.Valid() {
		return fmt.Errorf("invalid notification time %02d:%02d", s.Time.Hour, s.Time.Minute)
	}

	if s.Frequency == models.FrequencyWeekly {
		if s.WeeklyDay == nil {
			return fmt.Errorf("weekly_day is required for weekly frequency")
		}
		if _, ok := s.WeeklyDay.TimeWeekday(); !ok {
			return fmt.Errorf("invalid weekly_day: %s", *s.WeeklyDay)
		}
	}

	if s.QuietHours.Enabled {
		if !s.QuietHours.Start.Valid() || !s.QuietHours.End.Valid() {
			return fmt.Errorf("invalid quiet hours window")
		}
	}

	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("invalid timezone: %s", s.Timezone)
		}
	}

	return nil
}
