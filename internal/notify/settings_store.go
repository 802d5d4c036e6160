// Package notify holds the notification settings store, trigger
// computation and the scheduler that arms alarms through the injected
// platform capability.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/interfaces"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
)

const settingsKey = "portfel:notification-settings"

// SettingsStore persists the singleton notification settings.
type SettingsStore struct {
	kv     interfaces.KeyValueStorage
	logger *common.Logger
}

// NewSettingsStore creates a settings store over the given storage.
func NewSettingsStore(kv interfaces.KeyValueStorage, logger *common.Logger) *SettingsStore {
	return &SettingsStore{kv: kv, logger: logger}
}

// storedSettings mirrors NotificationSettings with pointer fields so
// that blobs written by older app versions, which may lack fields, can
// be merged over the defaults field by field.
type storedSettings struct {
	Enabled          *bool              `json:"enabled"`
	Frequency        *models.Frequency  `json:"frequency"`
	Time             *storedClock       `json:"time"`
	WeeklyDay        *models.Weekday    `json:"weekly_day"`
	IncludePositions *bool              `json:"include_positions"`
	QuietHours       *storedQuietHours  `json:"quiet_hours"`
	Timezone         *string            `json:"timezone"`
}

type storedClock struct {
	Hour   *int `json:"hour"`
	Minute *int `json:"minute"`
}

type storedQuietHours struct {
	Enabled *bool        `json:"enabled"`
	Start   *storedClock `json:"start"`
	End     *storedClock `json:"end"`
}

// Load returns the stored settings merged over the defaults. Missing or
// corrupted stored data yields the defaults unchanged.
func (s *SettingsStore) Load(ctx context.Context) models.NotificationSettings {
	settings := models.DefaultNotificationSettings()

	raw, err := s.kv.Get(ctx, settingsKey)
	if err != nil {
		return settings
	}

	var stored storedSettings
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("stored settings corrupted, using defaults")
		return settings
	}

	if stored.Enabled != nil {
		settings.Enabled = *stored.Enabled
	}
	if stored.Frequency != nil {
		settings.Frequency = *stored.Frequency
	}
	if stored.Time != nil {
		mergeClock(&settings.Time, stored.Time)
	}
	if stored.WeeklyDay != nil {
		settings.WeeklyDay = stored.WeeklyDay
	}
	if stored.IncludePositions != nil {
		settings.IncludePositions = *stored.IncludePositions
	}
	if stored.QuietHours != nil {
		if stored.QuietHours.Enabled != nil {
			settings.QuietHours.Enabled = *stored.QuietHours.Enabled
		}
		mergeClock(&settings.QuietHours.Start, stored.QuietHours.Start)
		mergeClock(&settings.QuietHours.End, stored.QuietHours.End)
	}
	if stored.Timezone != nil {
		settings.Timezone = *stored.Timezone
	}

	return settings
}

func mergeClock(dst *models.ClockTime, src *storedClock) {
	if src == nil {
		return
	}
	if src.Hour != nil {
		dst.Hour = *src.Hour
	}
	if src.Minute != nil {
		dst.Minute = *src.Minute
	}
}

// Save rewrites the stored settings. Returns false when the write fails.
func (s *SettingsStore) Save(ctx context.Context, settings models.NotificationSettings) bool {
	data, err := json.Marshal(settings)
	if err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to serialize settings")
		return false
	}
	if err := s.kv.Set(ctx, settingsKey, string(data)); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to save settings")
		return false
	}
	return true
}

// IsQuietHours reports whether t falls inside the configured quiet
// window. Start is inclusive, end exclusive; a window with start > end
// spans midnight; start == end means no window at all.
func IsQuietHours(settings models.NotificationSettings, t time.Time) bool {
	q := settings.QuietHours
	if !q.Enabled {
		return false
	}

	start := q.Start.MinuteOfDay()
	end := q.End.MinuteOfDay()
	if start == end {
		return false
	}

	minute := t.Hour()*60 + t.Minute()
	if start > end {
		return minute >= start || minute < end
	}
	return minute >= start && minute < end
}
