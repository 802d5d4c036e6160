package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/interfaces"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
)

const scheduledKey = "portfel:scheduled-notifications"

// Scheduler computes next-trigger times and arms repeating alarms
// through the notification capability, bookkeeping what it scheduled in
// storage. All operations are attempt-once and fail soft: permission or
// storage problems surface as nil/false, never as panics or errors to
// the caller.
type Scheduler struct {
	capability interfaces.NotificationCapability
	kv         interfaces.KeyValueStorage
	logger     *common.Logger

	now func() time.Time
}

// NewScheduler creates a scheduler over the given capability and storage.
func NewScheduler(capability interfaces.NotificationCapability, kv interfaces.KeyValueStorage, logger *common.Logger) *Scheduler {
	return &Scheduler{
		capability: capability,
		kv:         kv,
		logger:     logger,
		now:        time.Now,
	}
}

// RequestPermissions asks the capability for notification permission.
// Any error is treated as denied.
func (s *Scheduler) RequestPermissions(ctx context.Context) bool {
	granted, err := s.capability.RequestPermission(ctx)
	if err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("permission request failed")
		return false
	}
	return granted
}

// HasPermissions reports whether notification permission is granted.
// Any error is treated as not granted.
func (s *Scheduler) HasPermissions(ctx context.Context) bool {
	granted, err := s.capability.PermissionStatus(ctx)
	if err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("permission status check failed")
		return false
	}
	return granted
}

// ScheduleDaily arms a daily repeating alarm at the configured time.
// Returns nil when permission is missing or the capability rejects the
// alarm.
func (s *Scheduler) ScheduleDaily(ctx context.Context, settings models.NotificationSettings) *models.ScheduledNotification {
	if !s.HasPermissions(ctx) {
		return nil
	}

	now := s.now().In(s.location(settings))
	trigger := NextDailyTrigger(now, settings.Time.Hour, settings.Time.Minute)

	id, err := s.capability.Schedule(ctx, interfaces.AlarmRequest{
		Title: "Portfolio report",
		Body:  "Your daily portfolio report is ready",
		Data:  map[string]string{"type": string(models.TypeDailyReport)},
		Trigger: interfaces.AlarmTrigger{
			Kind:   interfaces.AlarmDaily,
			Hour:   settings.Time.Hour,
			Minute: settings.Time.Minute,
		},
	})
	if err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to schedule daily notification")
		return nil
	}

	record := models.ScheduledNotification{
		ID:           id,
		Type:         models.TypeDailyReport,
		ScheduledFor: s.now(),
		NextTrigger:  trigger,
	}
	s.appendScheduled(ctx, record)
	return &record
}

// ScheduleWeekly arms a weekly repeating alarm. Returns nil when
// permission is missing, the capability rejects the alarm, or no weekly
// day is configured (a caller contract violation, not retried).
func (s *Scheduler) ScheduleWeekly(ctx context.Context, settings models.NotificationSettings) *models.ScheduledNotification {
	if !s.HasPermissions(ctx) {
		return nil
	}
	if settings.WeeklyDay == nil {
		s.logger.Warn().Msg("weekly frequency without a weekly day, nothing scheduled")
		return nil
	}
	weekday, ok := settings.WeeklyDay.TimeWeekday()
	if !ok {
		s.logger.Warn().Str("weekly_day", string(*settings.WeeklyDay)).Msg("unknown weekly day, nothing scheduled")
		return nil
	}

	now := s.now().In(s.location(settings))
	trigger := NextWeeklyTrigger(now, weekday, settings.Time.Hour, settings.Time.Minute)

	id, err := s.capability.Schedule(ctx, interfaces.AlarmRequest{
		Title: "Portfolio report",
		Body:  "Your weekly portfolio report is ready",
		Data:  map[string]string{"type": string(models.TypeWeeklyReport)},
		Trigger: interfaces.AlarmTrigger{
			Kind: interfaces.AlarmWeekly,
			// Platform alarms number weekdays 1-7 with 1=Sunday.
			Weekday: int(weekday) + 1,
			Hour:    settings.Time.Hour,
			Minute:  settings.Time.Minute,
		},
	})
	if err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to schedule weekly notification")
		return nil
	}

	record := models.ScheduledNotification{
		ID:           id,
		Type:         models.TypeWeeklyReport,
		ScheduledFor: s.now(),
		NextTrigger:  trigger,
	}
	s.appendScheduled(ctx, record)
	return &record
}

// ScheduleNotifications resets all scheduling to match the settings:
// everything is cancelled first, then a daily or weekly alarm is armed
// per the configured frequency. Disabled settings or frequency "off"
// are a successful no-op.
func (s *Scheduler) ScheduleNotifications(ctx context.Context, settings models.NotificationSettings) bool {
	s.CancelAll(ctx)

	if !settings.Enabled || settings.Frequency == models.FrequencyOff {
		return true
	}

	switch settings.Frequency {
	case models.FrequencyDaily:
		return s.ScheduleDaily(ctx, settings) != nil
	case models.FrequencyWeekly:
		return s.ScheduleWeekly(ctx, settings) != nil
	default:
		s.logger.Warn().Str("frequency", string(settings.Frequency)).Msg("unknown frequency, nothing scheduled")
		return false
	}
}

// CancelAll cancels every alarm at the capability and clears the local
// scheduled-notification metadata. Idempotent: cancelling when nothing
// is scheduled still succeeds.
func (s *Scheduler) CancelAll(ctx context.Context) bool {
	ok := true
	if err := s.capability.CancelAll(ctx); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("capability cancel-all failed")
		ok = false
	}
	if err := s.kv.Delete(ctx, scheduledKey); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to clear scheduled metadata")
		ok = false
	}
	return ok
}

// Cancel cancels a single alarm by id at the capability level only.
// The locally persisted metadata list is deliberately left untouched;
// only CancelAll clears it. Callers owning both are responsible for
// consistency.
func (s *Scheduler) Cancel(ctx context.Context, id string) bool {
	if err := s.capability.Cancel(ctx, id); err != nil {
		s.logger.Warn().Str("id", id).Str("error", err.Error()).Msg("failed to cancel notification")
		return false
	}
	return true
}

// SendTest fires an immediate one-shot notification for user-facing
// verification. Requires permission; persists no metadata.
func (s *Scheduler) SendTest(ctx context.Context) bool {
	if !s.HasPermissions(ctx) {
		return false
	}

	_, err := s.capability.Schedule(ctx, interfaces.AlarmRequest{
		Title: "Test notification",
		Body:  "Notifications are working",
		Data:  map[string]string{"type": "test"},
		Trigger: interfaces.AlarmTrigger{
			Kind:    interfaces.AlarmOnce,
			Seconds: 1,
		},
	})
	if err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to send test notification")
		return false
	}
	return true
}

// Scheduled returns the locally persisted scheduled-notification
// metadata. Missing or corrupted data yields an empty list.
func (s *Scheduler) Scheduled(ctx context.Context) []models.ScheduledNotification {
	raw, err := s.kv.Get(ctx, scheduledKey)
	if err != nil {
		return nil
	}
	var records []models.ScheduledNotification
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("stored scheduled metadata corrupted, resetting to empty")
		return nil
	}
	return records
}

func (s *Scheduler) appendScheduled(ctx context.Context, record models.ScheduledNotification) {
	records := append(s.Scheduled(ctx), record)
	data, err := json.Marshal(records)
	if err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to serialize scheduled metadata")
		return
	}
	if err := s.kv.Set(ctx, scheduledKey, string(data)); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to persist scheduled metadata")
	}
}

func (s *Scheduler) location(settings models.NotificationSettings) *time.Location {
	if settings.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		s.logger.Warn().Str("timezone", settings.Timezone).Msg("unknown timezone, using local")
		return time.Local
	}
	return loc
}
