// Package app wires configuration, storage, reporting and notification
// scheduling into a running application.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/config"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/handlers"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/interfaces"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/notify"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/notify/cronalarm"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/portfolio"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/report"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/storage"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Storage   interfaces.StorageManager
	Positions *portfolio.Store
	Generator *report.Generator
	Settings  *notify.SettingsStore
	Scheduler *notify.Scheduler

	// HTTP handlers
	HealthHandler        *handlers.HealthHandler
	VersionHandler       *handlers.VersionHandler
	PositionsHandler     *handlers.PositionsHandler
	ReportsHandler       *handlers.ReportsHandler
	SettingsHandler      *handlers.SettingsHandler
	NotificationsHandler *handlers.NotificationsHandler

	capability interfaces.NotificationCapability
	alarms     *cronalarm.Capability
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	manager, err := storage.NewStorageManager(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.Storage = manager
	kv := manager.KeyValueStorage()

	a.Positions = portfolio.NewStore(kv, logger)
	a.Generator = report.NewGenerator(kv, logger)
	a.Settings = notify.NewSettingsStore(kv, logger)

	capability, err := a.initCapability(kv)
	if err != nil {
		manager.Close()
		return nil, err
	}
	a.capability = capability
	a.Scheduler = notify.NewScheduler(capability, kv, logger)

	a.initHandlers()

	logger.Info().Msg("application initialization complete")
	return a, nil
}

// initCapability builds the notification capability named in config.
func (a *App) initCapability(kv interfaces.KeyValueStorage) (interfaces.NotificationCapability, error) {
	switch a.Config.Notify.Capability {
	case "none":
		a.Logger.Warn().Msg("notification capability disabled, scheduling is inert")
		return notify.NewNoopCapability(), nil
	case "cron", "":
		settings := notify.NewSettingsStore(kv, a.Logger).Load(context.Background())
		loc, err := time.LoadLocation(settings.Timezone)
		if err != nil {
			a.Logger.Warn().Str("timezone", settings.Timezone).Msg("unknown timezone, alarms use local time")
			loc = time.Local
		}
		a.alarms = cronalarm.New(loc, a.Logger, a.deliver)
		return a.alarms, nil
	default:
		return nil, fmt.Errorf("unknown notify capability: %s", a.Config.Notify.Capability)
	}
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.PositionsHandler = handlers.NewPositionsHandler(a.Logger, a.Positions)
	a.ReportsHandler = handlers.NewReportsHandler(a.Logger, a.Generator, a.Positions)
	a.SettingsHandler = handlers.NewSettingsHandler(a.Logger, a.Settings, a.Scheduler)
	a.NotificationsHandler = handlers.NewNotificationsHandler(a.Logger, a.Settings, a.Scheduler)
}

// Start arms the alarm runner and re-applies the stored notification
// schedule so alarms survive restarts.
func (a *App) Start(ctx context.Context) {
	if a.alarms != nil {
		a.alarms.Start()
	}

	if a.Config.Notify.Channel != "" {
		if err := a.capability.CreateChannel(ctx, a.Config.Notify.Channel, "Portfolio reports"); err != nil {
			a.Logger.Warn().Str("channel", a.Config.Notify.Channel).Str("error", err.Error()).Msg("failed to create notification channel")
		}
	}

	settings := a.Settings.Load(ctx)
	if settings.Enabled {
		if !a.Scheduler.ScheduleNotifications(ctx, settings) {
			a.Logger.Warn().Msg("failed to restore notification schedule from stored settings")
		}
	}
}

// Close releases application resources.
func (a *App) Close() error {
	if a.alarms != nil {
		a.alarms.Stop()
	}
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}

// deliver runs when an armed alarm fires: it generates a fresh report,
// formats the notification body and records it in history. Quiet hours
// suppress the notification without suppressing the schedule.
func (a *App) deliver(req interfaces.AlarmRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	settings := a.Settings.Load(ctx)

	if notify.IsQuietHours(settings, time.Now().In(a.location(settings))) {
		a.Logger.Info().Str("type", req.Data["type"]).Msg("notification suppressed by quiet hours")
		return
	}

	period := models.PeriodDaily
	typ := models.TypeDailyReport
	if req.Data["type"] == string(models.TypeWeeklyReport) {
		period = models.PeriodWeekly
		typ = models.TypeWeeklyReport
	}

	positions := a.Positions.List(ctx)
	generated := a.Generator.Generate(ctx, positions, period, settings.IncludePositions)
	body := report.FormatBody(generated)

	if !a.Generator.SaveToHistory(ctx, generated, typ) {
		a.Logger.Warn().Str("report_id", generated.ID).Msg("failed to record notification in history")
	}

	a.Logger.Info().
		Str("report_id", generated.ID).
		Str("type", string(typ)).
		Str("title", req.Title).
		Str("body", body).
		Msg("notification delivered")
}

func (a *App) location(settings models.NotificationSettings) *time.Location {
	if settings.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
