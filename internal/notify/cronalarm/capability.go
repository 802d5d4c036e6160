// Package cronalarm implements the notification capability with an
// in-process cron engine. It is the host-side stand-in for a platform
// alarm service: daily and weekly alarms become cron entries, one-shot
// alarms become timers, and firing alarms are handed to a delivery
// callback injected by the composition root.
package cronalarm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/interfaces"
)

// DeliverFunc receives a firing alarm.
type DeliverFunc func(req interfaces.AlarmRequest)

// Capability arms repeating alarms on a cron runner. Permission is
// always granted; the host process owns its own notifications.
type Capability struct {
	cron    *cron.Cron
	logger  *common.Logger
	deliver DeliverFunc

	mu      sync.Mutex
	entries map[string]cron.EntryID
	timers  map[string]*time.Timer
}

// New creates a capability delivering alarms in the given location.
// A nil deliver func drops alarms on the floor (logged).
func New(loc *time.Location, logger *common.Logger, deliver DeliverFunc) *Capability {
	if loc == nil {
		loc = time.Local
	}
	return &Capability{
		cron:    cron.New(cron.WithLocation(loc)),
		logger:  logger,
		deliver: deliver,
		entries: make(map[string]cron.EntryID),
		timers:  make(map[string]*time.Timer),
	}
}

// Start starts the cron runner.
func (c *Capability) Start() {
	c.cron.Start()
	c.logger.Info().Msg("alarm runner started")
}

// Stop stops the cron runner and waits for running deliveries.
func (c *Capability) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()

	c.mu.Lock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.mu.Unlock()

	c.logger.Info().Msg("alarm runner stopped")
}

// PermissionStatus always grants: the process schedules its own alarms.
func (c *Capability) PermissionStatus(_ context.Context) (bool, error) { return true, nil }

// RequestPermission always grants.
func (c *Capability) RequestPermission(_ context.Context) (bool, error) { return true, nil }

// Schedule arms an alarm and returns its identifier.
func (c *Capability) Schedule(_ context.Context, req interfaces.AlarmRequest) (string, error) {
	id := uuid.NewString()

	switch req.Trigger.Kind {
	case interfaces.AlarmOnce:
		seconds := req.Trigger.Seconds
		if seconds <= 0 {
			seconds = 1
		}
		c.mu.Lock()
		c.timers[id] = time.AfterFunc(time.Duration(seconds)*time.Second, func() {
			c.mu.Lock()
			delete(c.timers, id)
			c.mu.Unlock()
			c.fire(id, req)
		})
		c.mu.Unlock()

	case interfaces.AlarmDaily, interfaces.AlarmWeekly:
		spec, err := cronSpec(req.Trigger)
		if err != nil {
			return "", err
		}
		entryID, err := c.cron.AddFunc(spec, func() { c.fire(id, req) })
		if err != nil {
			return "", fmt.Errorf("failed to arm alarm: %w", err)
		}
		c.mu.Lock()
		c.entries[id] = entryID
		c.mu.Unlock()

	default:
		return "", fmt.Errorf("unknown trigger kind: %s", req.Trigger.Kind)
	}

	c.logger.Debug().
		Str("id", id).
		Str("kind", string(req.Trigger.Kind)).
		Msg("alarm armed")
	return id, nil
}

// Cancel disarms one alarm. Unknown ids are not an error.
func (c *Capability) Cancel(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entryID, ok := c.entries[id]; ok {
		c.cron.Remove(entryID)
		delete(c.entries, id)
	}
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	return nil
}

// CancelAll disarms every alarm.
func (c *Capability) CancelAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, entryID := range c.entries {
		c.cron.Remove(entryID)
		delete(c.entries, id)
	}
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	return nil
}

// CreateChannel is a no-op; channel grouping has no equivalent here.
func (c *Capability) CreateChannel(_ context.Context, id, name string) error {
	c.logger.Debug().Str("channel", id).Str("name", name).Msg("channel creation ignored")
	return nil
}

// Armed returns the number of currently armed alarms.
func (c *Capability) Armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries) + len(c.timers)
}

func (c *Capability) fire(id string, req interfaces.AlarmRequest) {
	if c.deliver == nil {
		c.logger.Warn().Str("id", id).Msg("alarm fired with no delivery callback")
		return
	}
	c.logger.Debug().Str("id", id).Str("title", req.Title).Msg("alarm fired")
	c.deliver(req)
}

// cronSpec translates a trigger to a 5-field cron expression. Weekly
// triggers carry the 1-7/1=Sunday platform encoding; cron wants 0-6.
func cronSpec(t interfaces.AlarmTrigger) (string, error) {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return "", fmt.Errorf("invalid alarm time %02d:%02d", t.Hour, t.Minute)
	}
	switch t.Kind {
	case interfaces.AlarmDaily:
		return fmt.Sprintf("%d %d * * *", t.Minute, t.Hour), nil
	case interfaces.AlarmWeekly:
		if t.Weekday < 1 || t.Weekday > 7 {
			return "", fmt.Errorf("invalid alarm weekday %d", t.Weekday)
		}
		return fmt.Sprintf("%d %d * * %d", t.Minute, t.Hour, t.Weekday-1), nil
	default:
		return "", fmt.Errorf("trigger kind %s has no cron form", t.Kind)
	}
}
