package models

import "time"

// ScheduledNotification is local metadata about an alarm this core asked
// the notification capability to arm. It mirrors, but is not, the
// OS-level alarm: ID is the capability-issued identifier.
type ScheduledNotification struct {
	ID           string           `json:"id"`
	Type         NotificationType `json:"type"`
	ScheduledFor time.Time        `json:"scheduled_for"` // when the schedule call was made
	NextTrigger  time.Time        `json:"next_trigger"`  // computed next fire time
}
