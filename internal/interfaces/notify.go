package interfaces

import "context"

// AlarmKind selects the trigger shape of a scheduled alarm.
type AlarmKind string

const (
	AlarmOnce   AlarmKind = "once"   // fires once after Seconds
	AlarmDaily  AlarmKind = "daily"  // repeats daily at Hour:Minute
	AlarmWeekly AlarmKind = "weekly" // repeats weekly at Weekday Hour:Minute
)

// AlarmTrigger describes when an alarm fires. Weekday is encoded 1-7
// with 1=Sunday, matching the platform alarm convention.
type AlarmTrigger struct {
	Kind    AlarmKind `json:"kind"`
	Seconds int       `json:"seconds,omitempty"`
	Hour    int       `json:"hour,omitempty"`
	Minute  int       `json:"minute,omitempty"`
	Weekday int       `json:"weekday,omitempty"`
}

// AlarmRequest is the payload handed to the notification capability.
type AlarmRequest struct {
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Data    map[string]string `json:"data,omitempty"`
	Trigger AlarmTrigger      `json:"trigger"`
}

// NotificationCapability is the host-side local notification primitive.
// Implementations arm repeating alarms and deliver them; the core only
// computes triggers and bookkeeps what it asked for.
type NotificationCapability interface {
	PermissionStatus(ctx context.Context) (bool, error)
	RequestPermission(ctx context.Context) (bool, error)
	Schedule(ctx context.Context, req AlarmRequest) (string, error)
	Cancel(ctx context.Context, id string) error
	CancelAll(ctx context.Context) error
	CreateChannel(ctx context.Context, id, name string) error
}
