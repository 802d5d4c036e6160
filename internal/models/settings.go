package models

import "time"

// Frequency controls how often a portfolio report notification fires.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyOff    Frequency = "off"
)

// Weekday names one of the seven weekdays in stored settings.
type Weekday string

const (
	WeekdaySunday    Weekday = "sunday"
	WeekdayMonday    Weekday = "monday"
	WeekdayTuesday   Weekday = "tuesday"
	WeekdayWednesday Weekday = "wednesday"
	WeekdayThursday  Weekday = "thursday"
	WeekdayFriday    Weekday = "friday"
	WeekdaySaturday  Weekday = "saturday"
)

var weekdayIndex = map[Weekday]time.Weekday{
	WeekdaySunday:    time.Sunday,
	WeekdayMonday:    time.Monday,
	WeekdayTuesday:   time.Tuesday,
	WeekdayWednesday: time.Wednesday,
	WeekdayThursday:  time.Thursday,
	WeekdayFriday:    time.Friday,
	WeekdaySaturday:  time.Saturday,
}

// TimeWeekday resolves the named weekday to a time.Weekday.
func (w Weekday) TimeWeekday() (time.Weekday, bool) {
	d, ok := weekdayIndex[w]
	return d, ok
}

// ClockTime is a wall-clock time of day.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// MinuteOfDay returns minutes elapsed since midnight.
func (c ClockTime) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

// Valid reports whether the clock time is within 00:00-23:59.
func (c ClockTime) Valid() bool {
	return c.Hour >= 0 && c.Hour <= 23 && c.Minute >= 0 && c.Minute <= 59
}

// QuietHours is a time-of-day window during which notifications are
// suppressed. Start is inclusive, End exclusive; a window with
// Start > End spans midnight, and Start == End means no window at all.
type QuietHours struct {
	Enabled bool      `json:"enabled"`
	Start   ClockTime `json:"start"`
	End     ClockTime `json:"end"`
}

// NotificationSettings are the singleton per-device user preferences.
// WeeklyDay is required iff Frequency is weekly.
type NotificationSettings struct {
	Enabled          bool       `json:"enabled"`
	Frequency        Frequency  `json:"frequency"`
	Time             ClockTime  `json:"time"`
	WeeklyDay        *Weekday   `json:"weekly_day,omitempty"`
	IncludePositions bool       `json:"include_positions"`
	QuietHours       QuietHours `json:"quiet_hours"`
	Timezone         string     `json:"timezone"`
}

// DefaultNotificationSettings returns the field-by-field defaults merged
// over absent or partially-specified stored settings.
func DefaultNotificationSettings() NotificationSettings {
	friday := WeekdayFriday
	return NotificationSettings{
		Enabled:          false,
		Frequency:        FrequencyDaily,
		Time:             ClockTime{Hour: 17, Minute: 30},
		WeeklyDay:        &friday,
		IncludePositions: true,
		QuietHours: QuietHours{
			Enabled: false,
			Start:   ClockTime{Hour: 22, Minute: 0},
			End:     ClockTime{Hour: 8, Minute: 0},
		},
		Timezone: "Europe/Warsaw",
	}
}
