package notify

import "time"

// NextDailyTrigger returns the next occurrence of hour:minute relative
// to now: today if the target time is still ahead, otherwise tomorrow.
// Seconds are always zero.
func NextDailyTrigger(now time.Time, hour, minute int) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if target.After(now) {
		return target
	}
	return target.AddDate(0, 0, 1)
}

// NextWeeklyTrigger returns the next strictly-future occurrence of the
// target weekday at hour:minute. When the target is today but the time
// has already passed, the trigger lands a full week out.
func NextWeeklyTrigger(now time.Time, day time.Weekday, hour, minute int) time.Time {
	delta := int(day) - int(now.Weekday())
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()).AddDate(0, 0, delta)
	if delta < 0 || (delta == 0 && !target.After(now)) {
		target = target.AddDate(0, 0, 7)
	}
	return target
}
