package info

import "time"

// DeltaTimestamps returns the unix timestamps one day, two days and one week before now,
// truncated to the minute.
func DeltaTimestamps(now time.Time) (t24, t48, tWeek int64) {
	now = now.UTC()
	t24 = now.AddDate(0, 0, -1).Truncate(time.Minute).Unix()
	t48 = now.AddDate(0, 0, -2).Truncate(time.Minute).Unix()
	tWeek = now.AddDate(0, 0, -7).Truncate(time.Minute).Unix()
	return t24, t48, tWeek
}
