package greeting

import "time"

// Time-of-day locale keys.
const (
	KeyMorning   = "time.morning"
	KeyAfternoon = "time.afternoon"
	KeyEvening   = "time.evening"
)

// Clock supplies the wall-clock time used to pick the time of day.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the local system time.
var SystemClock Clock = ClockFunc(time.Now)

// FixedHour returns a clock that always reports the given hour today.
func FixedHour(hour int) Clock {
	return ClockFunc(func() time.Time {
		y, m, d := time.Now().Date()
		return time.Date(y, m, d, hour, 0, 0, 0, time.Local)
	})
}

// TimeOfDayKey maps an hour in [0,24) to a time-of-day locale key:
// [0,12) morning, [12,17) afternoon, [17,24) evening.
func TimeOfDayKey(hour int) string {
	switch {
	case hour < 12:
		return KeyMorning
	case hour < 17:
		return KeyAfternoon
	default:
		return KeyEvening
	}
}
