package gtfs

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a feed time expressed as seconds since the start of the
// service day. Values at or past 24:00:00 mark service-day continuation
// past midnight.
type TimeOfDay int

// ParseTimeOfDay parses an HH:MM:SS feed time. Hours up to 47 are accepted
// for trips that run past midnight.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("time %q: want HH:MM:SS", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 47 {
		return 0, fmt.Errorf("time %q: bad hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q: bad minute", s)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("time %q: bad second", s)
	}
	return TimeOfDay(h*3600 + m*60 + sec), nil
}

// NowTimeOfDay converts a wall-clock instant to its time of day.
func NowTimeOfDay(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// SecondsOfDay normalizes the value into a single calendar day.
func (t TimeOfDay) SecondsOfDay() int {
	return int(t) % secondsPerDay
}

// String renders the raw feed time, service-day hours preserved.
func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

// Clock renders HH:MM within a calendar day.
func (t TimeOfDay) Clock() string {
	s := t.SecondsOfDay()
	return fmt.Sprintf("%02d:%02d", s/3600, (s/60)%60)
}

// DurationMinutes is the minutes from departure to arrival. An arrival
// numerically earlier than its departure means the trip crossed midnight.
func DurationMinutes(dep, arr TimeOfDay) int {
	d := arr.SecondsOfDay() - dep.SecondsOfDay()
	if d < 0 {
		d += secondsPerDay
	}
	return d / 60
}
