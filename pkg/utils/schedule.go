package utils

import (
	"fmt"
	"time"
)

const (
	SessionDateLayout = "2006-01-02"
	SessionTimeLayout = "15:04"

	// Session length rules: at least half an hour, in quarter-hour steps.
	MinSessionMinutes  = 30
	SessionStepMinutes = 15
)

// ParseSessionDate parses a YYYY-MM-DD date as submitted by the booking form.
func ParseSessionDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(SessionDateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("session date must be in YYYY-MM-DD format")
	}
	return date, nil
}

// ParseSessionTime parses an HH:MM clock value into minutes since midnight.
func ParseSessionTime(value string) (int, error) {
	clock, err := time.Parse(SessionTimeLayout, value)
	if err != nil {
		return 0, fmt.Errorf("session time must be in HH:MM format")
	}
	return clock.Hour()*60 + clock.Minute(), nil
}

// SessionStart combines a date and clock value into a single local timestamp.
func SessionStart(date, clock string) (time.Time, error) {
	day, err := ParseSessionDate(date)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := ParseSessionTime(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// IsPastSession reports whether the requested slot starts before now.
func IsPastSession(date, clock string, now time.Time) (bool, error) {
	start, err := SessionStart(date, clock)
	if err != nil {
		return false, err
	}
	return start.Before(now), nil
}

// ValidSessionDuration checks the minimum length and step rules.
func ValidSessionDuration(minutes int) bool {
	return minutes >= MinSessionMinutes && minutes%SessionStepMinutes == 0
}

// SessionsOverlap reports whether two same-day sessions share any time.
// Intervals are half-open, so back-to-back sessions do not collide.
func SessionsOverlap(timeA string, durationA int, timeB string, durationB int) (bool, error) {
	startA, err := ParseSessionTime(timeA)
	if err != nil {
		return false, err
	}
	startB, err := ParseSessionTime(timeB)
	if err != nil {
		return false, err
	}
	endA := startA + durationA
	endB := startB + durationB
	return startA < endB && startB < endA, nil
}
