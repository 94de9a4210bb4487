// Package goal computes the countdown to a planned exam date.
package goal

import "time"

// PrepDays is the preparation window the progress bar spans.
const PrepDays = 90

// Countdown is the time left until the end of the goal day.
type Countdown struct {
	Days     int
	Hours    int
	Minutes  int
	Progress int // 0–100 share of PrepDays already elapsed
	Passed   bool
}

// EndOfDay returns the last instant of date's calendar day in its location.
func EndOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, date.Location())
}

// Compute returns the countdown from now to the end of the goal date.
func Compute(date, now time.Time) Countdown {
	left := EndOfDay(date).Sub(now)
	if left <= 0 {
		return Countdown{Progress: 100, Passed: true}
	}

	days := int(left / (24 * time.Hour))
	c := Countdown{
		Days:    days,
		Hours:   int(left%(24*time.Hour)) / int(time.Hour),
		Minutes: int(left%time.Hour) / int(time.Minute),
	}

	elapsed := PrepDays - days
	switch {
	case elapsed <= 0:
		c.Progress = 0
	case elapsed >= PrepDays:
		c.Progress = 100
	default:
		c.Progress = elapsed * 100 / PrepDays
	}
	return c
}

// Urgency classifies how close the exam is, for colouring.
type Urgency int

const (
	UrgencyRelaxed Urgency = iota // more than a month
	UrgencySoon                   // within a month
	UrgencyImminent               // within a week
)

// UrgencyOf returns the urgency for c.
func UrgencyOf(c Countdown) Urgency {
	switch {
	case c.Passed || c.Days < 7:
		return UrgencyImminent
	case c.Days < 30:
		return UrgencySoon
	default:
		return UrgencyRelaxed
	}
}
