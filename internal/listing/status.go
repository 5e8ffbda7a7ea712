package listing

import (
	"math"
	"time"
)

// Status is a webinar's derived state at a given instant.
type Status string

const (
	StatusUpcoming Status = "Upcoming"
	StatusLive     Status = "Live"
	StatusRecorded Status = "Recorded"
)

// Statuses lists the statuses in lifecycle order.
var Statuses = []Status{StatusUpcoming, StatusLive, StatusRecorded}

// Rank orders statuses along the lifecycle: Upcoming < Live < Recorded.
func (s Status) Rank() int {
	switch s {
	case StatusUpcoming:
		return 0
	case StatusLive:
		return 1
	case StatusRecorded:
		return 2
	default:
		return -1
	}
}

// Valid reports whether s is one of the three statuses.
func (s Status) Valid() bool {
	return s.Rank() >= 0
}

// MaxDurationMinutes is the longest duration representable as a time.Duration.
const MaxDurationMinutes = math.MaxInt64 / int64(time.Minute)

// span converts minutes to a duration, saturating at MaxDurationMinutes.
func span(minutes int) time.Duration {
	m := int64(minutes)
	if m > MaxDurationMinutes {
		m = MaxDurationMinutes
	}
	if m < 0 {
		m = 0
	}
	return time.Duration(m) * time.Minute
}

// Classify derives the status of a webinar that starts at start and lasts durationMinutes.
// The interval [start, end] is Live at both ends.
func Classify(start time.Time, durationMinutes int, now time.Time) Status {
	end := start.Add(span(durationMinutes))
	switch {
	case now.After(end):
		return StatusRecorded
	case !now.Before(start):
		return StatusLive
	default:
		return StatusUpcoming
	}
}
