// Package listing derives the displayable webinar list: status classification from the
// human-readable date/time strings, canonical ordering, filtering and the featured entry.
// Everything here is a pure function of its arguments; callers supply "now".
package listing

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/itlightning/dateparse"
)

// DefaultDurationMinutes is used when a duration string carries no number.
const DefaultDurationMinutes = 60

var (
	zoneToken = regexp.MustCompile(`^[A-Z]{2,4}$`)
	digitRun  = regexp.MustCompile(`[0-9]+`)
)

var instantLayouts = []string{
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006 3:04PM",
	"January 2, 2006 3:04 PM",
	"January 2, 2006 3:04PM",
	"Jan 2, 2006 15:04",
	"January 2, 2006 15:04",
	"2006-01-02 3:04 PM",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseInstant combines a date ("Dec 28, 2025") and a clock time ("3:30 PM IST") into an
// instant in now's location. A trailing timezone abbreviation is ignored. Input that cannot
// be parsed resolves to now.
func ParseInstant(date, clock string, now time.Time) time.Time {
	s := strings.TrimSpace(strings.TrimSpace(date) + " " + stripZone(clock))
	if s == "" {
		return now
	}
	loc := now.Location()
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil || t.IsZero() {
		return now
	}
	return t
}

// stripZone drops a trailing 2-4 letter uppercase token such as IST or UTC, even when it is
// the whole clock. AM and PM are part of the clock and are kept.
func stripZone(clock string) string {
	fields := strings.Fields(clock)
	if len(fields) == 0 {
		return ""
	}
	last := fields[len(fields)-1]
	if zoneToken.MatchString(last) && last != "AM" && last != "PM" {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

// DurationMinutes returns the first integer found in a duration string ("90 minutes" is 90),
// or 60 when there is none. Numbers too large for a duration saturate at MaxDurationMinutes.
func DurationMinutes(duration string) int {
	m := digitRun.FindString(duration)
	if m == "" {
		return DefaultDurationMinutes
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil || n > MaxDurationMinutes {
		return int(MaxDurationMinutes)
	}
	return int(n)
}
