package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/aura-webinar/portal/internal/models"
)

// Call-to-action labels shown on webinar cards.
const (
	ActionRegister = "Register"
	ActionWatch    = "Watch Now"
)

// Filter is the listing filter state. Empty fields do not filter.
type Filter struct {
	Search   string `form:"search" json:"search,omitempty"`
	Category string `form:"category" json:"category,omitempty"`
	Type     Status `form:"type" json:"type,omitempty" binding:"omitempty,oneof=Upcoming Live Recorded"`
	Level    string `form:"level" json:"level,omitempty"`
}

// Clear resets every filter field.
func (f *Filter) Clear() {
	*f = Filter{}
}

// IsZero reports whether no filter is set.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether an annotated webinar passes the filter.
func (f Filter) Match(w AnnotatedWebinar) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(w.Title), term) && !strings.Contains(strings.ToLower(w.Description), term) {
			return false
		}
	}
	if f.Category != "" && w.Category != f.Category {
		return false
	}
	if f.Type != "" && w.Status != f.Type {
		return false
	}
	if f.Level != "" && w.Level != f.Level {
		return false
	}
	return true
}

// AnnotatedWebinar is a webinar with its derived status and resolved schedule.
type AnnotatedWebinar struct {
	models.Webinar
	Status           Status    `json:"status"`
	StartsAt         time.Time `json:"startsAt"`
	EndsAt           time.Time `json:"endsAt"`
	Action           string    `json:"action"`
	OccupancyPercent *float64  `json:"occupancyPercent,omitempty"`
}

// Listing is the result of Build.
type Listing struct {
	Ordered  []AnnotatedWebinar `json:"webinars"`
	Featured *AnnotatedWebinar  `json:"featured"`
	Total    int                `json:"total"`
}

// Annotate derives the schedule and status of a single webinar at now.
func Annotate(w models.Webinar, now time.Time) AnnotatedWebinar {
	start := ParseInstant(w.Date, w.Time, now)
	minutes := DurationMinutes(w.Duration)
	a := AnnotatedWebinar{
		Webinar:  w,
		Status:   Classify(start, minutes, now),
		StartsAt: start,
		EndsAt:   start.Add(span(minutes)),
		Action:   ActionRegister,
	}
	if a.Status == StatusRecorded {
		a.Action = ActionWatch
	}
	if w.RegisteredCount != nil && w.MaxCapacity != nil && *w.RegisteredCount > 0 && *w.MaxCapacity > 0 {
		pct := float64(*w.RegisteredCount) / float64(*w.MaxCapacity) * 100
		a.OccupancyPercent = &pct
	}
	return a
}

// Canonical annotates records and orders them: live and upcoming webinars first, soonest
// start first, then recorded webinars, most recent start first. Equal starts keep input order.
func Canonical(records []models.Webinar, now time.Time) []AnnotatedWebinar {
	var current, recorded []AnnotatedWebinar
	for _, r := range records {
		a := Annotate(r, now)
		if a.Status == StatusRecorded {
			recorded = append(recorded, a)
		} else {
			current = append(current, a)
		}
	}
	sort.SliceStable(current, func(i, j int) bool { return current[i].StartsAt.Before(current[j].StartsAt) })
	sort.SliceStable(recorded, func(i, j int) bool { return recorded[i].StartsAt.After(recorded[j].StartsAt) })

	out := make([]AnnotatedWebinar, 0, len(records))
	out = append(out, current...)
	return append(out, recorded...)
}

// Build produces the filtered listing and the featured webinar. The featured entry is taken
// from the unfiltered ordering, so it does not change with the filter.
func Build(records []models.Webinar, filter Filter, now time.Time) Listing {
	canonical := Canonical(records, now)

	ordered := make([]AnnotatedWebinar, 0, len(canonical))
	for _, a := range canonical {
		if filter.Match(a) {
			ordered = append(ordered, a)
		}
	}
	return Listing{
		Ordered:  ordered,
		Featured: featured(canonical),
		Total:    len(ordered),
	}
}

func featured(canonical []AnnotatedWebinar) *AnnotatedWebinar {
	if len(canonical) == 0 {
		return nil
	}
	for i := range canonical {
		if canonical[i].Status != StatusRecorded {
			f := canonical[i]
			return &f
		}
	}
	f := canonical[0]
	return &f
}
