package models

import (
	"encoding/json"
	"strings"
)

// Webinar categories offered by the catalog.
const (
	CategoryAIAutomation = "AI Automation"
	CategoryAIAgents     = "AI Agents"
	CategoryMarketingAI  = "Marketing AI"
	CategoryBusinessAI   = "Business AI"
	CategoryWorkshops    = "Workshops"
	CategoryOther        = "Other"
)

// Webinar levels.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// DefaultCurrency applies when a webinar has a price but no currency.
const DefaultCurrency = "INR"

// Categories lists the catalog categories in display order.
var Categories = []string{CategoryAIAutomation, CategoryAIAgents, CategoryMarketingAI, CategoryBusinessAI, CategoryWorkshops, CategoryOther}

// Levels lists the webinar levels in display order.
var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Webinar is a webinar record as served by the platform backend.
// Date, Time and Duration are human-readable strings ("Dec 28, 2025", "3:30 PM IST", "60 mins").
type Webinar struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Speaker         string   `json:"speaker"`
	Category        string   `json:"category"`
	Level           string   `json:"level"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Duration        string   `json:"duration"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Currency        string   `json:"currency,omitempty"`
	RegisteredCount *int     `json:"registeredCount,omitempty"`
	MaxCapacity     *int     `json:"maxCapacity,omitempty"`

	// Detail page fields.
	HeroImage    string        `json:"heroImage,omitempty"`
	HeroContext  string        `json:"heroContext,omitempty"`
	HeroSubtitle string        `json:"heroSubtitle,omitempty"`
	Platform     string        `json:"platform,omitempty"`
	MentorName   string        `json:"mentorName,omitempty"`
	RoadmapItems []RoadmapItem `json:"roadmapItems,omitempty"`
}

// IsPaid reports whether registering requires a payment.
func (w Webinar) IsPaid() bool {
	return w.Price != nil && *w.Price > 0
}

// PriceCurrency returns the webinar currency, defaulting to INR.
func (w Webinar) PriceCurrency() string {
	if c := strings.TrimSpace(w.Currency); c != "" {
		return c
	}
	return DefaultCurrency
}

// RoadmapItem is one day of a multi-day webinar programme.
type RoadmapItem struct {
	Day         int          `json:"day"`
	Title       string       `json:"title,omitempty"`
	Subtitle    string       `json:"subtitle,omitempty"`
	Highlight   string       `json:"highlight,omitempty"`
	Description RoadmapLines `json:"description"`
}

// RoadmapLines decodes either a JSON array of strings or a string holding such an array.
// Anything else decodes to an empty list.
type RoadmapLines []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *RoadmapLines) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		*l = lines
		return nil
	}
	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		if err := json.Unmarshal([]byte(encoded), &lines); err == nil {
			*l = lines
			return nil
		}
	}
	*l = RoadmapLines{}
	return nil
}
