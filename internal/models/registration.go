package models

import (
	"time"
)

// Registration statuses known to the portal. The backend may send others.
const (
	RegistrationStatusPending  = "pending"
	RegistrationStatusAccepted = "accepted"
)

// Registration is a user's registration for a webinar, as returned by GET /user/registrations.
// The webinar summary fields are filled by the backend for the registrations pages.
type Registration struct {
	ID           int64      `json:"registrationId,omitempty"`
	WebinarID    int64      `json:"webinarId"`
	Status       string     `json:"status"`
	RegisteredAt *time.Time `json:"registeredAt,omitempty"`

	Title      string `json:"title,omitempty"`
	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Speaker    string `json:"speaker,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	MeetingID  string `json:"meetingId,omitempty"`
	Passcode   string `json:"passcode,omitempty"`
	InviteLink string `json:"inviteLink,omitempty"`
}

// FilterRegistrationsByStatus returns the registrations with the given status.
// An empty status returns the input unchanged.
func FilterRegistrationsByStatus(regs []Registration, status string) []Registration {
	if status == "" {
		return regs
	}
	out := make([]Registration, 0, len(regs))
	for _, r := range regs {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}
