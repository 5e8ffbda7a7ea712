// Package intent decides what a registration click should do for a user, given their session
// and existing registrations.
package intent

import (
	"github.com/aura-webinar/portal/internal/models"
)

// Action is the UI action implied by a registration click.
type Action string

const (
	ActionRequireLogin     Action = "require_login"
	ActionOpenRegistration Action = "open_registration_form"
	ActionShowStatus       Action = "show_status"
)

// Kind classifies an existing registration shown to the user.
type Kind string

const (
	KindConfirmed Kind = "confirmed"
	KindPending   Kind = "pending"
	KindOther     Kind = "other"
)

// Intent is the resolved action. Kind, Title and Detail are set for ActionShowStatus;
// Form is set for ActionOpenRegistration.
type Intent struct {
	Action Action `json:"action"`
	Kind   Kind   `json:"kind,omitempty"`
	Title  string `json:"title,omitempty"`
	Detail string `json:"detail,omitempty"`
	Form   *Form  `json:"form,omitempty"`
}

// Form describes the registration form to open.
type Form struct {
	WebinarID int64   `json:"webinarId"`
	Title     string  `json:"title"`
	Paid      bool    `json:"paid"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
}

// FormFor builds the registration form for a webinar. Paid webinars go through checkout.
func FormFor(w models.Webinar) *Form {
	f := &Form{WebinarID: w.ID, Title: w.Title, Currency: w.PriceCurrency()}
	if w.IsPaid() {
		f.Paid = true
		f.Price = *w.Price
	}
	return f
}

// Resolve maps a registration click to an Intent. Unknown registration statuses are shown
// verbatim.
func Resolve(w models.Webinar, registrations []models.Registration, authenticated bool) Intent {
	if !authenticated {
		return Intent{Action: ActionRequireLogin}
	}
	reg, ok := find(registrations, w.ID)
	if !ok {
		return Intent{Action: ActionOpenRegistration, Form: FormFor(w)}
	}
	switch reg.Status {
	case models.RegistrationStatusAccepted:
		return Intent{
			Action: ActionShowStatus,
			Kind:   KindConfirmed,
			Title:  "Already Registered",
			Detail: "You are already confirmed for this webinar! We look forward to seeing you there.",
		}
	case models.RegistrationStatusPending:
		return Intent{
			Action: ActionShowStatus,
			Kind:   KindPending,
			Title:  "Registration Pending",
			Detail: "Your registration has been submitted and is awaiting admin approval. You will be notified once approved.",
		}
	default:
		return Intent{
			Action: ActionShowStatus,
			Kind:   KindOther,
			Title:  "Registration Status",
			Detail: "You have already registered. Current status: " + reg.Status,
		}
	}
}

func find(registrations []models.Registration, webinarID int64) (models.Registration, bool) {
	for _, r := range registrations {
		if r.WebinarID == webinarID {
			return r, true
		}
	}
	return models.Registration{}, false
}
