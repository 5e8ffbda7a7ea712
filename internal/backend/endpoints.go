package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/models"
)

// webinarList accepts both {"webinars": [...]} and a bare array.
type webinarList []models.Webinar

func (l *webinarList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []models.Webinar
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*l = list
		return nil
	}
	var wrapped struct {
		Webinars []models.Webinar `json:"webinars"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Webinars
	return nil
}

// ListWebinars handles GET /webinars.
func (c *Client) ListWebinars(ctx context.Context) ([]models.Webinar, error) {
	var list webinarList
	if err := c.do(ctx, http.MethodGet, "/webinars", auth.Principal{}, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		return []models.Webinar{}, nil
	}
	return list, nil
}

// GetWebinar handles GET /webinars/{id}.
func (c *Client) GetWebinar(ctx context.Context, id int64) (*models.Webinar, error) {
	var out struct {
		Webinar *models.Webinar `json:"webinar"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/webinars/%d", id), auth.Principal{}, nil, &out); err != nil {
		return nil, err
	}
	if out.Webinar == nil {
		return nil, fmt.Errorf("webinar %d: empty response", id)
	}
	return out.Webinar, nil
}

// ListRegistrations handles GET /user/registrations.
func (c *Client) ListRegistrations(ctx context.Context, p auth.Principal) ([]models.Registration, error) {
	var out struct {
		Registrations []models.Registration `json:"registrations"`
	}
	if err := c.do(ctx, http.MethodGet, "/user/registrations", p, nil, &out); err != nil {
		return nil, err
	}
	if out.Registrations == nil {
		return []models.Registration{}, nil
	}
	return out.Registrations, nil
}

// Register handles POST /user/registrations/{id} for a free webinar. The backend may omit
// the created record, in which case a pending registration is assumed.
func (c *Client) Register(ctx context.Context, p auth.Principal, webinarID int64) (*models.Registration, error) {
	var out struct {
		Registration *models.Registration `json:"registration"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/user/registrations/%d", webinarID), p, nil, &out); err != nil {
		return nil, err
	}
	if out.Registration == nil {
		return &models.Registration{WebinarID: webinarID, Status: models.RegistrationStatusPending}, nil
	}
	if out.Registration.WebinarID == 0 {
		out.Registration.WebinarID = webinarID
	}
	return out.Registration, nil
}

// Login handles POST /auth/login.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	var out models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", auth.Principal{}, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup handles POST /auth/signup.
func (c *Client) Signup(ctx context.Context, s models.Signup) (*models.Session, error) {
	var out models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/signup", auth.Principal{}, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile handles GET /user.
func (c *Client) GetProfile(ctx context.Context, p auth.Principal) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/user", p, nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, fmt.Errorf("user: empty response")
	}
	return out.User, nil
}

// UpdateProfile handles PUT /user and returns the refreshed profile.
func (c *Client) UpdateProfile(ctx context.Context, p auth.Principal, upd models.ProfileUpdate) (*models.User, error) {
	if err := c.do(ctx, http.MethodPut, "/user", p, upd, nil); err != nil {
		return nil, err
	}
	return c.GetProfile(ctx, p)
}

// DeleteAccount handles DELETE /user.
func (c *Client) DeleteAccount(ctx context.Context, p auth.Principal) error {
	return c.do(ctx, http.MethodDelete, "/user", p, nil, nil)
}

// CreatePaymentOrder handles POST /payments/create-order.
func (c *Client) CreatePaymentOrder(ctx context.Context, p auth.Principal, req models.OrderRequest) (*models.PaymentOrder, error) {
	var out models.PaymentOrder
	if err := c.do(ctx, http.MethodPost, "/payments/create-order", p, req, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("payment order: empty response")
	}
	return &out, nil
}

// VerifyPayment handles POST /payments/verify.
func (c *Client) VerifyPayment(ctx context.Context, p auth.Principal, v models.PaymentVerification) error {
	return c.do(ctx, http.MethodPost, "/payments/verify", p, v, nil)
}
