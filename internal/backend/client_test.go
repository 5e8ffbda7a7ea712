package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/catalog"
	"github.com/aura-webinar/portal/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", WithRateLimit(1000))
}

func TestListWebinarsAcceptsBothShapes(t *testing.T) {
	bodies := map[string]string{
		"wrapped": `{"webinars":[{"id":1,"title":"A","date":"Jan 1, 2030","time":"10:00 AM","duration":"60 mins"},{"id":2,"title":"B"}]}`,
		"array":   `[{"id":1,"title":"A","date":"Jan 1, 2030","time":"10:00 AM","duration":"60 mins"},{"id":2,"title":"B"}]`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/webinars", r.URL.Path)
				assert.Empty(t, r.Header.Get("Authorization"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			})
			list, err := c.ListWebinars(context.Background())
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, int64(1), list[0].ID)
			assert.Equal(t, "Jan 1, 2030", list[0].Date)
		})
	}
}

func TestListWebinarsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	list, err := c.ListWebinars(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestGetWebinarNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/webinars/99", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"webinar not found"}`))
	})
	_, err := c.GetWebinar(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
	assert.Equal(t, "webinar not found", Message(err, "fallback"))
}

func TestListRegistrationsSendsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/registrations", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"registrations":[{"webinarId":5,"status":"accepted","registrationId":12}]}`))
	})
	regs, err := c.ListRegistrations(context.Background(), auth.Principal{UserID: 1, Token: "tok"})
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, models.Registration{ID: 12, WebinarID: 5, Status: "accepted"}, regs[0])
}

func TestListRegistrationsUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"session expired"}`))
	})
	_, err := c.ListRegistrations(context.Background(), auth.Principal{UserID: 1, Token: "tok"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "session expired", Message(err, ""))
}

func TestRegisterDefaultsToPending(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/registrations/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"registered"}`))
	})
	reg, err := c.Register(context.Background(), auth.Principal{UserID: 1, Token: "tok"}, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), reg.WebinarID)
	assert.Equal(t, models.RegistrationStatusPending, reg.Status)
}

func TestRegisterConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	_, err := c.Register(context.Background(), auth.Principal{UserID: 1, Token: "tok"}, 7)
	assert.ErrorIs(t, err, catalog.ErrAlreadyRegistered)
}

func TestPaymentOrderRoundTrip(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/payments/create-order":
			var req models.OrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, models.OrderRequest{WebinarID: 3, UserID: 9}, req)
			_, _ = w.Write([]byte(`{"id":"order_1","amount":49900,"currency":"INR"}`))
		case "/api/payments/verify":
			var v models.PaymentVerification
			require.NoError(t, json.NewDecoder(r.Body).Decode(&v))
			assert.Equal(t, "order_1", v.OrderID)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	p := auth.Principal{UserID: 9, Token: "tok"}

	order, err := c.CreatePaymentOrder(context.Background(), p, models.OrderRequest{WebinarID: 3, UserID: 9})
	require.NoError(t, err)
	assert.Equal(t, int64(49900), order.Amount)

	err = c.VerifyPayment(context.Background(), p, models.PaymentVerification{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig", WebinarID: 3})
	assert.NoError(t, err)
}

func TestUpdateProfileRefetches(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method)
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"user":{"id":9,"name":"New Name","email":"a@example.com"}}`))
		}
	})
	name := "New Name"
	u, err := c.UpdateProfile(context.Background(), auth.Principal{UserID: 9, Token: "tok"}, models.ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", u.Name)
	assert.Equal(t, []string{http.MethodPut, http.MethodGet}, calls)
}

func TestServerErrorIsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.ListWebinars(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "fallback", Message(err, "fallback"))
}
