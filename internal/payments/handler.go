// Package payments runs checkout for webinars: free webinars register directly, paid ones
// go through a Razorpay order that is verified before the backend confirms it.
package payments

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/backend"
	"github.com/aura-webinar/portal/internal/catalog"
	"github.com/aura-webinar/portal/internal/intent"
	"github.com/aura-webinar/portal/internal/middleware"
	"github.com/aura-webinar/portal/internal/models"
	"github.com/aura-webinar/portal/internal/registrations"
	"github.com/aura-webinar/portal/pkg/response"
)

// Gateway creates and confirms payment orders. *backend.Client implements it.
type Gateway interface {
	CreatePaymentOrder(ctx context.Context, p auth.Principal, req models.OrderRequest) (*models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, p auth.Principal, v models.PaymentVerification) error
}

// Keys are the Razorpay credentials. KeyID is public; KeySecret never leaves the server.
type Keys struct {
	KeyID     string
	KeySecret string
}

// Checkout is the body returned by POST /api/webinars/:id/checkout.
type Checkout struct {
	Paid         bool                 `json:"paid"`
	Provider     string               `json:"provider,omitempty"`
	KeyID        string               `json:"keyId,omitempty"`
	Order        *models.PaymentOrder `json:"order,omitempty"`
	Form         *intent.Form         `json:"form"`
	Registration *models.Registration `json:"registration,omitempty"`
}

// Handler handles checkout and payment verification.
type Handler struct {
	store   catalog.Store
	regs    *registrations.Service
	gateway Gateway
	keys    Keys
	logger  *zap.Logger
}

// NewHandler creates a payments handler.
func NewHandler(store catalog.Store, regs *registrations.Service, gateway Gateway, keys Keys, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, regs: regs, gateway: gateway, keys: keys, logger: logger}
}

func (h *Handler) configured() bool {
	return h.gateway != nil && h.keys.KeyID != "" && h.keys.KeySecret != ""
}

// Checkout handles POST /api/webinars/:id/checkout.
func (h *Handler) Checkout(c *gin.Context) {
	webinarID, ok := registrations.ParseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	w, err := h.store.GetWebinar(ctx, webinarID)
	if err != nil {
		response.Error(c, backend.Status(err), backend.Message(err, "webinar not found"))
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	form := intent.FormFor(*w)

	if !w.IsPaid() {
		reg, err := h.regs.Register(ctx, p, webinarID)
		if err != nil {
			if !errors.Is(err, catalog.ErrAlreadyRegistered) {
				h.logger.Error("free checkout failed", zap.Error(err), zap.Int64("webinar_id", webinarID))
			}
			response.Error(c, backend.Status(err), backend.Message(err, "registration failed"))
			return
		}
		response.Created(c, Checkout{Form: form, Registration: reg})
		return
	}

	if !h.configured() {
		response.ServiceUnavailable(c, "payments are not available")
		return
	}
	order, err := h.gateway.CreatePaymentOrder(ctx, p, models.OrderRequest{WebinarID: webinarID, UserID: p.UserID})
	if err != nil {
		h.logger.Error("create payment order failed", zap.Error(err), zap.Int64("webinar_id", webinarID))
		response.Error(c, backend.Status(err), backend.Message(err, "failed to create payment order"))
		return
	}
	if order.Currency == "" {
		order.Currency = form.Currency
	}
	h.logger.Info("payment order created", zap.String("order_id", order.ID), zap.Int64("webinar_id", webinarID), zap.Int64("user_id", p.UserID))
	response.Created(c, Checkout{
		Paid:     true,
		Provider: models.PaymentProviderRazorpay,
		KeyID:    h.keys.KeyID,
		Order:    order,
		Form:     form,
	})
}

// Verify handles POST /api/payments/verify with the payload returned by the checkout widget.
func (h *Handler) Verify(c *gin.Context) {
	var req models.PaymentVerification
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !h.configured() {
		response.ServiceUnavailable(c, "payments are not available")
		return
	}
	if !VerifySignature(h.keys.KeySecret, req.OrderID, req.PaymentID, req.Signature) {
		h.logger.Warn("payment signature mismatch", zap.String("order_id", req.OrderID))
		response.BadRequest(c, "invalid payment signature")
		return
	}

	p, _ := middleware.PrincipalFrom(c)
	req.UserID = p.UserID
	ctx := c.Request.Context()
	if err := h.gateway.VerifyPayment(ctx, p, req); err != nil {
		h.logger.Error("payment verification failed", zap.Error(err), zap.String("order_id", req.OrderID))
		response.Error(c, backend.Status(err), backend.Message(err, "payment verification failed"))
		return
	}
	// The backend decides the resulting registration status; refetch on the next click.
	h.regs.Forget(ctx, p)
	h.logger.Info("payment verified", zap.String("order_id", req.OrderID), zap.Int64("webinar_id", req.WebinarID))
	response.OK(c, gin.H{"verified": true, "webinarId": req.WebinarID})
}
