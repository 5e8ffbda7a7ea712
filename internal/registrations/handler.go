package registrations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/backend"
	"github.com/aura-webinar/portal/internal/catalog"
	"github.com/aura-webinar/portal/internal/intent"
	"github.com/aura-webinar/portal/internal/middleware"
	"github.com/aura-webinar/portal/internal/models"
	"github.com/aura-webinar/portal/pkg/response"
)

// ListQuery is the query for GET /api/user/registrations.
type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending accepted"`
}

// Handler handles registration HTTP endpoints.
type Handler struct {
	svc    *Service
	store  catalog.Store
	logger *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(svc *Service, store catalog.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, store: store, logger: logger}
}

// List handles GET /api/user/registrations. Always fetches fresh and refreshes the snapshot.
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid status")
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	regs, err := h.svc.Fresh(c.Request.Context(), p)
	if err != nil {
		h.logger.Error("list registrations failed", zap.Error(err), zap.Int64("user_id", p.UserID))
		response.Error(c, backend.Status(err), backend.Message(err, "failed to load registrations"))
		return
	}
	response.OK(c, gin.H{"registrations": models.FilterRegistrationsByStatus(regs, q.Status)})
}

// Register handles POST /api/user/registrations/:id for free webinars.
func (h *Handler) Register(c *gin.Context) {
	webinarID, ok := ParseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	w, err := h.store.GetWebinar(ctx, webinarID)
	if err != nil {
		response.Error(c, backend.Status(err), backend.Message(err, "webinar not found"))
		return
	}
	if w.IsPaid() {
		response.Error(c, http.StatusPaymentRequired, "this webinar requires payment")
		return
	}

	p, _ := middleware.PrincipalFrom(c)
	reg, err := h.svc.Register(ctx, p, webinarID)
	if err != nil {
		if !errors.Is(err, catalog.ErrAlreadyRegistered) {
			h.logger.Error("register failed", zap.Error(err), zap.Int64("webinar_id", webinarID))
		}
		response.Error(c, backend.Status(err), backend.Message(err, "registration failed"))
		return
	}
	h.logger.Info("registration submitted", zap.Int64("webinar_id", webinarID), zap.Int64("user_id", p.UserID))
	response.Created(c, gin.H{"registration": reg})
}

// Intent handles GET /api/webinars/:id/intent: what a click on Register should do.
func (h *Handler) Intent(c *gin.Context) {
	webinarID, ok := ParseID(c)
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
	if !p.Authenticated() {
		response.OK(c, intent.Resolve(*w, nil, false))
		return
	}
	regs, err := h.svc.Snapshot(ctx, p)
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		p = auth.Principal{}
	case err != nil:
		h.logger.Warn("registrations unavailable for intent", zap.Error(err), zap.Int64("user_id", p.UserID))
		regs = nil
	}
	response.OK(c, intent.Resolve(*w, regs, p.Authenticated()))
}

// ParseID reads the positive integer :id path parameter, answering 400 when it is malformed.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid webinar id")
		return 0, false
	}
	return id, true
}
