// Package webinars serves the public catalog: the ordered, filtered listing and detail pages.
package webinars

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-webinar/portal/internal/backend"
	"github.com/aura-webinar/portal/internal/catalog"
	"github.com/aura-webinar/portal/internal/listing"
	"github.com/aura-webinar/portal/internal/models"
	"github.com/aura-webinar/portal/internal/registrations"
	"github.com/aura-webinar/portal/pkg/response"
)

// ListResponse is the body of GET /api/webinars.
type ListResponse struct {
	listing.Listing
	Filter     listing.Filter `json:"filter"`
	Categories []string       `json:"categories"`
	Levels     []string       `json:"levels"`
}

// Handler handles webinar HTTP endpoints.
type Handler struct {
	store  catalog.Store
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewHandler creates a webinar handler. Webinar wall-clock times are read in loc.
func NewHandler(store catalog.Store, loc *time.Location, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, loc: loc, now: time.Now, logger: logger}
}

func (h *Handler) clock() time.Time {
	return h.now().In(h.loc)
}

// List handles GET /api/webinars?search=&category=&type=&level=.
func (h *Handler) List(c *gin.Context) {
	var filter listing.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid filter: "+err.Error())
		return
	}
	records, err := h.store.ListWebinars(c.Request.Context())
	if err != nil {
		h.logger.Error("list webinars failed", zap.Error(err))
		response.Error(c, backend.Status(err), backend.Message(err, "failed to load webinars"))
		return
	}
	response.OK(c, ListResponse{
		Listing:    listing.Build(records, filter, h.clock()),
		Filter:     filter,
		Categories: models.Categories,
		Levels:     models.Levels,
	})
}

// GetByID handles GET /api/webinars/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := registrations.ParseID(c)
	if !ok {
		return
	}
	w, err := h.store.GetWebinar(c.Request.Context(), id)
	if err != nil {
		response.Error(c, backend.Status(err), backend.Message(err, "webinar not found"))
		return
	}
	response.OK(c, gin.H{"webinar": listing.Detail(*w, h.clock())})
}
