// Package profile serves the signed-in user's account: profile edits, avatar upload and
// account deletion. The backend owns the records.
package profile

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/backend"
	"github.com/aura-webinar/portal/internal/middleware"
	"github.com/aura-webinar/portal/internal/models"
	"github.com/aura-webinar/portal/internal/registrations"
	"github.com/aura-webinar/portal/pkg/response"
	"github.com/aura-webinar/portal/pkg/storage"
)

// Accounts reads and changes user accounts. *backend.Client implements it.
type Accounts interface {
	GetProfile(ctx context.Context, p auth.Principal) (*models.User, error)
	UpdateProfile(ctx context.Context, p auth.Principal, upd models.ProfileUpdate) (*models.User, error)
	DeleteAccount(ctx context.Context, p auth.Principal) error
}

// AvatarStore stores profile pictures. *storage.S3 implements it.
type AvatarStore interface {
	UploadAvatar(ctx context.Context, userID int64, body io.Reader, size int64) (string, error)
}

// Handler handles profile HTTP endpoints.
type Handler struct {
	accounts Accounts
	avatars  AvatarStore
	regs     *registrations.Service
	cookie   auth.Cookie
	logger   *zap.Logger
}

// NewHandler creates a profile handler. avatars may be nil when uploads are disabled.
func NewHandler(accounts Accounts, avatars AvatarStore, regs *registrations.Service, cookie auth.Cookie, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{accounts: accounts, avatars: avatars, regs: regs, cookie: cookie, logger: logger}
}

// Get handles GET /api/user.
func (h *Handler) Get(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	u, err := h.accounts.GetProfile(c.Request.Context(), p)
	if err != nil {
		response.Error(c, backend.Status(err), backend.Message(err, "failed to load profile"))
		return
	}
	response.OK(c, gin.H{"user": u})
}

// Update handles PUT /api/user.
func (h *Handler) Update(c *gin.Context) {
	var upd models.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	u, err := h.accounts.UpdateProfile(c.Request.Context(), p, upd)
	if err != nil {
		h.logger.Error("update profile failed", zap.Error(err), zap.Int64("user_id", p.UserID))
		response.Error(c, backend.Status(err), backend.Message(err, "failed to update profile"))
		return
	}
	response.OK(c, gin.H{"user": u})
}

// Delete handles DELETE /api/user and ends the session.
func (h *Handler) Delete(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	ctx := c.Request.Context()
	if err := h.accounts.DeleteAccount(ctx, p); err != nil {
		h.logger.Error("delete account failed", zap.Error(err), zap.Int64("user_id", p.UserID))
		response.Error(c, backend.Status(err), backend.Message(err, "failed to delete account"))
		return
	}
	h.regs.Forget(ctx, p)
	h.cookie.Clear(c)
	h.logger.Info("account deleted", zap.Int64("user_id", p.UserID))
	response.NoContent(c)
}

// UploadAvatar handles POST /api/uploads (multipart field "file") and stores the URL on the profile.
func (h *Handler) UploadAvatar(c *gin.Context) {
	if h.avatars == nil {
		response.ServiceUnavailable(c, "uploads are not available")
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxAvatarSize+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fh.Size > storage.MaxAvatarSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "unreadable file")
		return
	}
	defer f.Close()

	p, _ := middleware.PrincipalFrom(c)
	ctx := c.Request.Context()
	url, err := h.avatars.UploadAvatar(ctx, p.UserID, f, fh.Size)
	if errors.Is(err, storage.ErrUnsupportedType) {
		response.BadRequest(c, "only JPEG, PNG, WebP or GIF images are allowed")
		return
	}
	if err != nil {
		h.logger.Error("avatar upload failed", zap.Error(err), zap.Int64("user_id", p.UserID))
		response.Internal(c, "upload failed")
		return
	}
	u, err := h.accounts.UpdateProfile(ctx, p, models.ProfileUpdate{AvatarURL: &url})
	if err != nil {
		response.Error(c, backend.Status(err), backend.Message(err, "failed to update profile"))
		return
	}
	response.Created(c, gin.H{"url": url, "user": u})
}
