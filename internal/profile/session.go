package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/backend"
	"github.com/aura-webinar/portal/internal/middleware"
	"github.com/aura-webinar/portal/internal/models"
	"github.com/aura-webinar/portal/internal/registrations"
	"github.com/aura-webinar/portal/pkg/response"
)

// Authenticator checks credentials and creates accounts. *backend.Client implements it.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Signup(ctx context.Context, s models.Signup) (*models.Session, error)
}

// SessionHandler handles login, signup and logout.
type SessionHandler struct {
	authn  Authenticator
	jwt    *auth.JWTService
	regs   *registrations.Service
	cookie auth.Cookie
	logger *zap.Logger
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(authn Authenticator, jwt *auth.JWTService, regs *registrations.Service, cookie auth.Cookie, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{authn: authn, jwt: jwt, regs: regs, cookie: cookie, logger: logger}
}

// Login handles POST /api/auth/login.
func (h *SessionHandler) Login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	session, err := h.authn.Login(c.Request.Context(), req)
	if err != nil {
		if !errors.Is(err, backend.ErrUnauthorized) {
			h.logger.Error("login failed", zap.Error(err))
		}
		response.Error(c, backend.Status(err), backend.Message(err, "invalid email or password"))
		return
	}
	h.start(c, session)
}

// Signup handles POST /api/auth/signup.
func (h *SessionHandler) Signup(c *gin.Context) {
	var req models.Signup
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	session, err := h.authn.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, backend.Status(err), backend.Message(err, "signup failed"))
		return
	}
	h.start(c, session)
}

// Logout handles POST /api/auth/logout.
func (h *SessionHandler) Logout(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	h.regs.Forget(c.Request.Context(), p)
	h.cookie.Clear(c)
	response.NoContent(c)
}

// start issues the session cookie. A backend session without a token gets one minted with
// the shared secret.
func (h *SessionHandler) start(c *gin.Context, session *models.Session) {
	if session.User == nil || session.User.ID == 0 {
		h.logger.Error("backend session without user")
		response.Error(c, http.StatusBadGateway, "login failed")
		return
	}
	u := session.User
	token := session.Token
	if token == "" {
		minted, err := h.jwt.Generate(u.ID, u.Email, u.Role)
		if err != nil {
			h.logger.Error("generate token", zap.Error(err))
			response.Internal(c, "failed to generate token")
			return
		}
		token = minted
	} else if _, err := h.jwt.Validate(token); err != nil {
		// Session would reject the cookie on every later request.
		h.logger.Error("backend token not valid for this portal; check JWT_SECRET", zap.Error(err), zap.Int64("user_id", u.ID))
		response.Error(c, http.StatusBadGateway, "login failed")
		return
	}

	h.regs.Forget(c.Request.Context(), auth.Principal{UserID: u.ID})
	h.cookie.Set(c, token, h.jwt.TTL())
	h.logger.Info("session started", zap.Int64("user_id", u.ID))
	response.OK(c, models.Session{User: u, Token: token})
}
