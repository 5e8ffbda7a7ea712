package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/backend"
	"github.com/aura-webinar/portal/internal/catalog/catalogtest"
	"github.com/aura-webinar/portal/internal/middleware"
	"github.com/aura-webinar/portal/internal/models"
	"github.com/aura-webinar/portal/internal/registrations"
)

type fakeAuthn struct {
	session models.Session
	err     error
}

func (a *fakeAuthn) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	if a.err != nil {
		return nil, a.err
	}
	s := a.session
	return &s, nil
}

func (a *fakeAuthn) Signup(ctx context.Context, s models.Signup) (*models.Session, error) {
	return a.Login(ctx, models.Credentials{Email: s.Email, Password: s.Password})
}

func newSessionRouter(authn *fakeAuthn, snapshots *catalogtest.Snapshots) (*gin.Engine, *auth.JWTService) {
	jwtService := auth.NewJWTService("secret", 2)
	regs := registrations.NewService(catalogtest.NewMemory(), snapshots, nil)
	h := NewSessionHandler(authn, jwtService, regs, auth.Cookie{Name: "token"}, zap.NewNop())

	r := gin.New()
	r.Use(middleware.Session(jwtService, "token"))
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/logout", h.Logout)
	return r, jwtService
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginMintsTokenAndSetsCookie(t *testing.T) {
	authn := &fakeAuthn{session: models.Session{User: &models.User{ID: 7, Email: "a@example.com"}}}
	r, jwtService := newSessionRouter(authn, catalogtest.NewSnapshots())

	w := postJSON(r, "/api/auth/login", `{"email":"a@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data models.Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.Token)
	p, err := jwtService.Principal(body.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.UserID)

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "token="+body.Data.Token)
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Max-Age=7200")
}

func TestLoginKeepsBackendToken(t *testing.T) {
	issued, err := auth.NewJWTService("secret", 1).Generate(7, "a@example.com", "audience")
	require.NoError(t, err)
	authn := &fakeAuthn{session: models.Session{User: &models.User{ID: 7}, Token: issued}}
	r, _ := newSessionRouter(authn, catalogtest.NewSnapshots())

	w := postJSON(r, "/api/auth/signup", `{"name":"A","email":"a@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"`+issued+`"`)
}

func TestLoginRejectsTokenSignedWithOtherSecret(t *testing.T) {
	foreign, err := auth.NewJWTService("other-secret", 1).Generate(7, "a@example.com", "audience")
	require.NoError(t, err)
	for _, token := range []string{foreign, "backend-token"} {
		authn := &fakeAuthn{session: models.Session{User: &models.User{ID: 7}, Token: token}}
		r, _ := newSessionRouter(authn, catalogtest.NewSnapshots())

		w := postJSON(r, "/api/auth/login", `{"email":"a@example.com","password":"pw"}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Empty(t, w.Header().Get("Set-Cookie"))
	}
}

func TestLoginRejected(t *testing.T) {
	authn := &fakeAuthn{err: fmt.Errorf("%w: %w", backend.ErrUnauthorized, &backend.APIError{Status: 401, Message: "Invalid credentials"})}
	r, _ := newSessionRouter(authn, catalogtest.NewSnapshots())

	w := postJSON(r, "/api/auth/login", `{"email":"a@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, w.Header().Get("Set-Cookie"))

	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/api/auth/login", `{"email":"nope"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/api/auth/signup", `{"name":"A","email":"a@example.com","password":"123"}`).Code)
}

func TestLoginWithoutUser(t *testing.T) {
	r, _ := newSessionRouter(&fakeAuthn{}, catalogtest.NewSnapshots())
	assert.Equal(t, http.StatusBadGateway, postJSON(r, "/api/auth/login", `{"email":"a@example.com","password":"pw"}`).Code)
}

func TestLogoutDropsSnapshotAndCookie(t *testing.T) {
	snapshots := catalogtest.NewSnapshots()
	snapshots.Items[7] = []models.Registration{{WebinarID: 1, Status: "accepted"}}
	r, jwtService := newSessionRouter(&fakeAuthn{}, snapshots)
	token, err := jwtService.Generate(7, "", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotContains(t, snapshots.Items, int64(7))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "token=;")
}
