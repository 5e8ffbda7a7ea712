package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie describes the HTTP-only session cookie.
type Cookie struct {
	Name   string
	Domain string
	Secure bool
}

// Set writes the session cookie holding token.
func (ck Cookie) Set(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ck.Name, token, int(ttl.Seconds()), "/", ck.Domain, ck.Secure, true)
}

// Clear expires the session cookie.
func (ck Cookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ck.Name, "", -1, "/", ck.Domain, ck.Secure, true)
}
