package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/pkg/response"
)

// ContextPrincipal is the key for the caller's auth.Principal in gin context.
const ContextPrincipal = "principal"

// Session resolves the caller from a bearer token or the session cookie. Requests without
// a valid token continue as anonymous visitors.
func Session(jwtService *auth.JWTService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.Principal{}
		if token := tokenFrom(c, cookieName); token != "" {
			if resolved, err := jwtService.Principal(token); err == nil {
				p = resolved
			}
		}
		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

// RequireAuth rejects anonymous callers. It must run after Session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || !p.Authenticated() {
			response.Unauthorized(c, "login required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by Session.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func tokenFrom(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil {
			return v
		}
	}
	return ""
}
