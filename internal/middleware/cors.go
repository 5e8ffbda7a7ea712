package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsHeaders = "Content-Type, Authorization, " + HeaderRequestID
)

type corsPolicy struct {
	origins  map[string]bool
	wildcard bool
}

func newCORSPolicy(allowedOrigins string) corsPolicy {
	p := corsPolicy{origins: make(map[string]bool)}
	for _, o := range strings.Split(allowedOrigins, ",") {
		switch o = strings.TrimSpace(o); o {
		case "":
		case "*":
			p.wildcard = true
		default:
			p.origins[o] = true
		}
	}
	if len(p.origins) == 0 {
		p.wildcard = true
	}
	return p
}

// allow returns the Access-Control-Allow-Origin value for origin and whether the session
// cookie may be sent along.
func (p corsPolicy) allow(origin string) (string, bool) {
	switch {
	case origin != "" && p.origins[origin]:
		return origin, true
	case p.wildcard:
		return "*", false
	default:
		return "", false
	}
}

// CORS returns a middleware that sets CORS headers for the browser app.
// allowedOrigins is "*" or a comma-separated list (e.g. "http://localhost:5173,http://localhost:3000").
// Credentials are only allowed for explicitly listed origins.
func CORS(allowedOrigins string) gin.HandlerFunc {
	policy := newCORSPolicy(allowedOrigins)
	return func(c *gin.Context) {
		if allowOrigin, credentials := policy.allow(c.GetHeader("Origin")); allowOrigin != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", allowOrigin)
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			h.Set("Access-Control-Expose-Headers", HeaderRequestID)
			h.Set("Access-Control-Max-Age", "86400")
			if credentials {
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
