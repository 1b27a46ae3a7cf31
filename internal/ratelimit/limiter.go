// Package ratelimit implements a per-client sliding-window rate limit:
// a request is admitted only if fewer than the allowed number of requests
// from the same identity occurred in the trailing window.
package ratelimit

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Limiter admits or rejects a request from the given client identity.
type Limiter interface {
	Allow(ctx context.Context, identity string) bool
}

// Middleware rejects requests over the limit with 429. The client identity
// is the first X-Forwarded-For entry when present, otherwise the peer IP.
func Middleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.Request.Context(), clientIdentity(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

func clientIdentity(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	return c.ClientIP()
}
