package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dealer-backend/pkg/ratelimit"
)

// RateLimitMiddleware enforces per-category request limits. The limiter
// failing is never a reason to block traffic; the request proceeds and the
// response carries a diagnostic header.
func RateLimitMiddleware(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := getClientID(c)
		category := categoryFor(c.Request.Method, c.Request.URL.Path)

		allowed, resetIn, err := limiter.Allow(clientID, category)
		if err != nil {
			c.Header("X-RateLimit-Error", "rate limiter unavailable")
			c.Next()
			return
		}

		limit := limiter.LimitFor(category)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit.Requests))
		c.Header("X-RateLimit-Window", strconv.Itoa(int(limit.Window.Seconds())))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(resetIn.Seconds())))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetIn).Unix(), 10))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "Rate limit exceeded",
				"message":    fmt.Sprintf("Too many requests. Try again in %v", resetIn.Round(time.Second)),
				"retryAfter": int(resetIn.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getClientID identifies the caller: the real IP, behind proxies when the
// forwarding headers say so.
func getClientID(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.ClientIP()
}

// categoryFor maps a request to its rate limit category. Dynamic path
// segments collapse so every vehicle detail page shares one bucket.
func categoryFor(method, path string) string {
	switch {
	case path == "/api/v1/auth/login":
		return ratelimit.CategoryAuthLogin
	case path == "/api/v1/health":
		return ratelimit.CategoryHealth
	case strings.HasPrefix(path, "/api/v1/inquiries"):
		if method == http.MethodPost {
			return ratelimit.CategoryInquiry
		}
		return ratelimit.CategoryDefault
	case strings.Contains(path, "/images") || path == "/api/v1/images":
		return ratelimit.CategoryImageUpload
	case strings.HasPrefix(path, "/api/v1/vehicles"):
		if method == http.MethodGet {
			return ratelimit.CategoryGallery
		}
		return ratelimit.CategoryMutation
	}
	return ratelimit.CategoryDefault
}
