package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
	"github.com/sbenmansour/cessiondesk/internal/app/session"
)

const (
	UserContextKey   = "user"
	IsPublicRouteKey = "isPublicRoute"
	RequestIDKey     = "requestID"
	RequestIDHeader  = "X-Request-ID"
)

// publicPrefixes lists routes reachable without a session.
var publicPrefixes = []string{
	"/login",
	"/signup",
	"/language",
	"/assets/",
	"/healthz",
}

func isPublicRoute(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasSuffix(prefix, "/") {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		} else if path == prefix {
			return true
		}
	}
	return false
}

// RequestIDMiddleware tags every request with an identifier for log
// correlation, honoring one supplied by a proxy.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// CORSMiddleware handles CORS headers
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, HX-Request, HX-Target, HX-Current-URL")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("X-XSS-Protection", "1; mode=block")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Fonts and scripts are served locally; HTMX comes from unpkg.
		csp := "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline' https://unpkg.com; " +
			"style-src 'self' 'unsafe-inline'; " +
			"font-src 'self'; " +
			"img-src 'self' data:; " +
			"connect-src 'self'"
		c.Writer.Header().Set("Content-Security-Policy", csp)

		c.Next()
	}
}

// AuthGate classifies each route and exposes the session to the page
// layer. It never redirects itself; a protected page without a token
// fails its first backend call and the handler issues the redirect.
func AuthGate(sess *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(IsPublicRouteKey, isPublicRoute(c.Request.URL.Path))

		if user := sess.User(); user != nil {
			c.Set(UserContextKey, user)
		}
		c.Next()
	}
}

// IsPublicRoute reports the classification made by AuthGate.
func IsPublicRoute(c *gin.Context) bool {
	if v, exists := c.Get(IsPublicRouteKey); exists {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// HandleAuthRedirect handles redirects for both regular and HTMX requests
func HandleAuthRedirect(c *gin.Context, redirectURL string) {
	if c.GetHeader("HX-Request") == "true" {
		// For HTMX requests, use HX-Redirect header to trigger client-side redirect
		c.Header("HX-Redirect", redirectURL)
		c.AbortWithStatus(http.StatusUnauthorized)
	} else {
		c.Redirect(http.StatusFound, redirectURL)
		c.Abort()
	}
}

// GetUserFromContext extracts user information from Gin context
func GetUserFromContext(c *gin.Context) *models.User {
	user, exists := c.Get(UserContextKey)
	if !exists {
		return nil
	}

	userModel, ok := user.(*models.User)
	if !ok {
		return nil
	}

	return userModel
}

// GetRequestID extracts the request identifier set by
// RequestIDMiddleware.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
