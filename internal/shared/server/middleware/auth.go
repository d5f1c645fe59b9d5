package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careergenie-backend/internal/shared/auth"
	"careergenie-backend/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	userNameKey  = "userName"
)

// TokenVerifier validates a bearer ID token.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (auth.Claims, error)
}

// AuthConfig wires the identity check.
type AuthConfig struct {
	Verifier TokenVerifier
	// DevBypass trusts the X-User-Id header. Never enabled in production.
	DevBypass bool
}

// Auth validates Firebase ID tokens and stores identity in context.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		if cfg.DevBypass {
			if uid := strings.TrimSpace(c.GetHeader("X-User-Id")); uid != "" {
				c.Set(userIDKey, uid)
				c.Next()
				return
			}
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "No token provided or invalid format", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" || cfg.Verifier == nil {
			respond.Error(c, http.StatusUnauthorized, "No token provided or invalid format", nil)
			return
		}

		claims, err := cfg.Verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				respond.Error(c, http.StatusUnauthorized, "Token expired", err)
				return
			}
			respond.Error(c, http.StatusUnauthorized, "Invalid token", err)
			return
		}

		c.Set(userIDKey, claims.Subject)
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		if claims.Name != "" {
			c.Set(userNameKey, claims.Name)
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// UserNameFromContext fetches the display name from the token, if any.
func UserNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userNameKey)
}
