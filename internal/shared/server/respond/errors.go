package respond

import (
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"careergenie-backend/internal/shared/telemetry"
)

var exposeDetails atomic.Bool

// ExposeDetails controls whether raw error text is sent to clients.
// Only dev and local environments turn it on.
func ExposeDetails(on bool) {
	exposeDetails.Store(on)
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Error logs the failure and aborts with the failure envelope.
func Error(c *gin.Context, status int, message string, err error) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if err != nil {
		fields["err"] = err.Error()
	}
	telemetry.Error("http.error", fields)

	body := ErrorResponse{Success: false, Message: message}
	if err != nil && exposeDetails.Load() {
		body.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}
