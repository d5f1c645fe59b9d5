package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the success envelope.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, message string, data any) {
	JSON(c, http.StatusOK, SuccessResponse{Success: true, Message: message, Data: data})
}
