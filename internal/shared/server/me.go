package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careergenie-backend/internal/shared/server/middleware"
	"careergenie-backend/internal/shared/server/respond"
)

// registerVerifyRoute attaches GET /auth/verify, which echoes the verified identity.
func registerVerifyRoute(rg *gin.RouterGroup) {
	rg.GET("/auth/verify", verifyHandler)
}

func verifyHandler(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "Invalid token", nil)
		return
	}

	user := gin.H{"uid": userID}
	if email := middleware.UserEmailFromContext(c); email != "" {
		user["email"] = email
	}
	if name := middleware.UserNameFromContext(c); name != "" {
		user["name"] = name
	}

	respond.OK(c, "Token is valid", gin.H{"user": user})
}
