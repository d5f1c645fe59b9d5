package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careergenie-backend/internal/shared/server/middleware"
	"careergenie-backend/internal/shared/server/respond"
)

// Handler serves the structured profile.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume/profile", h.get)
	rg.PUT("/resume/profile", h.update)
}

func (h *Handler) get(c *gin.Context) {
	view, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to fetch structured profile", err)
		return
	}
	respond.OK(c, "Structured profile fetched successfully", view)
}

func (h *Handler) update(c *gin.Context) {
	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid profile data", err)
		return
	}

	res, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), patch)
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "No profile changes provided", err)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "Profile entry not found", err)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "Failed to update structured profile", err)
	default:
		respond.OK(c, "Structured profile updated successfully", res)
	}
}
