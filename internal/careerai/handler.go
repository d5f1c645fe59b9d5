package careerai

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careergenie-backend/internal/shared/server/middleware"
	"careergenie-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
	// Provider names the configured model backend for the health probe.
	Provider string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, provider string) *Handler {
	return &Handler{Svc: svc, Provider: provider}
}

// RegisterRoutes attaches AI routes. aiLimit guards every provider call.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, aiLimit gin.HandlerFunc) {
	rg.GET("/ai/health", h.health)
	rg.POST("/ai/interview-questions", aiLimit, h.interviewQuestions)
	rg.POST("/ai/cover-letter", aiLimit, h.coverLetter)
	rg.GET("/ai/market-trends/:field", aiLimit, h.marketTrends)
	rg.POST("/ai/recommendations", aiLimit, h.recommendations)
	rg.POST("/ai/analyze-resume", aiLimit, h.analyzeResume)
	rg.POST("/resume/skill-gaps", h.skillGaps)
	rg.POST("/resume/roadmap", h.roadmap)
	rg.POST("/resume/chat", h.chat)
}

func (h *Handler) health(c *gin.Context) {
	latency, err := h.Svc.Probe(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusServiceUnavailable, "AI provider unavailable", err)
		return
	}
	respond.OK(c, "AI provider reachable", gin.H{
		"provider":  h.Provider,
		"latencyMs": latency.Milliseconds(),
	})
}

func (h *Handler) interviewQuestions(c *gin.Context) {
	var req InterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Job title is required", err)
		return
	}

	out, err := h.Svc.InterviewQuestions(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "Job title is required", "Failed to generate interview questions")
		return
	}
	respond.OK(c, "Interview questions generated", out)
}

func (h *Handler) coverLetter(c *gin.Context) {
	var req CoverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Resume data and job description are required", err)
		return
	}

	out, err := h.Svc.CoverLetter(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "Resume data and job description are required", "Failed to generate cover letter")
		return
	}
	respond.OK(c, "Cover letter generated", out)
}

func (h *Handler) marketTrends(c *gin.Context) {
	out, err := h.Svc.MarketTrends(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("field"))
	if err != nil {
		writeError(c, err, "Field parameter is required", "Failed to analyze market trends")
		return
	}
	respond.OK(c, "Market trends analysis completed", out)
}

type skillGapRequest struct {
	TargetRole string `json:"targetRole" binding:"required,min=2,max=100"`
}

func (h *Handler) skillGaps(c *gin.Context) {
	var req skillGapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Target role is required", err)
		return
	}

	out, err := h.Svc.SkillGaps(c.Request.Context(), middleware.UserIDFromContext(c), req.TargetRole)
	if err != nil {
		writeError(c, err, "Target role is required", "Failed to analyze skill gaps")
		return
	}
	respond.OK(c, "Skill gap analysis completed", out)
}

func (h *Handler) roadmap(c *gin.Context) {
	var req RoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Target role is required and timeframe must be 3-60 months", err)
		return
	}

	out, err := h.Svc.Roadmap(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "Target role is required and timeframe must be 3-60 months", "Failed to generate roadmap")
		return
	}
	respond.OK(c, "Career roadmap generated successfully", out)
}

type chatRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Message is required", err)
		return
	}

	out, err := h.Svc.Chat(c.Request.Context(), middleware.UserIDFromContext(c), req.Message)
	if err != nil {
		writeError(c, err, "Message is required", "Failed to process AI chat")
		return
	}
	respond.OK(c, "AI response generated", out)
}

func (h *Handler) recommendations(c *gin.Context) {
	var req RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Resume data is required", err)
		return
	}

	out, err := h.Svc.Recommendations(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "Resume data is required", "Failed to generate career recommendations")
		return
	}
	respond.OK(c, "Career recommendations generated successfully", out)
}

type analyzeResumeRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) analyzeResume(c *gin.Context) {
	var req analyzeResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Resume text is required", err)
		return
	}

	out, err := h.Svc.AnalyzeResume(c.Request.Context(), middleware.UserIDFromContext(c), req.Text)
	if err != nil {
		writeError(c, err, "Resume text is required", "Failed to analyze resume")
		return
	}
	respond.OK(c, "Resume analysis completed", out)
}

func writeError(c *gin.Context, err error, invalidMsg, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, invalidMsg, err)
	case errors.Is(err, ErrNoResume):
		respond.Error(c, http.StatusNotFound, "No resume found for this user", err)
	default:
		respond.Error(c, http.StatusInternalServerError, fallback, err)
	}
}
