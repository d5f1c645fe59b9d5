package resumes

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"careergenie-backend/internal/extract"
	"careergenie-backend/internal/llm"
	"careergenie-backend/internal/shared/server/middleware"
	"careergenie-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes. aiLimit guards the parse route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, aiLimit gin.HandlerFunc) {
	rg.POST("/resume/parse", aiLimit, h.parse)
	rg.POST("/resume/upload", h.upload)
	rg.GET("/resume", h.latest)
	rg.GET("/resume/all", h.list)
	rg.GET("/resume/:id", h.get)
	rg.DELETE("/resume/:id", h.delete)
}

func (h *Handler) parse(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileName, data, ok := readUpload(c)
	if !ok {
		return
	}

	result, err := h.Svc.Parse(c.Request.Context(), userID, fileName, data)
	if err != nil {
		writeError(c, err, "Failed to parse resume")
		return
	}

	c.Set("resumeId", result.Resume.ID)
	c.Set("processingMethod", string(result.Resume.ProcessingMethod))

	respond.OK(c, "Resume parsed successfully", toParseResponse(result))
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileName, data, ok := readUpload(c)
	if !ok {
		return
	}

	up, err := h.Svc.Upload(c.Request.Context(), userID, fileName, data)
	if err != nil {
		writeError(c, err, "Failed to upload file")
		return
	}

	respond.OK(c, "File uploaded successfully", uploadResponse{
		FileID:     up.FileID,
		FileName:   up.FileName,
		UploadedAt: up.UploadedAt.Format(time.RFC3339),
	})
}

func (h *Handler) latest(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	res, err := h.Svc.Latest(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "No resume found for this user", nil)
			return
		}
		writeError(c, err, "Failed to fetch resume")
		return
	}

	respond.OK(c, "Resume fetched successfully", toResponse(res, true, true))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := DefaultListLimit
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	items, err := h.Svc.List(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err, "Failed to fetch resumes")
		return
	}

	data := make([]resumeResponse, 0, len(items))
	for _, item := range items {
		data = append(data, toResponse(item, false, true))
	}
	respond.JSON(c, http.StatusOK, listResponse{
		Success: true,
		Message: "Resumes fetched successfully",
		Data:    data,
		Count:   len(data),
	})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	res, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to fetch resume")
		return
	}

	respond.OK(c, "Resume fetched successfully", toResponse(res, true, true))
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err, "Failed to delete resume")
		return
	}

	respond.OK(c, "Resume deleted successfully", nil)
}

// readUpload validates and reads the multipart "file" field, writing a 400 on failure.
func readUpload(c *gin.Context) (string, []byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "No file uploaded", err)
		return "", nil, false
	}
	if fileHeader.Size > maxUploadSize {
		respond.Error(c, http.StatusBadRequest, "File too large. Maximum size is 10MB", nil)
		return "", nil, false
	}
	fileName := strings.TrimSpace(fileHeader.Filename)
	if !extract.Supported(fileName, fileHeader.Header.Get("Content-Type")) {
		respond.Error(c, http.StatusBadRequest, "Invalid file type. Only PDF, DOC, DOCX, and TXT files are allowed.", nil)
		return "", nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Unable to read file", err)
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Unable to read file", err)
		return "", nil, false
	}
	if len(data) > maxUploadSize {
		respond.Error(c, http.StatusBadRequest, "File too large. Maximum size is 10MB", nil)
		return "", nil, false
	}
	return fileName, data, true
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, extract.ErrDecode):
		respond.Error(c, http.StatusBadRequest, "Unable to read resume file. Please upload a valid PDF, DOC, DOCX or TXT file.", err)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "Resume not found", err)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "Unauthorized to access this resume", err)
	case errors.Is(err, llm.ErrExtraction):
		respond.Error(c, http.StatusInternalServerError, "AI resume analysis failed", err)
	default:
		respond.Error(c, http.StatusInternalServerError, fallback, err)
	}
}
