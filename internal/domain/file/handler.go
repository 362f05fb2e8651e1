package file

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resumeparser/internal/domain/auth"
	"resumeparser/internal/domain/credits"
	"resumeparser/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload a PDF resume for processing
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "PDF file, max 10 MB"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,402,404 {object} map[string]interface{}
// @Router /files/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "no file provided")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "failed to open file")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to read file")
		return
	}

	f, err := h.service.Upload(c.Request.Context(), userID, fileHeader.Filename, data)
	if err != nil {
		h.writeUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"file": gin.H{
			"id":         f.ID,
			"fileName":   f.FileName,
			"fileSize":   f.FileSize,
			"status":     f.Status,
			"uploadedAt": f.UploadedAt,
		},
	})
}

// List godoc
// @Summary List my files, newest first
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /files [get]
func (h *Handler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	files, withData, err := h.service.ListFiles(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list files")
		return
	}

	items := make([]gin.H, 0, len(files))
	for _, f := range files {
		items = append(items, gin.H{
			"id":            f.ID,
			"fileName":      f.FileName,
			"fileSize":      f.FileSize,
			"status":        f.Status,
			"uploadedAt":    f.UploadedAt,
			"hasResumeData": withData[f.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"files":   items,
	})
}

// Get godoc
// @Summary Get one file with its extracted resume data
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /files/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	f, data, err := h.service.GetFile(c.Request.Context(), userID, fileID)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "file not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get file")
		return
	}

	var resumeData any
	if data != nil {
		resumeData = data
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"file": gin.H{
			"id":         f.ID,
			"fileName":   f.FileName,
			"fileSize":   f.FileSize,
			"status":     f.Status,
			"uploadedAt": f.UploadedAt,
			"resumeData": resumeData,
		},
	})
}

// History godoc
// @Summary Get a file's processing history, oldest first
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /files/{id}/history [get]
func (h *Handler) History(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	events, err := h.service.History(c.Request.Context(), userID, fileID)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "file not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get history")
		return
	}

	items := make([]gin.H, 0, len(events))
	for _, e := range events {
		items = append(items, gin.H{
			"action":    e.Action,
			"status":    e.Status,
			"message":   e.Message,
			"createdAt": e.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": items,
	})
}

// Credits godoc
// @Summary Get my credit balance
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /files/credits/balance [get]
func (h *Handler) Credits(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	balance, err := h.service.Credits(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "user not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"credits": balance,
	})
}

func (h *Handler) writeUploadError(c *gin.Context, err error) {
	var insufficient *credits.InsufficientCreditsError
	switch {
	case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrFileTooLarge), errors.Is(err, ErrInvalidMimeType):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.As(err, &insufficient):
		response.Error(c, http.StatusPaymentRequired, "INSUFFICIENT_CREDITS", err.Error())
	case errors.Is(err, auth.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "user not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "upload failed")
	}
}

func mustUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user id")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user id")
		return uuid.Nil, false
	}
	return id, true
}

func parseFileID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "file not found")
		return uuid.Nil, false
	}
	return id, true
}
