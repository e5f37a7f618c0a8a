package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MoetezAbbassi/mealscan/internal/middleware"
	"github.com/MoetezAbbassi/mealscan/internal/service"
	"github.com/MoetezAbbassi/mealscan/internal/types"
)

// allowedImageExtensions lists the upload types the analyzers accept.
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// MealHandler handles meal analysis requests
type MealHandler struct {
	mealService    service.IMealService
	archiver       *service.UploadArchiver
	uploadDir      string
	maxUploadBytes int64
	rateLimiter    *middleware.RateLimiter
}

// NewMealHandler creates a new meal handler
func NewMealHandler(mealService service.IMealService, archiver *service.UploadArchiver, uploadDir string, maxUploadBytes int64, rateLimiter *middleware.RateLimiter) *MealHandler {
	return &MealHandler{
		mealService:    mealService,
		archiver:       archiver,
		uploadDir:      uploadDir,
		maxUploadBytes: maxUploadBytes,
		rateLimiter:    rateLimiter,
	}
}

// RegisterRoutes registers the meal analysis routes
func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	meals.POST("/analyze-text", h.AnalyzeText)

	imageRoutes := meals.Group("")

	// Apply rate limiting if available
	if h.rateLimiter != nil {
		imageRoutes.Use(h.rateLimiter.RateLimitMiddleware())
	}
	imageRoutes.POST("/analyze-image", h.AnalyzeImage)
}

// AnalyzeImage recognizes the foods on an uploaded photo and returns
// their nutrition
func (h *MealHandler) AnalyzeImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "unsupported file type",
			"message": "allowed extensions: png, jpg, jpeg, gif",
		})
		return
	}

	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":   "file too large",
			"message": fmt.Sprintf("uploads are limited to %d bytes", h.maxUploadBytes),
		})
		return
	}

	tempPath := filepath.Join(h.uploadDir, uuid.New().String()+ext)
	if err := c.SaveUploadedFile(fileHeader, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}
	defer os.Remove(tempPath)

	result, err := h.mealService.RecognizeAndAnalyze(c.Request.Context(), types.ImageInput{
		Path:     tempPath,
		Filename: fileHeader.Filename,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageDecode):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "could not decode image",
				"message": "the upload does not look like a valid image",
			})
		case errors.Is(err, service.ErrNoFoodDetected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no foods detected in image"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image analysis failed"})
		}
		return
	}

	resp := ImageAnalysisResponse{MealRecognition: *result}
	resp.ArchiveURL = h.archiveUpload(c, "meals", fileHeader.Filename, tempPath)

	c.JSON(http.StatusOK, resp)
}

// AnalyzeText computes nutrition totals for foods given as structured
// items or as a free text description
func (h *MealHandler) AnalyzeText(c *gin.Context) {
	var req AnalyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"message": err.Error(),
		})
		return
	}

	items := req.Items
	if len(items) == 0 {
		if strings.TrimSpace(req.Description) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "either items or description is required"})
			return
		}
		items = h.mealService.ParseDescription(req.Description)
	}

	analysis := h.mealService.Analyze(c.Request.Context(), items)
	c.JSON(http.StatusOK, analysis)
}

// archiveUpload copies the upload to S3 when archival is configured.
// Failures are logged and the analysis is served anyway.
func (h *MealHandler) archiveUpload(c *gin.Context, prefix, filename, tempPath string) string {
	if h.archiver == nil {
		return ""
	}

	data, err := os.ReadFile(tempPath)
	if err != nil {
		log.Printf("[MealHandler] failed to read upload for archiving: %v", err)
		return ""
	}

	url, err := h.archiver.Archive(c.Request.Context(), prefix, filename, data)
	if err != nil {
		log.Printf("[MealHandler] failed to archive upload: %v", err)
		return ""
	}
	return url
}
