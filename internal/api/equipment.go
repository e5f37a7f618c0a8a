package api

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MoetezAbbassi/mealscan/internal/middleware"
	"github.com/MoetezAbbassi/mealscan/internal/service"
	"github.com/MoetezAbbassi/mealscan/internal/types"
)

// EquipmentHandler handles gym equipment identification requests
type EquipmentHandler struct {
	equipmentService service.IEquipmentService
	archiver         *service.UploadArchiver
	rateLimiter      *middleware.RateLimiter
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(equipmentService service.IEquipmentService, archiver *service.UploadArchiver, rateLimiter *middleware.RateLimiter) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentService: equipmentService,
		archiver:         archiver,
		rateLimiter:      rateLimiter,
	}
}

// RegisterRoutes registers the equipment routes
func (h *EquipmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	equipment := router.Group("/equipment")
	equipment.GET("", h.List)
	equipment.GET("/:key/exercises", h.Exercises)

	identifyRoutes := equipment.Group("")

	// Apply rate limiting if available
	if h.rateLimiter != nil {
		identifyRoutes.Use(h.rateLimiter.RateLimitMiddleware())
	}
	identifyRoutes.POST("/identify", h.Identify)
}

// Identify predicts the machine on an uploaded photo and suggests
// exercises for it
func (h *EquipmentHandler) Identify(c *gin.Context) {
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

	prediction := h.equipmentService.Identify(types.ImageInput{Filename: fileHeader.Filename})

	exercises, err := h.equipmentService.SuggestExercises(prediction.Equipment, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to suggest exercises"})
		return
	}

	info, err := h.equipmentService.Info(prediction.Equipment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up equipment"})
		return
	}

	resp := EquipmentIdentifyResponse{
		EquipmentPrediction: prediction,
		Exercises:           exercises,
		Info:                info,
	}
	resp.ArchiveURL = h.archiveUpload(c, fileHeader)

	c.JSON(http.StatusOK, resp)
}

// List returns every machine in the catalog
func (h *EquipmentHandler) List(c *gin.Context) {
	equipment := h.equipmentService.List()
	c.JSON(http.StatusOK, EquipmentListResponse{Equipment: equipment, Count: len(equipment)})
}

// Exercises returns the suggested exercises for one machine, optionally
// filtered by difficulty
func (h *EquipmentHandler) Exercises(c *gin.Context) {
	key := c.Param("key")

	exercises, err := h.equipmentService.SuggestExercises(key, c.Query("difficulty"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownEquipment) {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to suggest exercises"})
		return
	}

	info, err := h.equipmentService.Info(key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up equipment"})
		return
	}

	c.JSON(http.StatusOK, ExerciseListResponse{
		Equipment:   info.Key,
		DisplayName: info.DisplayName,
		Exercises:   exercises,
		Count:       len(exercises),
	})
}

// archiveUpload copies the upload to S3 when archival is configured.
// Failures are logged and the prediction is served anyway.
func (h *EquipmentHandler) archiveUpload(c *gin.Context, fileHeader *multipart.FileHeader) string {
	if h.archiver == nil {
		return ""
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("[EquipmentHandler] failed to open upload for archiving: %v", err)
		return ""
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[EquipmentHandler] failed to read upload for archiving: %v", err)
		return ""
	}

	url, err := h.archiver.Archive(c.Request.Context(), "equipment", fileHeader.Filename, data)
	if err != nil {
		log.Printf("[EquipmentHandler] failed to archive upload: %v", err)
		return ""
	}
	return url
}
