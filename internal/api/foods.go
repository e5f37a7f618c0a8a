package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MoetezAbbassi/mealscan/internal/service"
)

// FoodHandler serves the nutrition table
type FoodHandler struct {
	mealService service.IMealService
}

// NewFoodHandler creates a new food handler
func NewFoodHandler(mealService service.IMealService) *FoodHandler {
	return &FoodHandler{mealService: mealService}
}

// RegisterRoutes registers the food lookup routes
func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	foods := router.Group("/foods")
	{
		foods.GET("/search", h.Search)
		foods.GET("/:name", h.Details)
	}
}

// Search lists foods whose names contain the query string
func (h *FoodHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query must be at least 2 characters"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
			return
		}
		limit = n
	}

	results := h.mealService.SearchFoods(query, limit)
	c.JSON(http.StatusOK, SearchResponse{Results: results, Count: len(results)})
}

// Details returns the nutrition entry for a single food
func (h *FoodHandler) Details(c *gin.Context) {
	summary, err := h.mealService.FoodDetails(c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownFood) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up food"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
