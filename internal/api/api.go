package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/MoetezAbbassi/mealscan/config"
	"github.com/MoetezAbbassi/mealscan/internal/cache"
	"github.com/MoetezAbbassi/mealscan/internal/middleware"
	"github.com/MoetezAbbassi/mealscan/internal/service"
)

// SetupAPI wires the services and registers every route under /api/v1.
// Redis, the external nutrition API, the vision model and S3 archival
// are all optional; the server degrades to local analysis when they are
// not configured.
func SetupAPI(router *gin.Engine, cfg *config.Config) error {
	catalog, err := service.LoadCatalog()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload dir: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Printf("[API] redis unavailable, continuing without cache: %v", err)
			redisClient = nil
		}
	}

	var usda *service.USDAClient
	if cfg.NutritionAPIKey != "" {
		usda = service.NewUSDAClient(cfg.NutritionAPIKey, cfg.NutritionAPIURL, redisClient)
	}

	profiler := service.NewColorProfiler()
	classifier := service.NewHeuristicClassifier(catalog)
	resolver := service.NewNutritionResolver(catalog, usda)
	aggregator := service.NewMealAggregator()

	// Recognition strategies in priority order. The color heuristic is
	// last because it always produces an answer.
	recognizers := []service.Recognizer{service.NewKeywordRecognizer(catalog)}
	if cfg.VisionEnabled() {
		recognizers = append(recognizers, service.NewVisionRecognizer(catalog, cfg.VisionAPIURL, cfg.VisionAPIKey))
	}
	recognizers = append(recognizers, service.NewHeuristicRecognizer(profiler, classifier))

	mealService := service.NewMealService(catalog, resolver, aggregator, recognizers...)
	equipmentService := service.NewEquipmentService(catalog)

	var archiver *service.UploadArchiver
	if cfg.ArchiveUploads {
		s3Config, err := config.NewS3Config(context.Background())
		if err != nil {
			log.Printf("[API] S3 unavailable, uploads will not be archived: %v", err)
		} else {
			// Archived uploads are served by their public object URL.
			if err := s3Config.SetupBucketPolicy(context.Background()); err != nil {
				log.Printf("[API] failed to apply bucket policy, archive URLs may not be readable: %v", err)
			}
			archiver = service.NewUploadArchiver(s3Config)
		}
	}

	var analysisLimiter *middleware.RateLimiter
	if redisClient != nil {
		analysisLimiter = middleware.NewAnalysisRateLimiter(redisClient)
	}

	v1 := router.Group("/api/v1")
	{
		// Initialize handlers
		mealHandler := NewMealHandler(mealService, archiver, cfg.UploadDir, cfg.MaxUploadBytes(), analysisLimiter)
		foodHandler := NewFoodHandler(mealService)
		equipmentHandler := NewEquipmentHandler(equipmentService, archiver, analysisLimiter)

		// Register routes
		mealHandler.RegisterRoutes(v1)
		foodHandler.RegisterRoutes(v1)
		equipmentHandler.RegisterRoutes(v1)
	}

	return nil
}
