package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsProduction returns true if the current environment is production
func IsProduction() bool {
	return GetEnvironment() == Production
}

// IsCI returns true if the current environment is CI
func IsCI() bool {
	return GetEnvironment() == CI
}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort     string
	GinMode        string
	AllowedOrigins []string

	// Upload handling
	UploadDir       string
	MaxUploadSizeMB int

	// External nutrition API (USDA FoodData Central)
	NutritionAPIKey string
	NutritionAPIURL string

	// Optional vision model for food recognition
	VisionAPIURL string
	VisionAPIKey string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Upload archival
	S3Bucket       string
	AWSRegion      string
	ArchiveUploads bool
}

// LoadConfig creates a new Config instance from environment variables.
// API keys may also arrive as Docker secrets via *_FILE variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnv("PORT", "8080"),
		GinMode:         os.Getenv("GIN_MODE"),
		AllowedOrigins:  splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		UploadDir:       getEnv("UPLOAD_DIR", os.TempDir()),
		NutritionAPIURL: os.Getenv("NUTRITION_API_URL"),
		VisionAPIURL:    os.Getenv("VISION_API_URL"),
		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisURL:        os.Getenv("REDIS_URL"),
		S3Bucket:        getEnv("S3_BUCKET_NAME", defaultBucketName),
		AWSRegion:       os.Getenv("AWS_REGION"),
		ArchiveUploads:  boolEnv("ARCHIVE_UPLOADS"),
	}

	size, err := intEnv("MAX_UPLOAD_SIZE_MB", 10)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadSizeMB = size

	db, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = db

	nutritionKey, err := secretEnv("NUTRITION_API_KEY")
	if err != nil {
		return nil, err
	}
	cfg.NutritionAPIKey = nutritionKey

	visionKey, err := secretEnv("VISION_API_KEY")
	if err != nil {
		return nil, err
	}
	cfg.VisionAPIKey = visionKey

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RedisEnabled reports whether a Redis endpoint is configured. Caching
// and rate limiting are skipped entirely when it is not.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// VisionEnabled reports whether the external vision model is configured.
func (c *Config) VisionEnabled() bool {
	return c.VisionAPIURL != ""
}

// MaxUploadBytes returns the upload size cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadSizeMB) << 20
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func boolEnv(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return v
}

// secretEnv reads KEY, falling back to the file named by KEY_FILE. A
// missing variable is not an error; an unreadable or empty secret file
// is.
func secretEnv(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}

	file := os.Getenv(key + "_FILE")
	if file == "" {
		return "", nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s_FILE: %w", key, err)
	}
	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s_FILE points at an empty file", key)
	}
	return secret, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
