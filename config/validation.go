package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks the configuration for values that cannot work at
// runtime. All problems are reported at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.ServerPort); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("PORT must be a valid port number, got %q", c.ServerPort))
	}

	if c.MaxUploadSizeMB <= 0 {
		errors = append(errors, fmt.Sprintf("MAX_UPLOAD_SIZE_MB must be positive, got %d", c.MaxUploadSizeMB))
	}

	if c.RedisDB < 0 {
		errors = append(errors, fmt.Sprintf("REDIS_DB must not be negative, got %d", c.RedisDB))
	}

	if c.ArchiveUploads && c.S3Bucket == "" {
		errors = append(errors, "ARCHIVE_UPLOADS requires S3_BUCKET_NAME")
	}

	if c.VisionAPIURL != "" && c.VisionAPIKey == "" {
		errors = append(errors, "VISION_API_URL requires VISION_API_KEY or VISION_API_KEY_FILE")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
