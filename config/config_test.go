package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads so tests see a clean
// environment. t.Setenv restores the originals automatically.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "ALLOWED_ORIGINS", "UPLOAD_DIR", "MAX_UPLOAD_SIZE_MB",
		"NUTRITION_API_KEY", "NUTRITION_API_KEY_FILE", "NUTRITION_API_URL",
		"VISION_API_URL", "VISION_API_KEY", "VISION_API_KEY_FILE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_URL",
		"S3_BUCKET_NAME", "AWS_REGION", "ARCHIVE_UPLOADS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults when nothing is set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
		assert.Equal(t, os.TempDir(), cfg.UploadDir)
		assert.Equal(t, 10, cfg.MaxUploadSizeMB)
		assert.Equal(t, "6379", cfg.RedisPort)
		assert.Equal(t, "mealscan-uploads", cfg.S3Bucket)
		assert.False(t, cfg.ArchiveUploads)
		assert.False(t, cfg.RedisEnabled())
		assert.False(t, cfg.VisionEnabled())
	})

	t.Run("should read values from the environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "9999")
		t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")
		t.Setenv("MAX_UPLOAD_SIZE_MB", "25")
		t.Setenv("NUTRITION_API_KEY", "demo-key")
		t.Setenv("REDIS_HOST", "redis")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("ARCHIVE_UPLOADS", "true")
		t.Setenv("S3_BUCKET_NAME", "meal-archive")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "9999", cfg.ServerPort)
		assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.AllowedOrigins)
		assert.Equal(t, 25, cfg.MaxUploadSizeMB)
		assert.Equal(t, int64(25<<20), cfg.MaxUploadBytes())
		assert.Equal(t, "demo-key", cfg.NutritionAPIKey)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.True(t, cfg.ArchiveUploads)
		assert.Equal(t, "meal-archive", cfg.S3Bucket)
		assert.True(t, cfg.RedisEnabled())
	})

	t.Run("should read API keys from secret files", func(t *testing.T) {
		clearEnv(t)
		secretPath := filepath.Join(t.TempDir(), "nutrition_api_key")
		require.NoError(t, os.WriteFile(secretPath, []byte("file-key\n"), 0o600))
		t.Setenv("NUTRITION_API_KEY_FILE", secretPath)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "file-key", cfg.NutritionAPIKey)
	})

	t.Run("should prefer the direct variable over the secret file", func(t *testing.T) {
		clearEnv(t)
		secretPath := filepath.Join(t.TempDir(), "nutrition_api_key")
		require.NoError(t, os.WriteFile(secretPath, []byte("file-key"), 0o600))
		t.Setenv("NUTRITION_API_KEY", "env-key")
		t.Setenv("NUTRITION_API_KEY_FILE", secretPath)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.NutritionAPIKey)
	})

	t.Run("should fail when the secret file is missing", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NUTRITION_API_KEY_FILE", filepath.Join(t.TempDir(), "does-not-exist"))

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("should fail on a non-numeric size", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MAX_UPLOAD_SIZE_MB", "ten")

		_, err := LoadConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MAX_UPLOAD_SIZE_MB")
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerPort:      "8080",
			MaxUploadSizeMB: 10,
			S3Bucket:        "mealscan-uploads",
		}
	}

	t.Run("should accept a sane configuration", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("should reject a bad port", func(t *testing.T) {
		cfg := valid()
		cfg.ServerPort = "not-a-port"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
	})

	t.Run("should reject a non-positive upload cap", func(t *testing.T) {
		cfg := valid()
		cfg.MaxUploadSizeMB = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("should reject archival without a bucket", func(t *testing.T) {
		cfg := valid()
		cfg.ArchiveUploads = true
		cfg.S3Bucket = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "S3_BUCKET_NAME")
	})

	t.Run("should reject a vision endpoint without a key", func(t *testing.T) {
		cfg := valid()
		cfg.VisionAPIURL = "https://api.clarifai.com/v2/models/food/outputs"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "VISION_API_KEY")
	})

	t.Run("should report every problem at once", func(t *testing.T) {
		cfg := &Config{ServerPort: "0", MaxUploadSizeMB: -1, RedisDB: -2}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
		assert.Contains(t, err.Error(), "MAX_UPLOAD_SIZE_MB")
		assert.Contains(t, err.Error(), "REDIS_DB")
	})
}

func TestGetEnvironment(t *testing.T) {
	t.Run("should default to development", func(t *testing.T) {
		t.Setenv("CI", "")
		t.Setenv("ENV", "")
		assert.Equal(t, Development, GetEnvironment())
	})

	t.Run("should detect CI", func(t *testing.T) {
		t.Setenv("CI", "true")
		assert.Equal(t, CI, GetEnvironment())
		assert.True(t, IsCI())
	})

	t.Run("should detect production", func(t *testing.T) {
		t.Setenv("CI", "")
		t.Setenv("ENV", "production")
		assert.Equal(t, Production, GetEnvironment())
		assert.True(t, IsProduction())
	})
}
