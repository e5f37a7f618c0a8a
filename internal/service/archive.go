package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/MoetezAbbassi/mealscan/config"
)

// UploadArchiver copies analyzed uploads to S3 so they can be reviewed
// later. Archival is best effort; callers log failures and keep serving
// the analysis.
type UploadArchiver struct {
	s3Config *config.S3Config
}

func NewUploadArchiver(s3Config *config.S3Config) *UploadArchiver {
	return &UploadArchiver{s3Config: s3Config}
}

// Archive stores the image under <prefix>/<date>/<uuid><ext> and returns
// the object's public URL.
func (a *UploadArchiver) Archive(ctx context.Context, prefix, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s/%s/%s%s", prefix, time.Now().UTC().Format("2006-01-02"), uuid.New().String(), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := a.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := a.s3Config.PublicURL(key)
	log.Printf("[UploadArchiver] archived upload to %s", publicURL)
	return publicURL, nil
}
