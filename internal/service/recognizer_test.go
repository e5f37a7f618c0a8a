package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

func TestKeywordRecognizer(t *testing.T) {
	rec := NewKeywordRecognizer(testCatalog(t))
	ctx := context.Background()

	t.Run("should turn a filename keyword into a single candidate", func(t *testing.T) {
		result, err := rec.Recognize(ctx, types.ImageInput{Filename: "IMG_2031_couscous.jpg"})

		require.NoError(t, err)
		assert.Equal(t, ProviderFilenameKeyword, result.Provider)
		require.Len(t, result.Foods, 1)
		assert.Equal(t, "couscous", result.Foods[0].Name)
		assert.Equal(t, 0.75, result.Foods[0].Confidence)
		assert.Equal(t, 250.0, result.Foods[0].EstimatedPortion.Amount)
	})

	t.Run("should report unmatched filenames", func(t *testing.T) {
		_, err := rec.Recognize(ctx, types.ImageInput{Filename: "IMG_1234.jpg"})
		assert.ErrorIs(t, err, ErrNoKeywordMatch)
	})
}

func TestVisionRecognizer(t *testing.T) {
	catalog := testCatalog(t)
	ctx := context.Background()

	t.Run("should map concepts above the confidence floor", func(t *testing.T) {
		imageData := []byte("fake image bytes")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Key secret", r.Header.Get("Authorization"))

			var req visionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Inputs, 1)
			decoded, err := base64.StdEncoding.DecodeString(req.Inputs[0].Data.Image.Base64)
			require.NoError(t, err)
			assert.Equal(t, imageData, decoded)

			fmt.Fprint(w, `{"outputs":[{"data":{"concepts":[
				{"name":"grilled chicken","value":0.98},
				{"name":"rice","value":0.71},
				{"name":"parsley","value":0.12}]}}]}`)
		}))
		defer server.Close()

		rec := NewVisionRecognizer(catalog, server.URL, "secret")
		result, err := rec.Recognize(ctx, types.ImageInput{Data: imageData, Filename: "plate.jpg"})

		require.NoError(t, err)
		assert.Equal(t, ProviderVisionAPI, result.Provider)
		require.Len(t, result.Foods, 2)
		assert.Equal(t, "grilled chicken", result.Foods[0].Name)
		assert.Equal(t, 0.98, result.Foods[0].Confidence)
		assert.Equal(t, 150.0, result.Foods[0].EstimatedPortion.Amount)
		assert.Equal(t, "rice", result.Foods[1].Name)
	})

	t.Run("should cap candidates at five", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"outputs":[{"data":{"concepts":[
				{"name":"rice","value":0.9},{"name":"pasta","value":0.9},
				{"name":"salad","value":0.9},{"name":"bread","value":0.9},
				{"name":"eggs","value":0.9},{"name":"milk","value":0.9},
				{"name":"banana","value":0.9}]}}]}`)
		}))
		defer server.Close()

		rec := NewVisionRecognizer(catalog, server.URL, "secret")
		result, err := rec.Recognize(ctx, types.ImageInput{Data: []byte("img")})

		require.NoError(t, err)
		assert.Len(t, result.Foods, 5)
	})

	t.Run("should fail when the model returns no outputs", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"outputs":[]}`)
		}))
		defer server.Close()

		rec := NewVisionRecognizer(catalog, server.URL, "secret")
		_, err := rec.Recognize(ctx, types.ImageInput{Data: []byte("img")})

		assert.Error(t, err)
	})

	t.Run("should fail when every concept is below the floor", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"outputs":[{"data":{"concepts":[{"name":"fork","value":0.1}]}}]}`)
		}))
		defer server.Close()

		rec := NewVisionRecognizer(catalog, server.URL, "secret")
		_, err := rec.Recognize(ctx, types.ImageInput{Data: []byte("img")})

		assert.Error(t, err)
	})

	t.Run("should fail on server errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		rec := NewVisionRecognizer(catalog, server.URL, "secret")
		_, err := rec.Recognize(ctx, types.ImageInput{Data: []byte("img")})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
	})
}

func TestHeuristicRecognizer(t *testing.T) {
	catalog := testCatalog(t)
	rec := NewHeuristicRecognizer(NewColorProfiler(), NewHeuristicClassifier(catalog))
	ctx := context.Background()

	t.Run("should classify in-memory images", func(t *testing.T) {
		data := encodePNG(t, uniformImage(100, 100, color.RGBA{R: 255, G: 255, B: 255, A: 255}))

		result, err := rec.Recognize(ctx, types.ImageInput{Data: data, Filename: "upload.png"})

		require.NoError(t, err)
		assert.Equal(t, ProviderImageAnalysis, result.Provider)
		require.NotEmpty(t, result.Foods)
		assert.Equal(t, "white rice", result.Foods[0].Name)
	})

	t.Run("should classify images from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plate.png")
		require.NoError(t, os.WriteFile(path, encodePNG(t, uniformImage(100, 100, color.RGBA{R: 120, G: 200, B: 110, A: 255})), 0o644))

		result, err := rec.Recognize(ctx, types.ImageInput{Path: path, Filename: "plate.png"})

		require.NoError(t, err)
		require.NotEmpty(t, result.Foods)
		assert.Equal(t, "mixed salad", result.Foods[0].Name)
	})

	t.Run("should propagate decode failures", func(t *testing.T) {
		_, err := rec.Recognize(ctx, types.ImageInput{Data: []byte("junk"), Filename: "junk.png"})
		assert.ErrorIs(t, err, ErrImageDecode)
	})
}
