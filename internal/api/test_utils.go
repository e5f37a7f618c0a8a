package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/MoetezAbbassi/mealscan/internal/service"
)

// newTestServices builds the real service stack on the embedded
// catalog, with no external nutrition API, cache or archival.
func newTestServices(t *testing.T) (service.IMealService, service.IEquipmentService) {
	t.Helper()

	catalog, err := service.LoadCatalog()
	require.NoError(t, err)

	profiler := service.NewColorProfiler()
	classifier := service.NewHeuristicClassifier(catalog)
	resolver := service.NewNutritionResolver(catalog, nil)
	aggregator := service.NewMealAggregator()

	mealService := service.NewMealService(catalog, resolver, aggregator,
		service.NewKeywordRecognizer(catalog),
		service.NewHeuristicRecognizer(profiler, classifier),
	)
	return mealService, service.NewEquipmentService(catalog)
}

// newTestRouter creates a router with every route registered and no
// optional integrations.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mealService, equipmentService := newTestServices(t)

	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	mealHandler := NewMealHandler(mealService, nil, t.TempDir(), 10<<20, nil)
	foodHandler := NewFoodHandler(mealService)
	equipmentHandler := NewEquipmentHandler(equipmentService, nil, nil)

	mealHandler.RegisterRoutes(v1)
	foodHandler.RegisterRoutes(v1)
	equipmentHandler.RegisterRoutes(v1)

	return router
}

// PerformRequest is a helper function to make HTTP requests in tests
func PerformRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	router.ServeHTTP(w, req)
	return w
}

// PerformUpload posts data as a multipart file upload under the given
// form field
func PerformUpload(t *testing.T, router *gin.Engine, path, field, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
