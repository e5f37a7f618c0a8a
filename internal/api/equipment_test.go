package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifyEndpoint(t *testing.T) {
	router := newTestRouter(t)

	t.Run("should identify equipment from the filename", func(t *testing.T) {
		w := PerformUpload(t, router, "/api/v1/equipment/identify", "image", "gym_treadmill_01.jpg",
			[]byte("image bytes"))
		require.Equal(t, http.StatusOK, w.Code)

		var resp EquipmentIdentifyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "treadmill", resp.Equipment)
		assert.Equal(t, "Treadmill", resp.DisplayName)
		assert.Equal(t, 0.75, resp.Confidence)
		assert.Equal(t, "filename_keyword", resp.Method)
		assert.Len(t, resp.Exercises, 4)
		assert.Equal(t, 4, resp.Info.TotalExercises)
	})

	t.Run("should fall back to the default machine", func(t *testing.T) {
		w := PerformUpload(t, router, "/api/v1/equipment/identify", "image", "IMG_0099.jpg",
			[]byte("image bytes"))
		require.Equal(t, http.StatusOK, w.Code)

		var resp EquipmentIdentifyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "dumbbell", resp.Equipment)
		assert.Equal(t, 0.5, resp.Confidence)
		assert.Equal(t, "default", resp.Method)
		assert.Len(t, resp.Exercises, 6)
	})

	t.Run("should reject a missing file", func(t *testing.T) {
		w := PerformRequest(router, "POST", "/api/v1/equipment/identify", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "image file is required")
	})

	t.Run("should reject an unsupported extension", func(t *testing.T) {
		w := PerformUpload(t, router, "/api/v1/equipment/identify", "image", "machine.bmp",
			[]byte("image bytes"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEquipmentListEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := PerformRequest(router, "GET", "/api/v1/equipment", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp EquipmentListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 18, resp.Count)
	assert.Equal(t, "barbell", resp.Equipment[0].Key)
}

func TestEquipmentExercisesEndpoint(t *testing.T) {
	router := newTestRouter(t)

	t.Run("should list exercises for a machine", func(t *testing.T) {
		w := PerformRequest(router, "GET", "/api/v1/equipment/treadmill/exercises", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ExerciseListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "treadmill", resp.Equipment)
		assert.Equal(t, "Treadmill", resp.DisplayName)
		assert.Equal(t, 4, resp.Count)
	})

	t.Run("should filter by difficulty", func(t *testing.T) {
		w := PerformRequest(router, "GET", "/api/v1/equipment/treadmill/exercises?difficulty=beginner", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ExerciseListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 2, resp.Count)
		for _, ex := range resp.Exercises {
			assert.Equal(t, "beginner", ex.Difficulty)
		}
	})

	t.Run("should return 404 for an unknown machine", func(t *testing.T) {
		w := PerformRequest(router, "GET", "/api/v1/equipment/hoverboard/exercises", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "equipment not found")
	})
}
