package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

func TestUSDAClient_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("should map nutrients and scale to the quantity", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/foods/search", r.URL.Path)
			query := r.URL.Query()
			assert.Equal(t, "test-key", query.Get("api_key"))
			assert.Equal(t, "quinoa", query.Get("query"))
			assert.Equal(t, "1", query.Get("pageSize"))
			assert.Equal(t, []string{"Foundation", "SR Legacy"}, query["dataType"])

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"foods":[{"description":"Quinoa, cooked","foodNutrients":[
				{"nutrientName":"Energy","value":120},
				{"nutrientName":"Protein","value":4.4},
				{"nutrientName":"Carbohydrate, by difference","value":21.3},
				{"nutrientName":"Total lipid (fat)","value":1.9},
				{"nutrientName":"Fiber, total dietary","value":2.8}]}]}`)
		}))
		defer server.Close()

		client := NewUSDAClient("test-key", server.URL, nil)
		record, err := client.Lookup(ctx, "quinoa", 200, "g")

		require.NoError(t, err)
		assert.Equal(t, "Quinoa, cooked", record.FoodName)
		assert.Equal(t, 200.0, record.Quantity)
		assert.Equal(t, 240.0, record.Calories)
		assert.Equal(t, 8.8, record.Protein)
		assert.Equal(t, 42.6, record.Carbs)
		assert.Equal(t, 3.8, record.Fats)
		assert.Equal(t, types.SourceExternalAPI, record.Source)
	})

	t.Run("should default the quantity to 100g", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"foods":[{"description":"Kiwifruit, raw","foodNutrients":[{"nutrientName":"Energy","value":61}]}]}`)
		}))
		defer server.Close()

		client := NewUSDAClient("test-key", server.URL, nil)
		record, err := client.Lookup(ctx, "kiwi", 0, "")

		require.NoError(t, err)
		assert.Equal(t, 100.0, record.Quantity)
		assert.Equal(t, "g", record.Unit)
		assert.Equal(t, 61.0, record.Calories)
	})

	t.Run("should fail when nothing matches", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"foods":[]}`)
		}))
		defer server.Close()

		client := NewUSDAClient("test-key", server.URL, nil)
		_, err := client.Lookup(ctx, "unobtainium", 100, "g")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no nutrition data")
	})

	t.Run("should fail on server errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewUSDAClient("test-key", server.URL, nil)
		_, err := client.Lookup(ctx, "quinoa", 100, "g")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})
}

func TestNutritionResolver_ExternalFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("should prefer the external record for unknown foods", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"foods":[{"description":"Dragon fruit, raw","foodNutrients":[{"nutrientName":"Energy","value":60},{"nutrientName":"Protein","value":1.2}]}]}`)
		}))
		defer server.Close()

		resolver := NewNutritionResolver(testCatalog(t), NewUSDAClient("test-key", server.URL, nil))
		record := resolver.Resolve(ctx, "dragon fruit", 100, "g")

		assert.Equal(t, "Dragon fruit, raw", record.FoodName)
		assert.Equal(t, types.SourceExternalAPI, record.Source)
	})

	t.Run("should degrade to an estimate when the API fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		resolver := NewNutritionResolver(testCatalog(t), NewUSDAClient("test-key", server.URL, nil))
		record := resolver.Resolve(ctx, "dragon fruit", 100, "g")

		assert.Equal(t, types.SourceEstimated, record.Source)
		assert.Equal(t, 150.0, record.Calories)
	})

	t.Run("should never call the API for table foods", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected nutrition API call for a local table food")
		}))
		defer server.Close()

		resolver := NewNutritionResolver(testCatalog(t), NewUSDAClient("test-key", server.URL, nil))
		record := resolver.Resolve(ctx, "chicken breast", 150, "g")

		assert.Equal(t, types.SourceLocalDatabase, record.Source)
	})
}
