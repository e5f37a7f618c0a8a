package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

func TestNutritionResolver_Resolve(t *testing.T) {
	resolver := NewNutritionResolver(testCatalog(t), nil)
	ctx := context.Background()

	t.Run("should scale local table entries by quantity", func(t *testing.T) {
		record := resolver.Resolve(ctx, "chicken breast", 300, "g")

		assert.Equal(t, "chicken breast", record.FoodName)
		assert.Equal(t, 300.0, record.Quantity)
		assert.Equal(t, "g", record.Unit)
		assert.Equal(t, 495.0, record.Calories)
		assert.Equal(t, 93.0, record.Protein)
		assert.Equal(t, 0.0, record.Carbs)
		assert.Equal(t, 10.8, record.Fats)
		assert.Equal(t, types.SourceLocalDatabase, record.Source)
		assert.Empty(t, record.Note)
	})

	t.Run("should fall back to the default serving when quantity is missing", func(t *testing.T) {
		record := resolver.Resolve(ctx, "Chicken Breast", 0, "")

		assert.Equal(t, 150.0, record.Quantity)
		assert.Equal(t, "g", record.Unit)
		assert.Equal(t, 247.5, record.Calories)
		assert.Equal(t, 46.5, record.Protein)
	})

	t.Run("should take the unit from the table when omitted", func(t *testing.T) {
		record := resolver.Resolve(ctx, "orange juice", 100, "")

		assert.Equal(t, "ml", record.Unit)
		assert.Equal(t, 45.0, record.Calories)
	})

	t.Run("should estimate unknown foods", func(t *testing.T) {
		record := resolver.Resolve(ctx, "mystery stew", 200, "")

		assert.Equal(t, "mystery stew", record.FoodName)
		assert.Equal(t, 200.0, record.Quantity)
		assert.Equal(t, "g", record.Unit)
		assert.Equal(t, 300.0, record.Calories)
		assert.Equal(t, 16.0, record.Protein)
		assert.Equal(t, 30.0, record.Carbs)
		assert.Equal(t, 12.0, record.Fats)
		assert.Equal(t, types.SourceEstimated, record.Source)
		assert.Equal(t, "Nutrition estimated - values may vary", record.Note)
	})

	t.Run("should default estimates to 100g", func(t *testing.T) {
		record := resolver.Resolve(ctx, "mystery stew", 0, "")

		assert.Equal(t, 100.0, record.Quantity)
		assert.Equal(t, 150.0, record.Calories)
	})

	t.Run("should be deterministic for identical inputs", func(t *testing.T) {
		first := resolver.Resolve(ctx, "couscous", 250, "g")
		second := resolver.Resolve(ctx, "couscous", 250, "g")

		assert.Equal(t, first, second)
	})
}

func TestNutritionResolver_EstimatePortion(t *testing.T) {
	resolver := NewNutritionResolver(testCatalog(t), nil)

	portion := resolver.EstimatePortion("grilled salmon fillet")

	require.Equal(t, 150.0, portion.Amount)
	assert.Equal(t, "g", portion.Unit)
}
