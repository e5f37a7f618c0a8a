package service

import (
	"context"
	"log"
	"math"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

// Generic per-100g estimate applied to foods missing from both the
// local table and the external API.
const (
	estimateCalories = 150
	estimateProtein  = 8
	estimateCarbs    = 15
	estimateFats     = 6
)

const estimateNote = "Nutrition estimated - values may vary"

// NutritionResolver maps food names to nutrition records. Lookups try
// the local table first, then the external API when one is configured,
// and finally degrade to a generic estimate. Resolution never fails
// from the caller's point of view.
type NutritionResolver struct {
	catalog *Catalog
	usda    *USDAClient
}

// NewNutritionResolver creates a resolver over the catalog. The USDA
// client is optional; pass nil to disable external lookups.
func NewNutritionResolver(catalog *Catalog, usda *USDAClient) *NutritionResolver {
	return &NutritionResolver{catalog: catalog, usda: usda}
}

// Resolve produces the nutrition record for one food item, scaled to
// the requested quantity. Quantity <= 0 selects the food's default
// serving. Unknown foods and API failures yield an estimated record.
func (r *NutritionResolver) Resolve(ctx context.Context, name string, quantity float64, unit string) types.NutritionRecord {
	if entry, ok := r.catalog.Food(name); ok {
		if quantity <= 0 {
			quantity = entry.ServingSize
			unit = entry.Unit
		}
		if unit == "" {
			unit = entry.Unit
		}
		multiplier := quantity / 100
		return types.NutritionRecord{
			FoodName: name,
			Quantity: quantity,
			Unit:     unit,
			Calories: round1(entry.Calories * multiplier),
			Protein:  round1(entry.Protein * multiplier),
			Carbs:    round1(entry.Carbs * multiplier),
			Fats:     round1(entry.Fats * multiplier),
			Source:   types.SourceLocalDatabase,
		}
	}

	if r.usda != nil {
		record, err := r.usda.Lookup(ctx, name, quantity, unit)
		if err == nil {
			return record
		}
		log.Printf("[NutritionResolver] external lookup failed for %q: %v", name, err)
	}

	return r.estimate(name, quantity, unit)
}

// EstimatePortion returns the typical serving for a food name.
func (r *NutritionResolver) EstimatePortion(name string) types.Portion {
	return r.catalog.EstimatePortion(name)
}

func (r *NutritionResolver) estimate(name string, quantity float64, unit string) types.NutritionRecord {
	if quantity <= 0 {
		quantity = 100
	}
	if unit == "" {
		unit = "g"
	}
	multiplier := quantity / 100
	return types.NutritionRecord{
		FoodName: name,
		Quantity: quantity,
		Unit:     unit,
		Calories: round1(estimateCalories * multiplier),
		Protein:  round1(estimateProtein * multiplier),
		Carbs:    round1(estimateCarbs * multiplier),
		Fats:     round1(estimateFats * multiplier),
		Source:   types.SourceEstimated,
		Note:     estimateNote,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
