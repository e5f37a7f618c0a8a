package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

const maxSearchResults = 20

var (
	// ErrNoFoodDetected reports that no strategy produced any candidates.
	ErrNoFoodDetected = errors.New("no foods detected in image")
	// ErrUnknownFood reports a lookup for a food missing from the table.
	ErrUnknownFood = errors.New("food not found")
)

var (
	descriptionSplitter = regexp.MustCompile(`,|\band\b`)
	foodQuantityPattern = regexp.MustCompile(`(?i)^(.+?)\s+(\d+(?:\.\d+)?)\s*(g|kg|ml|l|oz|cup|cups|slice|slices|piece|pieces)?$`)
)

// MealService ties the recognition strategies, the nutrition resolver and
// the aggregator into the operations the API and CLI expose.
type MealService struct {
	catalog     *Catalog
	resolver    *NutritionResolver
	aggregator  *MealAggregator
	recognizers []Recognizer
}

// NewMealService creates a meal service. Recognizers are tried in the
// order given until one produces candidates.
func NewMealService(catalog *Catalog, resolver *NutritionResolver, aggregator *MealAggregator, recognizers ...Recognizer) *MealService {
	return &MealService{
		catalog:     catalog,
		resolver:    resolver,
		aggregator:  aggregator,
		recognizers: recognizers,
	}
}

// RecognizeAndAnalyze runs the full pipeline on one image: recognize
// candidates, resolve nutrition for each estimated portion, aggregate
// totals and macro percentages.
func (s *MealService) RecognizeAndAnalyze(ctx context.Context, input types.ImageInput) (*types.MealRecognition, error) {
	result, err := s.recognize(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(result.Foods) == 0 {
		return nil, ErrNoFoodDetected
	}

	names := make([]string, 0, len(result.Foods))
	recognized := make([]types.RecognizedFood, 0, len(result.Foods))
	records := make([]types.NutritionRecord, 0, len(result.Foods))
	for _, food := range result.Foods {
		record := s.resolver.Resolve(ctx, food.Name, food.EstimatedPortion.Amount, food.EstimatedPortion.Unit)
		records = append(records, record)
		names = append(names, record.FoodName)
		recognized = append(recognized, types.RecognizedFood{
			FoodName:   record.FoodName,
			Quantity:   record.Quantity,
			Unit:       record.Unit,
			Calories:   record.Calories,
			Protein:    record.Protein,
			Carbs:      record.Carbs,
			Fats:       record.Fats,
			Confidence: round2(food.Confidence),
			Source:     record.Source,
		})
	}

	totals := s.aggregator.Aggregate(records)
	return &types.MealRecognition{
		Description:     strings.Join(names, ", "),
		RecognizedFoods: recognized,
		Totals:          totals,
		Macros:          s.aggregator.MacroSplit(totals),
		Provider:        result.Provider,
		Count:           len(recognized),
	}, nil
}

// recognize tries each strategy in order and returns the first non-empty
// result. When every strategy fails the last error is returned so decode
// failures from the color heuristic stay visible to the caller.
func (s *MealService) recognize(ctx context.Context, input types.ImageInput) (*types.RecognitionResult, error) {
	var lastErr error
	for _, rec := range s.recognizers {
		result, err := rec.Recognize(ctx, input)
		if err != nil {
			if !errors.Is(err, ErrNoKeywordMatch) {
				log.Printf("[MealService] recognition strategy failed: %v", err)
			}
			lastErr = err
			continue
		}
		if len(result.Foods) > 0 {
			return result, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoFoodDetected
}

// Analyze resolves nutrition for a caller-supplied item list and sums it.
// Items without a name are skipped.
func (s *MealService) Analyze(ctx context.Context, items []types.FoodItem) *types.MealAnalysis {
	records := make([]types.NutritionRecord, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.FoodName) == "" {
			continue
		}
		records = append(records, s.resolver.Resolve(ctx, item.FoodName, item.Quantity, item.Unit))
	}

	totals := s.aggregator.Aggregate(records)
	return &types.MealAnalysis{
		Items:     records,
		Totals:    totals,
		Macros:    s.aggregator.MacroSplit(totals),
		ItemCount: len(records),
	}
}

// ParseDescription turns a free-text meal description such as
// "chicken breast 200g, rice 150g and salad" into food items. Segments
// without a quantity default to 100g.
func (s *MealService) ParseDescription(description string) []types.FoodItem {
	var items []types.FoodItem
	for _, part := range descriptionSplitter.Split(description, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		match := foodQuantityPattern.FindStringSubmatch(part)
		if match == nil {
			items = append(items, types.FoodItem{FoodName: part, Quantity: 100, Unit: "g"})
			continue
		}

		quantity, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			quantity = 100
		}
		unit := strings.ToLower(match[3])
		if unit == "" {
			unit = "g"
		}
		items = append(items, types.FoodItem{
			FoodName: strings.TrimSpace(match[1]),
			Quantity: quantity,
			Unit:     unit,
		})
	}
	return items
}

// SearchFoods searches the nutrition table. Limit defaults to 20 and is
// capped there.
func (s *MealService) SearchFoods(query string, limit int) []types.FoodSummary {
	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}
	return s.catalog.SearchFoods(query, limit)
}

// FoodDetails returns the per-100 values and default serving for one
// table entry.
func (s *MealService) FoodDetails(name string) (types.FoodSummary, error) {
	entry, ok := s.catalog.Food(name)
	if !ok {
		return types.FoodSummary{}, fmt.Errorf("%w: %s", ErrUnknownFood, name)
	}
	return types.FoodSummary{
		FoodName:        titleCaser.String(NormalizeFoodName(name)),
		CaloriesPer100g: entry.Calories,
		ProteinPer100g:  entry.Protein,
		CarbsPer100g:    entry.Carbs,
		FatsPer100g:     entry.Fats,
		DefaultServing:  entry.ServingSize,
		DefaultUnit:     entry.Unit,
	}, nil
}
