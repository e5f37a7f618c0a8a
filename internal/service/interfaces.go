package service

import (
	"context"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

// IMealService defines the interface for meal recognition and analysis
// operations
type IMealService interface {
	RecognizeAndAnalyze(ctx context.Context, input types.ImageInput) (*types.MealRecognition, error)
	Analyze(ctx context.Context, items []types.FoodItem) *types.MealAnalysis
	ParseDescription(description string) []types.FoodItem
	SearchFoods(query string, limit int) []types.FoodSummary
	FoodDetails(name string) (types.FoodSummary, error)
}

// IEquipmentService defines the interface for equipment identification
// operations
type IEquipmentService interface {
	Identify(input types.ImageInput) types.EquipmentPrediction
	SuggestExercises(key, difficulty string) ([]types.ExerciseSuggestion, error)
	Info(key string) (types.EquipmentInfo, error)
	List() []types.EquipmentInfo
}
