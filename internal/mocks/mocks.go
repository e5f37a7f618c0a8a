package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

// MockMealService is a mock implementation of the meal service
type MockMealService struct {
	mock.Mock
}

// RecognizeAndAnalyze mocks the RecognizeAndAnalyze method
func (m *MockMealService) RecognizeAndAnalyze(ctx context.Context, input types.ImageInput) (*types.MealRecognition, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MealRecognition), args.Error(1)
}

// Analyze mocks the Analyze method
func (m *MockMealService) Analyze(ctx context.Context, items []types.FoodItem) *types.MealAnalysis {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*types.MealAnalysis)
}

// ParseDescription mocks the ParseDescription method
func (m *MockMealService) ParseDescription(description string) []types.FoodItem {
	args := m.Called(description)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]types.FoodItem)
}

// SearchFoods mocks the SearchFoods method
func (m *MockMealService) SearchFoods(query string, limit int) []types.FoodSummary {
	args := m.Called(query, limit)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]types.FoodSummary)
}

// FoodDetails mocks the FoodDetails method
func (m *MockMealService) FoodDetails(name string) (types.FoodSummary, error) {
	args := m.Called(name)
	return args.Get(0).(types.FoodSummary), args.Error(1)
}

// MockEquipmentService is a mock implementation of the equipment service
type MockEquipmentService struct {
	mock.Mock
}

// Identify mocks the Identify method
func (m *MockEquipmentService) Identify(input types.ImageInput) types.EquipmentPrediction {
	args := m.Called(input)
	return args.Get(0).(types.EquipmentPrediction)
}

// SuggestExercises mocks the SuggestExercises method
func (m *MockEquipmentService) SuggestExercises(key, difficulty string) ([]types.ExerciseSuggestion, error) {
	args := m.Called(key, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ExerciseSuggestion), args.Error(1)
}

// Info mocks the Info method
func (m *MockEquipmentService) Info(key string) (types.EquipmentInfo, error) {
	args := m.Called(key)
	return args.Get(0).(types.EquipmentInfo), args.Error(1)
}

// List mocks the List method
func (m *MockEquipmentService) List() []types.EquipmentInfo {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]types.EquipmentInfo)
}
