package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

const (
	defaultEquipmentKey        = "dumbbell"
	defaultEquipmentConfidence = 0.5
	equipmentKeywordConfidence = 0.75
	maxExerciseSuggestions     = 6

	recommendedSets       = 3
	recommendedReps       = 10
	cardioDurationSeconds = 300
)

// Identification methods recorded on predictions.
const (
	MethodFilenameKeyword = "filename_keyword"
	MethodDefault         = "default"
)

// ErrUnknownEquipment reports a lookup for a key missing from the
// equipment catalog.
var ErrUnknownEquipment = errors.New("equipment not found")

// EquipmentService identifies gym machines from upload filenames and
// suggests exercises for them.
type EquipmentService struct {
	catalog *Catalog
}

func NewEquipmentService(catalog *Catalog) *EquipmentService {
	return &EquipmentService{catalog: catalog}
}

// IdentifyFromFilename scans the filename for equipment keywords in
// catalog order. Returns the empty key when nothing matches.
func (s *EquipmentService) IdentifyFromFilename(filename string) (string, float64) {
	lower := strings.ToLower(filename)
	for _, entry := range s.catalog.Equipment() {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				return entry.Key, equipmentKeywordConfidence
			}
		}
	}
	return "", 0
}

// Identify predicts the equipment in an upload. Today only the filename
// is inspected; unmatched uploads fall back to dumbbell at low
// confidence.
func (s *EquipmentService) Identify(input types.ImageInput) types.EquipmentPrediction {
	key, confidence := s.IdentifyFromFilename(input.Filename)
	method := MethodFilenameKeyword
	if key == "" {
		key = defaultEquipmentKey
		confidence = defaultEquipmentConfidence
		method = MethodDefault
	}

	entry, _ := s.catalog.EquipmentByKey(key)
	return types.EquipmentPrediction{
		Equipment:   key,
		DisplayName: entry.DisplayName,
		Confidence:  confidence,
		Method:      method,
	}
}

// SuggestExercises returns up to six exercises for a machine, optionally
// filtered by difficulty. Per-set calories scale with difficulty; cardio
// movements get a duration instead of a rep count.
func (s *EquipmentService) SuggestExercises(key, difficulty string) ([]types.ExerciseSuggestion, error) {
	entry, ok := s.catalog.EquipmentByKey(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEquipment, key)
	}

	suggestions := make([]types.ExerciseSuggestion, 0, maxExerciseSuggestions)
	for _, ex := range entry.Exercises {
		if difficulty != "" && ex.Difficulty != difficulty {
			continue
		}
		suggestions = append(suggestions, suggestExercise(ex))
		if len(suggestions) == maxExerciseSuggestions {
			break
		}
	}
	return suggestions, nil
}

func suggestExercise(ex Exercise) types.ExerciseSuggestion {
	suggestion := types.ExerciseSuggestion{
		Name:                    ex.Name,
		PrimaryMuscle:           ex.Muscle,
		Difficulty:              ex.Difficulty,
		EstimatedCaloriesPerSet: caloriesPerSet(ex.Difficulty),
		RecommendedSets:         recommendedSets,
	}
	if ex.Muscle == "cardio" {
		duration := cardioDurationSeconds
		suggestion.RecommendedDuration = &duration
	} else {
		reps := recommendedReps
		suggestion.RecommendedReps = &reps
	}
	return suggestion
}

func caloriesPerSet(difficulty string) int {
	switch difficulty {
	case "beginner":
		return 8
	case "intermediate":
		return 12
	default:
		return 15
	}
}

// Info summarizes one catalog entry.
func (s *EquipmentService) Info(key string) (types.EquipmentInfo, error) {
	entry, ok := s.catalog.EquipmentByKey(key)
	if !ok {
		return types.EquipmentInfo{}, fmt.Errorf("%w: %s", ErrUnknownEquipment, key)
	}
	return types.EquipmentInfo{
		Key:              entry.Key,
		DisplayName:      entry.DisplayName,
		PrimaryMuscles:   entry.PrimaryMuscles,
		SecondaryMuscles: entry.SecondaryMuscles,
		TotalExercises:   len(entry.Exercises),
	}, nil
}

// List returns info for every machine in catalog order.
func (s *EquipmentService) List() []types.EquipmentInfo {
	infos := make([]types.EquipmentInfo, 0, len(s.catalog.Equipment()))
	for _, entry := range s.catalog.Equipment() {
		infos = append(infos, types.EquipmentInfo{
			Key:              entry.Key,
			DisplayName:      entry.DisplayName,
			PrimaryMuscles:   entry.PrimaryMuscles,
			SecondaryMuscles: entry.SecondaryMuscles,
			TotalExercises:   len(entry.Exercises),
		})
	}
	return infos
}
