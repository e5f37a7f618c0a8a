package types

// EquipmentPrediction identifies a piece of gym equipment from an image.
type EquipmentPrediction struct {
	Equipment   string  `json:"equipment"`
	DisplayName string  `json:"display_name"`
	Confidence  float64 `json:"confidence"`
	Method      string  `json:"method"`
}

// ExerciseSuggestion is a recommended exercise for a piece of equipment.
// RecommendedReps is nil for cardio work, RecommendedDuration is nil for
// everything else.
type ExerciseSuggestion struct {
	Name                    string `json:"name"`
	PrimaryMuscle           string `json:"primary_muscle"`
	Difficulty              string `json:"difficulty"`
	EstimatedCaloriesPerSet int    `json:"estimated_calories_per_set"`
	RecommendedSets         int    `json:"recommended_sets"`
	RecommendedReps         *int   `json:"recommended_reps"`
	RecommendedDuration     *int   `json:"recommended_duration"`
}

// EquipmentInfo describes one equipment entry in the catalog.
type EquipmentInfo struct {
	Key              string   `json:"key"`
	DisplayName      string   `json:"display_name"`
	PrimaryMuscles   []string `json:"primary_muscles"`
	SecondaryMuscles []string `json:"secondary_muscles"`
	TotalExercises   int      `json:"total_exercises"`
}
