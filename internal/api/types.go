package api

import "github.com/MoetezAbbassi/mealscan/internal/types"

// AnalyzeTextRequest carries the foods to analyze, either as structured
// items or as a free text description. One of the two is required.
type AnalyzeTextRequest struct {
	Items       []types.FoodItem `json:"items"`
	Description string           `json:"description"`
}

// ImageAnalysisResponse is the recognition result plus the URL of the
// archived upload when archival is enabled.
type ImageAnalysisResponse struct {
	types.MealRecognition
	ArchiveURL string `json:"archive_url,omitempty"`
}

// SearchResponse lists the foods matching a search query.
type SearchResponse struct {
	Results []types.FoodSummary `json:"results"`
	Count   int                 `json:"count"`
}

// EquipmentIdentifyResponse is the predicted machine plus its exercise
// suggestions and catalog info.
type EquipmentIdentifyResponse struct {
	types.EquipmentPrediction
	Exercises  []types.ExerciseSuggestion `json:"exercises"`
	Info       types.EquipmentInfo        `json:"info"`
	ArchiveURL string                     `json:"archive_url,omitempty"`
}

// EquipmentListResponse lists every machine in the catalog.
type EquipmentListResponse struct {
	Equipment []types.EquipmentInfo `json:"equipment"`
	Count     int                   `json:"count"`
}

// ExerciseListResponse lists the suggested exercises for one machine.
type ExerciseListResponse struct {
	Equipment   string                     `json:"equipment"`
	DisplayName string                     `json:"display_name"`
	Exercises   []types.ExerciseSuggestion `json:"exercises"`
	Count       int                        `json:"count"`
}
