package types

// Nutrition data provenance tags.
const (
	SourceLocalDatabase = "local_database"
	SourceExternalAPI   = "external_api"
	SourceEstimated     = "estimated"
)

// FoodItem is a single food entry submitted for nutrition analysis.
// Quantity <= 0 means "use the default serving for this food".
type FoodItem struct {
	FoodName string  `json:"food_name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// NutritionRecord holds the resolved nutrition for one food item, scaled
// to the requested quantity. Values per 100g/ml come from the local
// table, the external API, or a generic estimate as indicated by Source.
type NutritionRecord struct {
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fats     float64 `json:"fats_g"`
	Source   string  `json:"source"`
	Note     string  `json:"note,omitempty"`
}

// MealTotals is the summed nutrition of a meal, rounded to one decimal.
type MealTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fats     float64 `json:"fats_g"`
}

// MacroPercentages expresses each macro's share of total caloric
// content using the 4/4/9 kcal-per-gram convention.
type MacroPercentages struct {
	Protein float64 `json:"protein_percent"`
	Carbs   float64 `json:"carbs_percent"`
	Fats    float64 `json:"fats_percent"`
}

// MealAnalysis is the result of analyzing a list of food items.
type MealAnalysis struct {
	Items     []NutritionRecord `json:"items"`
	Totals    MealTotals        `json:"totals"`
	Macros    MacroPercentages  `json:"macros"`
	ItemCount int               `json:"item_count"`
}

// RecognizedFood pairs a resolved nutrition record with the recognition
// confidence for that food.
type RecognizedFood struct {
	FoodName   string  `json:"food_name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein_g"`
	Carbs      float64 `json:"carbs_g"`
	Fats       float64 `json:"fats_g"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// MealRecognition is the full image-to-nutrition pipeline result.
type MealRecognition struct {
	Description     string           `json:"description"`
	RecognizedFoods []RecognizedFood `json:"recognized_foods"`
	Totals          MealTotals       `json:"totals"`
	Macros          MacroPercentages `json:"macros"`
	Provider        string           `json:"provider"`
	Count           int              `json:"count"`
}

// FoodSummary is a search hit from the local nutrition table.
type FoodSummary struct {
	FoodName        string  `json:"food_name"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatsPer100g     float64 `json:"fats_per_100g"`
	DefaultServing  float64 `json:"default_serving"`
	DefaultUnit     string  `json:"default_unit"`
}
