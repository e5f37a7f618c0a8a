package service

import (
	"github.com/MoetezAbbassi/mealscan/internal/types"
)

// Calories per gram of each macro nutrient.
const (
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFats    = 9
)

// MealAggregator folds nutrition records into meal totals and macro
// percentage splits. Both operations are pure and always recompute
// from the full record set.
type MealAggregator struct{}

// NewMealAggregator creates an aggregator.
func NewMealAggregator() *MealAggregator {
	return &MealAggregator{}
}

// Aggregate sums calories and macros across records, rounded to one
// decimal. An empty record set yields all zeros.
func (a *MealAggregator) Aggregate(records []types.NutritionRecord) types.MealTotals {
	var totals types.MealTotals
	for _, r := range records {
		totals.Calories += r.Calories
		totals.Protein += r.Protein
		totals.Carbs += r.Carbs
		totals.Fats += r.Fats
	}
	totals.Calories = round1(totals.Calories)
	totals.Protein = round1(totals.Protein)
	totals.Carbs = round1(totals.Carbs)
	totals.Fats = round1(totals.Fats)
	return totals
}

// MacroSplit expresses each macro's share of the meal's caloric content
// using the 4/4/9 kcal-per-gram convention, rounded to two decimals.
// A meal with no macro calories splits to all zeros.
func (a *MealAggregator) MacroSplit(totals types.MealTotals) types.MacroPercentages {
	proteinCal := totals.Protein * caloriesPerGramProtein
	carbsCal := totals.Carbs * caloriesPerGramCarbs
	fatsCal := totals.Fats * caloriesPerGramFats

	macroCal := proteinCal + carbsCal + fatsCal
	if macroCal == 0 {
		return types.MacroPercentages{}
	}

	return types.MacroPercentages{
		Protein: round2(proteinCal / macroCal * 100),
		Carbs:   round2(carbsCal / macroCal * 100),
		Fats:    round2(fatsCal / macroCal * 100),
	}
}
