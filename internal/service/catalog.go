package service

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

//go:embed data/*.json
var dataFiles embed.FS

// FoodEntry holds nutrition values per 100g/ml plus the typical serving.
type FoodEntry struct {
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
	ServingSize float64 `json:"serving_size"`
	Unit        string  `json:"unit"`
}

// Exercise is one movement that can be performed on a piece of equipment.
type Exercise struct {
	Name       string `json:"name"`
	Muscle     string `json:"muscle"`
	Difficulty string `json:"difficulty"`
}

// EquipmentEntry describes one machine in the equipment catalog.
type EquipmentEntry struct {
	Key              string     `json:"key"`
	DisplayName      string     `json:"display_name"`
	Keywords         []string   `json:"keywords"`
	PrimaryMuscles   []string   `json:"primary_muscles"`
	SecondaryMuscles []string   `json:"secondary_muscles"`
	Exercises        []Exercise `json:"exercises"`
}

type portionDefault struct {
	Match  string  `json:"match"`
	Amount float64 `json:"amount"`
}

type portionCategory struct {
	Category string           `json:"category"`
	Unit     string           `json:"unit"`
	Defaults []portionDefault `json:"defaults"`
}

type keywordEntry struct {
	Keyword string `json:"keyword"`
	Label   string `json:"label"`
}

// Catalog is the static data backing the recognition and nutrition
// services: the nutrition table, portion defaults, filename keywords
// and the gym equipment catalog. Loaded once at startup and read-only
// afterwards, so it is safe for concurrent use.
type Catalog struct {
	foods     map[string]FoodEntry
	portions  []portionCategory
	keywords  []keywordEntry
	equipment []EquipmentEntry
	byKey     map[string]*EquipmentEntry
}

var titleCaser = cases.Title(language.English)

// LoadCatalog parses the embedded data tables.
func LoadCatalog() (*Catalog, error) {
	c := &Catalog{
		foods: make(map[string]FoodEntry),
		byKey: make(map[string]*EquipmentEntry),
	}

	if err := loadJSON("data/foods.json", &c.foods); err != nil {
		return nil, err
	}
	if err := loadJSON("data/portions.json", &c.portions); err != nil {
		return nil, err
	}
	if err := loadJSON("data/keywords.json", &c.keywords); err != nil {
		return nil, err
	}
	if err := loadJSON("data/equipment.json", &c.equipment); err != nil {
		return nil, err
	}

	for i := range c.equipment {
		c.byKey[c.equipment[i].Key] = &c.equipment[i]
	}

	return c, nil
}

func loadJSON(name string, v interface{}) error {
	data, err := dataFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// NormalizeFoodName lowercases and trims a food name for table lookups.
func NormalizeFoodName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Food looks up a food by normalized name.
func (c *Catalog) Food(name string) (FoodEntry, bool) {
	entry, ok := c.foods[NormalizeFoodName(name)]
	return entry, ok
}

// Foods returns the full nutrition table. Callers must treat it as
// read-only.
func (c *Catalog) Foods() map[string]FoodEntry {
	return c.foods
}

// SearchFoods returns table entries whose name contains the query,
// exact-prefix matches first, then alphabetically. Names are
// title-cased for display.
func (c *Catalog) SearchFoods(query string, limit int) []types.FoodSummary {
	query = NormalizeFoodName(query)

	var results []types.FoodSummary
	for name, entry := range c.foods {
		if !strings.Contains(name, query) {
			continue
		}
		results = append(results, types.FoodSummary{
			FoodName:        titleCaser.String(name),
			CaloriesPer100g: entry.Calories,
			ProteinPer100g:  entry.Protein,
			CarbsPer100g:    entry.Carbs,
			FatsPer100g:     entry.Fats,
			DefaultServing:  entry.ServingSize,
			DefaultUnit:     entry.Unit,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(results[i].FoodName), query)
		pj := strings.HasPrefix(strings.ToLower(results[j].FoodName), query)
		if pi != pj {
			return pi
		}
		return results[i].FoodName < results[j].FoodName
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// EstimatePortion returns the typical serving for a food: the table's
// serving size when the food is known, otherwise a per-category default
// matched by substring, otherwise 100g.
func (c *Catalog) EstimatePortion(name string) types.Portion {
	key := NormalizeFoodName(name)

	if entry, ok := c.foods[key]; ok {
		return types.Portion{Amount: entry.ServingSize, Unit: entry.Unit}
	}

	for _, cat := range c.portions {
		for _, def := range cat.Defaults {
			if strings.Contains(key, def.Match) || strings.Contains(def.Match, key) {
				return types.Portion{Amount: def.Amount, Unit: cat.Unit}
			}
		}
	}

	return types.Portion{Amount: 100, Unit: "g"}
}

// KeywordLabel scans the filename keyword table in order and returns
// the food label for the first keyword contained in name.
func (c *Catalog) KeywordLabel(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, entry := range c.keywords {
		if strings.Contains(name, entry.Keyword) {
			return entry.Label, true
		}
	}
	return "", false
}

// Equipment returns all equipment entries in catalog order.
func (c *Catalog) Equipment() []EquipmentEntry {
	return c.equipment
}

// EquipmentByKey looks up one equipment entry.
func (c *Catalog) EquipmentByKey(key string) (*EquipmentEntry, bool) {
	entry, ok := c.byKey[key]
	return entry, ok
}
