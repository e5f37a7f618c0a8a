package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogVerify(t *testing.T) {
	t.Run("should pass on the embedded tables", func(t *testing.T) {
		catalog := testCatalog(t)
		assert.Empty(t, catalog.Verify())
	})

	t.Run("should flag malformed entries", func(t *testing.T) {
		catalog := &Catalog{
			foods: map[string]FoodEntry{
				"ghost pepper": {Calories: -5, ServingSize: 0, Unit: "oz"},
			},
			keywords: []keywordEntry{{Keyword: "ghost", Label: "ectoplasm"}},
			equipment: []EquipmentEntry{{
				Key:         "pogo",
				DisplayName: "Pogo Stick",
				Exercises:   []Exercise{{Name: "Bounce", Muscle: "legs", Difficulty: "extreme"}},
			}},
			byKey: map[string]*EquipmentEntry{},
		}

		problems := catalog.Verify()
		assert.NotEmpty(t, problems)

		joined := ""
		for _, p := range problems {
			joined += p + "\n"
		}
		assert.Contains(t, joined, "ghost pepper")
		assert.Contains(t, joined, "ectoplasm")
		assert.Contains(t, joined, "extreme")
		assert.Contains(t, joined, "dumbbell")
	})
}
