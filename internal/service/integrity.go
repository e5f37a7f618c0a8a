package service

import "fmt"

var validDifficulties = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

// Verify cross-checks the embedded data tables and returns a list of
// problems, empty when everything is consistent. It backs the CLI check
// command so data edits get caught before a release.
func (c *Catalog) Verify() []string {
	var problems []string

	if len(c.foods) == 0 {
		problems = append(problems, "nutrition table is empty")
	}
	for name, entry := range c.foods {
		if entry.Calories < 0 || entry.Protein < 0 || entry.Carbs < 0 || entry.Fats < 0 {
			problems = append(problems, fmt.Sprintf("food %q has negative nutrition values", name))
		}
		if entry.ServingSize <= 0 {
			problems = append(problems, fmt.Sprintf("food %q has no default serving", name))
		}
		if entry.Unit != "g" && entry.Unit != "ml" {
			problems = append(problems, fmt.Sprintf("food %q has unsupported unit %q", name, entry.Unit))
		}
	}

	for _, entry := range c.keywords {
		if entry.Keyword == "" || entry.Label == "" {
			problems = append(problems, "keyword table has an entry with an empty keyword or label")
			continue
		}
		if _, ok := c.Food(entry.Label); !ok {
			problems = append(problems, fmt.Sprintf("keyword %q points at unknown food %q", entry.Keyword, entry.Label))
		}
	}

	for _, cat := range c.portions {
		if cat.Unit != "g" && cat.Unit != "ml" {
			problems = append(problems, fmt.Sprintf("portion category %q has unsupported unit %q", cat.Category, cat.Unit))
		}
		for _, def := range cat.Defaults {
			if def.Match == "" || def.Amount <= 0 {
				problems = append(problems, fmt.Sprintf("portion category %q has a malformed default", cat.Category))
			}
		}
	}

	if len(c.equipment) == 0 {
		problems = append(problems, "equipment catalog is empty")
	}
	for _, machine := range c.equipment {
		if machine.Key == "" || machine.DisplayName == "" {
			problems = append(problems, fmt.Sprintf("equipment %q is missing its key or display name", machine.Key))
		}
		if len(machine.Keywords) == 0 {
			problems = append(problems, fmt.Sprintf("equipment %q has no filename keywords", machine.Key))
		}
		if len(machine.PrimaryMuscles) == 0 {
			problems = append(problems, fmt.Sprintf("equipment %q has no primary muscles", machine.Key))
		}
		if len(machine.Exercises) == 0 {
			problems = append(problems, fmt.Sprintf("equipment %q has no exercises", machine.Key))
		}
		for _, ex := range machine.Exercises {
			if ex.Name == "" || ex.Muscle == "" {
				problems = append(problems, fmt.Sprintf("equipment %q has a malformed exercise", machine.Key))
			}
			if !validDifficulties[ex.Difficulty] {
				problems = append(problems, fmt.Sprintf("exercise %q has unknown difficulty %q", ex.Name, ex.Difficulty))
			}
		}
	}

	if _, ok := c.EquipmentByKey(defaultEquipmentKey); !ok {
		problems = append(problems, fmt.Sprintf("default equipment %q is not in the catalog", defaultEquipmentKey))
	}

	return problems
}
