package exercises

import "github.com/verte-zerg/setlog/internal/model"

// DefaultCheckCount is the checkbox set count used when none is configured.
const DefaultCheckCount = 3

// DefaultMaxCheckboxes caps how many checkbox slots are rendered per exercise.
const DefaultMaxCheckboxes = 5

// DefaultCatalog returns the built-in exercises used when nothing is configured.
func DefaultCatalog() []model.ExerciseConfig {
	return []model.ExerciseConfig{
		{ID: "push-ups", Name: "Push-ups", Category: model.CategoryUpper, InputMode: model.InputCheck, CheckCount: DefaultCheckCount, Enabled: true, Order: 0},
		{ID: "pull-ups", Name: "Pull-ups", Category: model.CategoryUpper, InputMode: model.InputCount, Enabled: true, Order: 1},
		{ID: "plank", Name: "Plank", Category: model.CategoryUpper, InputMode: model.InputCheck, CheckCount: 2, Enabled: true, Order: 2},
		{ID: "squats", Name: "Squats", Category: model.CategoryLower, InputMode: model.InputCheck, CheckCount: DefaultCheckCount, Enabled: true, Order: 0},
		{ID: "lunges", Name: "Lunges", Category: model.CategoryLower, InputMode: model.InputCount, Enabled: true, Order: 1},
	}
}
