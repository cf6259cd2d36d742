package extraction

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"alcyxob/fitness-coach/internal/domain"
)

// ParseWorkoutPlan turns a model reply into an ordered list of workout days.
// An empty result means the reply contained no recognisable plan.
func ParseWorkoutPlan(text string) []domain.Workout {
	blocks := ExtractDayBlocks(text)
	if len(blocks) == 0 {
		return nil
	}

	title := cases.Title(language.English)
	plan := make([]domain.Workout, 0, len(blocks))
	for _, b := range blocks {
		category := DeterminePrimaryCategory(b.Exercises)
		plan = append(plan, domain.Workout{
			Day:       b.Day,
			Name:      fmt.Sprintf("Day %d - %s", b.Day, title.String(string(category))),
			Exercises: b.Exercises,
			Duration:  EstimateDuration(b.Exercises),
			Category:  category,
		})
	}
	return plan
}

// DeterminePrimaryCategory returns the most frequent category among the
// exercises. Ties go to the category that was seen first.
func DeterminePrimaryCategory(exercises []domain.Exercise) domain.Category {
	if len(exercises) == 0 {
		return domain.CategoryOther
	}

	counts := make(map[domain.Category]int)
	var order []domain.Category
	for _, ex := range exercises {
		if _, ok := counts[ex.Category]; !ok {
			order = append(order, ex.Category)
		}
		counts[ex.Category]++
	}

	best := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}
