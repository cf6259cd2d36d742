package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alcyxob/fitness-coach/internal/domain"
)

func TestIsValidExerciseName(t *testing.T) {
	for caseName, tc := range map[string]struct {
		candidate string
		want      bool
	}{
		"empty":              {candidate: "", want: false},
		"whitespace":         {candidate: "   ", want: false},
		"too short":          {candidate: "ab", want: false},
		"too long":           {candidate: "Incline Dumbbell Bench Press With A Very Long Pause At The Bottom", want: false},
		"stop word":          {candidate: "the", want: false},
		"stop words only":    {candidate: "and the", want: false},
		"narrative fragment": {candidate: "is a great way to", want: false},
		"compound name":      {candidate: "Barbell Bench Press", want: true},
		"movement verb":      {candidate: "Walking Lunges", want: true},
		"generic term":       {candidate: "Yoga", want: true},
		"qualifier pattern":  {candidate: "Morning Mobility Flow", want: true},
		"qualifier only":     {candidate: "Simple Routine", want: true},
		"routine pattern":    {candidate: "Tabata Routine", want: true},
		"bodypart pattern":   {candidate: "Neck Circles", want: true},
		"unrelated word":     {candidate: "Nutrition", want: false},
	} {
		t.Run(caseName, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidExerciseName(tc.candidate), tc.candidate)
		})
	}
}

func TestCategorizeExercise(t *testing.T) {
	for name, want := range map[string]domain.Category{
		"Barbell Bench Press": domain.CategoryChest,
		"Push-ups":            domain.CategoryChest,
		"Bicep Curl":          domain.CategoryBiceps,
		"Hammer Curls":        domain.CategoryBiceps,
		"Skull Crushers":      domain.CategoryTriceps,
		"Tricep Pushdown":     domain.CategoryTriceps,
		"Bent Over Row":       domain.CategoryBack,
		"Deadlift":            domain.CategoryBack,
		"Lateral Raise":       domain.CategoryShoulders,
		"Overhead Press":      domain.CategoryShoulders,
		"Goblet Squat":        domain.CategoryLegs,
		"Walking Lunges":      domain.CategoryLegs,
		"Plank":               domain.CategoryCore,
		"Russian Twist":       domain.CategoryCore,
		"Burpees":             domain.CategoryCardio,
		"Running":             domain.CategoryCardio,
		"Foam Rolling":        domain.CategoryOther,
		"":                    domain.CategoryOther,
	} {
		assert.Equal(t, want, CategorizeExercise(name), name)
	}
}

func TestCategorizeExercise_PriorityOrder(t *testing.T) {
	// "dip" is listed for both chest and triceps; chest is evaluated first.
	assert.Equal(t, domain.CategoryChest, CategorizeExercise("Tricep Dips"))
	assert.Equal(t, domain.CategoryChest, CategorizeExercise("Dip and Row Combo"))
	// biceps before legs
	assert.Equal(t, domain.CategoryBiceps, CategorizeExercise("Leg Curl"))
	// legs before core
	assert.Equal(t, domain.CategoryLegs, CategorizeExercise("Hanging Leg Raise"))
	// back before cardio
	assert.Equal(t, domain.CategoryBack, CategorizeExercise("Rowing Machine Sprint"))
}

func TestCategoryTermsOrder(t *testing.T) {
	want := []domain.Category{
		domain.CategoryChest, domain.CategoryBiceps, domain.CategoryTriceps, domain.CategoryBack,
		domain.CategoryShoulders, domain.CategoryLegs, domain.CategoryCore, domain.CategoryCardio,
	}
	got := make([]domain.Category, 0, len(categoryTerms))
	for _, entry := range categoryTerms {
		got = append(got, entry.Category)
	}
	assert.Equal(t, want, got)
}

func TestCategorizeExercise_WordStartTerms(t *testing.T) {
	for name, want := range map[string]domain.Category{
		"Medicine Ball Throw":    domain.CategoryOther,
		"Seated Cable Rows":      domain.CategoryBack,
		"Treadmill Run":          domain.CategoryCardio,
		"Back Squat":             domain.CategoryLegs,
		"Back Extension":         domain.CategoryBack,
		"Incline Dumbbell Press": domain.CategoryChest,
		"Incline Bench Press":    domain.CategoryChest,
		"Pec Deck":               domain.CategoryChest,
	} {
		assert.Equal(t, want, CategorizeExercise(name), name)
	}
}

func TestIsValidExerciseName_InvalidUTF8(t *testing.T) {
	assert.False(t, IsValidExerciseName("\xff\xfe press"))
}
