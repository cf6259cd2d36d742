package extraction

import (
	"strings"

	"alcyxob/fitness-coach/internal/domain"
)

const (
	// BaseDurationMinutes covers warm-up and cool-down.
	BaseDurationMinutes = 15
	MinDurationMinutes  = 30
	MaxDurationMinutes  = 120

	compoundMinutesPerSet  = 3.0
	isolationMinutesPerSet = 2.0
	defaultMinutesPerSet   = 2.5
)

var (
	compoundKeywords  = []string{"press", "squat", "deadlift", "pull-up"}
	isolationKeywords = []string{"curl", "raise", "extension", "fly"}
)

// EstimateDuration returns a rough workout length in minutes for a day's
// exercises. It is a fixed per-set formula, not a physiological model, and
// the result is always within [MinDurationMinutes, MaxDurationMinutes].
func EstimateDuration(exercises []domain.Exercise) int {
	total := float64(BaseDurationMinutes)
	for _, ex := range exercises {
		total += float64(ex.Sets) * minutesPerSet(ex.Name)
	}

	switch {
	case total < MinDurationMinutes:
		return MinDurationMinutes
	case total > MaxDurationMinutes:
		return MaxDurationMinutes
	}
	return int(total)
}

func minutesPerSet(name string) float64 {
	lower := strings.ToLower(name)
	if containsAny(lower, compoundKeywords) {
		return compoundMinutesPerSet
	}
	if containsAny(lower, isolationKeywords) {
		return isolationMinutesPerSet
	}
	return defaultMinutesPerSet
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
