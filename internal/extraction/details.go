package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultSets   = 3
	DefaultReps   = 10
	DefaultWeight = 0.0

	// PoundsToKilograms is the standard avoirdupois pound in kilograms.
	PoundsToKilograms = 0.453592
)

var (
	setsPattern   = regexp.MustCompile(`(?i)(\d+)\s*(?:sets?\b|x)`)
	repsPattern   = regexp.MustCompile(`(?i)(\d+)\s*(?:repetitions?|reps?)\b`)
	nxmPattern    = regexp.MustCompile(`(?i)(\d+)\s*(?:sets?\s*)?x\s*(\d+)`)
	weightPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(kgs?|kilograms?|lbs?|pounds?)\b`)
)

// ParseExerciseDetails pulls sets, reps and weight (kg) out of a free-text
// fragment such as "3 sets x 12 reps @ 20 kg" or "4x8". Each value is
// extracted independently and falls back to its default on a miss.
func ParseExerciseDetails(fragment string) (sets, reps int, weight float64) {
	sets, reps, weight = DefaultSets, DefaultReps, DefaultWeight
	if strings.TrimSpace(fragment) == "" {
		return
	}

	if m := setsPattern.FindStringSubmatch(fragment); m != nil {
		if n := positiveInt(m[1]); n > 0 {
			sets = n
		}
	}

	if m := repsPattern.FindStringSubmatch(fragment); m != nil {
		if n := positiveInt(m[1]); n > 0 {
			reps = n
		}
	} else if m := nxmPattern.FindStringSubmatch(fragment); m != nil {
		if n := positiveInt(m[2]); n > 0 {
			reps = n
		}
	}

	if m := weightPattern.FindStringSubmatch(fragment); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			unit := strings.ToLower(m[2])
			if strings.HasPrefix(unit, "lb") || strings.HasPrefix(unit, "pound") {
				value *= PoundsToKilograms
			}
			weight = value
		}
	}
	return
}

func positiveInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
