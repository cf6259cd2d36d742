package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"alcyxob/fitness-coach/internal/domain"
)

const (
	minNameLength = 3
	maxNameLength = 50
)

// fitnessTerms are substrings that mark a candidate as exercise-related.
var fitnessTerms = []string{
	// body parts
	"chest", "back", "shoulder", "arm", "leg", "core", "abs", "abdominal", "glute",
	"hamstring", "quad", "calf", "calves", "bicep", "tricep", "lats", "trap",
	"oblique", "delt", "forearm", "neck",
	// equipment
	"barbell", "dumbbell", "kettlebell", "cable", "machine", "band", "bench", "bar",
	"rope", "ball",
	// movements
	"push", "pull", "curl", "press", "squat", "lunge", "plank", "stretch", "row",
	"lift", "raise", "extension", "fly", "flye", "dip", "crunch", "deadlift", "jump",
	"run", "jog", "walk", "sprint", "bridge", "twist", "kick", "climb", "burpee",
	"jack", "thrust", "shrug", "swing", "step", "hold", "sit-up", "chin-up",
	// generic
	"exercise", "workout", "cardio", "yoga", "pose", "training", "warm", "cool",
	"cycling", "bike", "swim", "hiit", "pilates", "mobility",
}

// stopWords make up narrative filler; a candidate built only from these is rejected.
var stopWords = map[string]struct{}{
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	"the": {}, "a": {}, "an": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {}, "am": {},
	"can": {}, "could": {}, "will": {}, "would": {}, "shall": {}, "should": {},
	"may": {}, "might": {}, "must": {},
	"do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {},
	"to": {}, "of": {}, "in": {}, "on": {}, "at": {}, "for": {}, "with": {},
	"this": {}, "that": {}, "it": {}, "these": {}, "those": {},
}

// structuralNamePatterns accept names that carry no vocabulary term but are
// shaped like an exercise name.
var structuralNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^[a-z][\w'-]*\s+(press|curl|raise|extension|stretch|pose)e?s?$`),
	regexp.MustCompile(`(?i)^(morning|evening|daily|basic|simple|easy)\s+[a-z][\w'-]*`),
	regexp.MustCompile(`(?i)^[a-z][\w'-]*\s+(workout|routine|exercise)s?$`),
	regexp.MustCompile(`(?i)^(chest|back|shoulder|arm|leg|core|ab|glute|hip|neck|calf)s?\s+[a-z][\w'-]*`),
}

// IsValidExerciseName reports whether candidate plausibly names an exercise.
// It favours precision: "Barbell Bench Press" passes, "is a great way to" does not.
func IsValidExerciseName(candidate string) bool {
	name := strings.TrimSpace(candidate)
	if name == "" || !utf8.ValidString(name) {
		return false
	}
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		return false
	}

	lower := strings.ToLower(name)
	if onlyStopWords(lower) {
		return false
	}

	for _, term := range fitnessTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	for _, re := range structuralNamePatterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func onlyStopWords(lower string) bool {
	words := strings.Fields(lower)
	if len(words) == 0 {
		return true
	}
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?'\"()")
		if _, ok := stopWords[w]; !ok {
			return false
		}
	}
	return true
}

// categoryTerms is evaluated top to bottom. A name matching terms of several
// categories gets the first one, so "dip" is chest, never triceps. Unless
// phrases make an entry skip a name it would otherwise claim.
var categoryTerms = []struct {
	Category domain.Category
	Terms    []string
	Unless   []string
}{
	{Category: domain.CategoryChest, Terms: []string{"chest", "bench press", "incline press", "incline bench", "dumbbell press", "push-up", "pushup", "push up", "pec", "butterfly", "fly", "flye", "dip"}},
	{Category: domain.CategoryBiceps, Terms: []string{"bicep", "curl", "chin-up", "chinup", "hammer"}},
	{Category: domain.CategoryTriceps, Terms: []string{"tricep", "dip", "skull crusher", "pushdown", "kickback", "close-grip", "close grip"}},
	{Category: domain.CategoryBack, Terms: []string{"back", "row", "pull-up", "pullup", "pull up", "pulldown", "lat pull", "lats", "deadlift"}, Unless: []string{"back squat"}},
	{Category: domain.CategoryShoulders, Terms: []string{"shoulder", "overhead press", "military press", "lateral raise", "front raise", "delt", "shrug", "arnold"}},
	{Category: domain.CategoryLegs, Terms: []string{"squat", "lunge", "leg", "calf", "calves", "glute", "hamstring", "quad", "hip thrust", "step-up", "step up"}},
	{Category: domain.CategoryCore, Terms: []string{"core", "abs", "abdominal", "plank", "crunch", "sit-up", "situp", "twist", "oblique", "hollow", "dead bug"}},
	{Category: domain.CategoryCardio, Terms: []string{"cardio", "run", "jog", "sprint", "cycling", "bike", "jump", "burpee", "jumping jack", "walk", "swim", "hiit", "elliptical"}},
}

// shortTermLength is the longest single-word term matched only at the start
// of a word, so "row" hits "Rows" and "Rowing" but not "Throw".
const shortTermLength = 4

type termMatcher func(lower string) bool

// categoryMatchers mirrors categoryTerms with one matcher per term.
var categoryMatchers = buildCategoryMatchers()

func buildCategoryMatchers() [][]termMatcher {
	matchers := make([][]termMatcher, len(categoryTerms))
	for i, entry := range categoryTerms {
		for _, term := range entry.Terms {
			matchers[i] = append(matchers[i], newTermMatcher(term))
		}
	}
	return matchers
}

func newTermMatcher(term string) termMatcher {
	if utf8.RuneCountInString(term) > shortTermLength || strings.ContainsAny(term, " -") {
		return func(lower string) bool { return strings.Contains(lower, term) }
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(term))
	return re.MatchString
}

// CategorizeExercise maps an exercise name to its category.
func CategorizeExercise(name string) domain.Category {
	lower := strings.ToLower(name)
	for i, entry := range categoryTerms {
		if containsAny(lower, entry.Unless) {
			continue
		}
		for _, match := range categoryMatchers[i] {
			if match(lower) {
				return entry.Category
			}
		}
	}
	return domain.CategoryOther
}
