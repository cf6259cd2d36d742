package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxExerciseNames caps how many names a NameExtractor returns when
// no explicit limit is configured.
const DefaultMaxExerciseNames = 100

// nameRules are the raw-text patterns used when a reply has no day structure.
// Group 1 is always the exercise name.
var nameRules = []LineRule{
	{
		// **Goblet Squat**: 3 sets of 10
		Name:    "bold-sets",
		Pattern: regexp.MustCompile(`(?i)\*\*([^*\n]+?)\*\*[^\n]*?(\d+)\s*sets?\b`),
	},
	{
		// - **Goblet Squat** 3 sets of 10
		Name:    "bullet-bold-sets",
		Pattern: regexp.MustCompile(`(?im)^[ \t]*[-*•+][ \t]+\*\*([^*\n]+?)\*\*[^\n]*?(\d+)\s*sets?\b`),
	},
	{
		// Goblet Squat: 3 sets x 10 reps
		Name:    "colon-sets-reps",
		Pattern: regexp.MustCompile(`(?im)^[ \t\-*•+]*([a-z][a-z \t'\-]+?):\s*(\d+)\s*sets?\s*(?:x|of)\s*\d+\s*(?:reps?|repetitions?)`),
	},
	{
		// Goblet Squat - 3x10
		Name:    "dash-nxm",
		Pattern: regexp.MustCompile(`(?im)^[ \t\-*•+]*([a-z][a-z \t'\-]*?[a-z])\s+[-–]\s+(\d+\s*x\s*\d+)`),
	},
}

var (
	leadingArticle = regexp.MustCompile(`(?i)^(?:the|a|an)\s+`)
	excludedWords  = regexp.MustCompile(`(?i)\b(?:day|workout|training|rest)\b`)
)

// NameExtractor finds exercise names anywhere in a reply, independent of day
// structure. The names drive image lookup.
type NameExtractor struct {
	Limit int
}

// NewNameExtractor returns an extractor capped at limit names. A non-positive
// limit selects DefaultMaxExerciseNames.
func NewNameExtractor(limit int) *NameExtractor {
	if limit <= 0 {
		limit = DefaultMaxExerciseNames
	}
	return &NameExtractor{Limit: limit}
}

// ExtractExerciseNames runs the default extractor over text.
func ExtractExerciseNames(text string) []string {
	return NewNameExtractor(DefaultMaxExerciseNames).Extract(text)
}

// Extract returns candidate exercise names in first-seen order, deduplicated
// case-insensitively. Names from a parsed workout plan are preferred; the raw
// pattern battery is only consulted when the plan yields nothing.
func (e *NameExtractor) Extract(text string) []string {
	text = strings.ToValidUTF8(text, "")
	candidates := planNames(text)
	if len(candidates) == 0 {
		candidates = patternNames(text)
	}
	return e.finalize(candidates)
}

func planNames(text string) []string {
	var names []string
	for _, day := range ParseWorkoutPlan(text) {
		for _, ex := range day.Exercises {
			names = append(names, cleanName(ex.Name))
		}
	}
	return names
}

func patternNames(text string) []string {
	var names []string
	for _, rule := range nameRules {
		for _, m := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			name := cleanCandidate(m[1])
			if name == "" || excludedWords.MatchString(name) || !IsValidExerciseName(name) {
				continue
			}
			names = append(names, name)
		}
	}
	return names
}

func cleanCandidate(raw string) string {
	name := cleanName(raw)
	name = leadingArticle.ReplaceAllString(name, "")
	return whitespaceRuns.ReplaceAllString(strings.TrimSpace(name), " ")
}

func (e *NameExtractor) finalize(candidates []string) []string {
	limit := e.Limit
	if limit <= 0 {
		limit = DefaultMaxExerciseNames
	}

	seen := make(map[string]struct{}, len(candidates))
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if utf8.RuneCountInString(c) <= 2 {
			continue
		}
		key := strings.ToLower(c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, c)
		if len(names) == limit {
			break
		}
	}
	return names
}
