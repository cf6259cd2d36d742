package extraction

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"alcyxob/fitness-coach/internal/domain"
)

// DayBlock is the exercise content found under one day header.
type DayBlock struct {
	Day       int
	Exercises []domain.Exercise
}

var (
	dayHeaderPattern     = regexp.MustCompile(`(?im)^[ \t#*_>\-•]*day\s+(\d+|one|two|three|four|five|six|seven)\b(?:\*\*|\*|__)?[ \t]*[:\-–]?`)
	weekdayHeaderPattern = regexp.MustCompile(`(?im)^[ \t#*_>\-•]*(monday|tuesday|wednesday|thursday|friday|saturday|sunday)(?:\*\*|\*|__)?[ \t]*(?:[:\-–]|$)`)
)

var weekdayNumbers = map[string]int{
	"monday": 1, "tuesday": 2, "wednesday": 3, "thursday": 4,
	"friday": 5, "saturday": 6, "sunday": 7,
}

var dayWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7,
}

// restPrefixes mark placeholder lines on rest days.
var restPrefixes = []string{"Rest", "Day off", "Recovery"}

var sectionHeaders = []string{"WARM-UP", "WARM UP", "WORKOUT", "COOL-DOWN", "COOL DOWN"}

type header struct {
	start, end int
	day        int
}

// ExtractDayBlocks splits text on "Day N" headers and on weekday headers and
// extracts the exercise lines under each. "Day N" blocks come first, then
// weekday blocks, each in textual order. A block body runs to the next header
// of either kind. Blocks without a single valid exercise are dropped.
func ExtractDayBlocks(text string) []DayBlock {
	text = strings.ToValidUTF8(text, "")
	dayHeaders := findHeaders(text, dayHeaderPattern, parseDayNumber)
	weekdayHeaders := findHeaders(text, weekdayHeaderPattern, func(s string) int {
		return weekdayNumbers[strings.ToLower(s)]
	})

	boundaries := make([]int, 0, len(dayHeaders)+len(weekdayHeaders))
	for _, h := range dayHeaders {
		boundaries = append(boundaries, h.start)
	}
	for _, h := range weekdayHeaders {
		boundaries = append(boundaries, h.start)
	}
	sort.Ints(boundaries)

	var blocks []DayBlock
	for _, headers := range [][]header{dayHeaders, weekdayHeaders} {
		for _, h := range headers {
			body := text[h.end:nextBoundary(boundaries, h.start, len(text))]
			exercises := extractExercises(body)
			if len(exercises) == 0 {
				continue
			}
			blocks = append(blocks, DayBlock{Day: h.day, Exercises: exercises})
		}
	}
	return blocks
}

func findHeaders(text string, re *regexp.Regexp, dayOf func(string) int) []header {
	var headers []header
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		headers = append(headers, header{
			start: loc[0],
			end:   loc[1],
			day:   dayOf(text[loc[2]:loc[3]]),
		})
	}
	return headers
}

// parseDayNumber returns N for "Day N", defaulting to 1 when N cannot be read.
func parseDayNumber(s string) int {
	if n, ok := dayWords[strings.ToLower(s)]; ok {
		return n
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

func nextBoundary(boundaries []int, start, textLen int) int {
	i := sort.SearchInts(boundaries, start+1)
	if i < len(boundaries) {
		return boundaries[i]
	}
	return textLen
}

// extractExercises walks a block body line by line and keeps every line that
// a LineRule splits into a valid exercise name.
func extractExercises(body string) []domain.Exercise {
	var exercises []domain.Exercise
	seen := make(map[string]struct{})

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isRestLine(trimmed) || isSectionHeader(trimmed) {
			continue
		}

		m := MatchLine(trimmed)
		if !m.Matched {
			continue
		}
		name := cleanName(m.Name)
		if !IsValidExerciseName(name) {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		details, instructions := splitInstructions(m.Details)
		sets, reps, weight := parseLineDetails(details, instructions)
		exercises = append(exercises, domain.Exercise{
			Name:         name,
			Sets:         sets,
			Reps:         reps,
			Weight:       weight,
			Category:     CategorizeExercise(name),
			Instructions: instructions,
		})
	}
	return exercises
}

// parseLineDetails reads sets, reps and weight from the details group. A
// weight written only in the trailing segment ("3x10 (100 lbs)", "3x10 - 60 kg")
// still counts, and a details group without any number falls back to the
// trailing segment entirely.
func parseLineDetails(details, instructions string) (sets, reps int, weight float64) {
	if instructions == "" {
		return ParseExerciseDetails(details)
	}
	if !strings.ContainsAny(details, "0123456789") {
		return ParseExerciseDetails(details + " " + instructions)
	}
	sets, reps, weight = ParseExerciseDetails(details)
	if weight == DefaultWeight {
		_, _, weight = ParseExerciseDetails(instructions)
	}
	return sets, reps, weight
}

func isRestLine(line string) bool {
	bare := strings.TrimLeft(line, "-*•+#> ")
	for _, prefix := range restPrefixes {
		if strings.HasPrefix(bare, prefix) {
			return true
		}
	}
	return false
}

func isSectionHeader(line string) bool {
	bare := strings.Trim(markupChars.Replace(line), "-•+>: ")
	for _, h := range sectionHeaders {
		if strings.EqualFold(bare, h) {
			return true
		}
	}
	return false
}
