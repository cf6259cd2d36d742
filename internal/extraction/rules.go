package extraction

import (
	"regexp"
	"strings"
)

// LineRule is a named pattern that splits an exercise line into a name group
// and a details group.
type LineRule struct {
	Name    string
	Pattern *regexp.Regexp // group 1: name, group 2: details
}

// LineMatch is the outcome of trying a line against the rules. Matched is
// false when no rule applied; Rule names the rule that did.
type LineMatch struct {
	Matched bool
	Rule    string
	Name    string
	Details string
}

// Match applies the rule to a single line.
func (r LineRule) Match(line string) LineMatch {
	m := r.Pattern.FindStringSubmatch(line)
	if m == nil {
		return LineMatch{}
	}
	return LineMatch{
		Matched: true,
		Rule:    r.Name,
		Name:    strings.TrimSpace(m[1]),
		Details: strings.TrimSpace(m[2]),
	}
}

// LineRules lists the exercise-line shapes in the order they are tried.
var LineRules = []LineRule{
	{
		// **Bench Press:** 3x12  /  - **Bench Press**: 3x12
		Name:    "bold-colon",
		Pattern: regexp.MustCompile(`^[\s\-*•+]*(?:\d+[.)]\s*)?\*\*([^*]+?)(?::\s*\*\*|\*\*\s*:)\s*(.*)$`),
	},
	{
		// - Bench Press: 3x12
		Name:    "bullet-colon",
		Pattern: regexp.MustCompile(`^\s*[-*•+]\s+(?:\d+[.)]\s*)?([^:]+?)\s*:\s*(.*)$`),
	},
	{
		// 1. Bench Press: 3x12
		Name:    "numbered-colon",
		Pattern: regexp.MustCompile(`^\s*\d+[.)]\s*([^:]+?)\s*:\s*(.*)$`),
	},
	{
		// Bench Press - 3x12
		Name:    "name-dash",
		Pattern: regexp.MustCompile(`^\s*(?:[-•+]\s+)?[\s*]*(?:\d+[.)]\s*)?([^\s\-–*][^:–]*?)\s+[-–]\s+(.+)$`),
	},
}

// MatchLine tries LineRules in declared order and returns the first match.
func MatchLine(line string) LineMatch {
	for _, rule := range LineRules {
		if m := rule.Match(line); m.Matched {
			return m
		}
	}
	return LineMatch{}
}

var (
	markupChars    = strings.NewReplacer("*", "", "_", "", "#", "", "`", "", "~", "")
	ordinalPrefix  = regexp.MustCompile(`^\d+[.)]\s*`)
	whitespaceRuns = regexp.MustCompile(`\s+`)

	trailingParenthetical = regexp.MustCompile(`^(.*?)\s*\(([^()]+)\)\s*$`)
	trailingDash          = regexp.MustCompile(`^(.*?)\s+[-–—]\s+(.+)$`)
)

// cleanName strips markup, leading ordinals and stray punctuation from a name group.
func cleanName(name string) string {
	cleaned := markupChars.Replace(strings.ToValidUTF8(name, ""))
	cleaned = strings.TrimSpace(cleaned)
	cleaned = ordinalPrefix.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimLeft(cleaned, "-•+ ")
	cleaned = strings.TrimRight(cleaned, ":-–. ")
	return whitespaceRuns.ReplaceAllString(strings.TrimSpace(cleaned), " ")
}

// splitInstructions separates a trailing "(note)" or " - note" from the details.
func splitInstructions(details string) (rest, instructions string) {
	details = strings.TrimSpace(markupChars.Replace(details))
	if m := trailingParenthetical.FindStringSubmatch(details); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := trailingDash.FindStringSubmatch(details); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return details, ""
}
