package search

import (
	"fmt"
	"strings"

	"alcyxob/fitness-coach/internal/domain"
)

const NoResultsContext = "No relevant search results found."

// searchKeywords mark messages asking for current information.
var searchKeywords = []string{
	"latest", "recent", "new", "current", "trending", "update",
	"studies show", "research", "news", "breakthrough", "2024", "2025",
	"what do experts say", "current recommendations", "search the web", "search", "more information",
}

// ShouldSearch reports whether message contains any search keyword, case-insensitively.
// Matching is by substring, so "renew" triggers on "new".
func ShouldSearch(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range searchKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// FormatContext renders results as numbered source blocks for the system prompt.
func FormatContext(results []domain.SearchResult) string {
	if len(results) == 0 {
		return NoResultsContext
	}
	blocks := make([]string, 0, len(results))
	for i, r := range results {
		blocks = append(blocks, fmt.Sprintf("\nSource %d:\nTitle: %s\nURL: %s\nContent: %s...\n",
			i+1, orNA(r.Title), orNA(r.URL), orNA(r.Content)))
	}
	return strings.Join(blocks, "\n")
}

// UnavailableContext is used in place of results when the search itself failed.
func UnavailableContext(err error) string {
	return fmt.Sprintf("Search unavailable: %s", err)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
