package search

import (
	"errors"
	"testing"

	"alcyxob/fitness-coach/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestShouldSearch(t *testing.T) {
	cases := map[string]bool{
		"What does the latest research say about creatine?": true,
		"Any NEWS on intermittent fasting":                  true,
		"best program for 2025":                             true,
		"please search the web for squat cues":              true,
		"Give me a 3 day split":                             false,
		"How many sets should I do?":                        false,
		"":                                                  false,
	}
	for msg, want := range cases {
		assert.Equal(t, want, ShouldSearch(msg), "message %q", msg)
	}
}

func TestFormatContext(t *testing.T) {
	assert.Equal(t, NoResultsContext, FormatContext(nil))

	got := FormatContext([]domain.SearchResult{
		{Title: "Squat Guide", URL: "https://example.com", Content: "Squats build legs."},
		{Title: "", URL: "https://example.org", Content: ""},
	})
	want := "\nSource 1:\nTitle: Squat Guide\nURL: https://example.com\nContent: Squats build legs....\n" +
		"\n" +
		"\nSource 2:\nTitle: N/A\nURL: https://example.org\nContent: N/A...\n"
	assert.Equal(t, want, got)
}

func TestUnavailableContext(t *testing.T) {
	assert.Equal(t, "Search unavailable: boom", UnavailableContext(errors.New("boom")))
}
