package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple name", "Electronics", "electronics"},
		{"trims and lowercases", "  Cars  ", "cars"},
		{"whitespace run becomes one hyphen", "Home   and    Garden", "home-and-garden"},
		{"tabs and newlines collapse too", "Home\tand\nGarden", "home-and-garden"},
		{"symbols are stripped", "Mobile & Tablets", "mobile--tablets"},
		{"underscores and hyphens survive", "Real_Estate-1", "real_estate-1"},
		{"digits survive", "Top 10", "top-10"},
		{"non-latin name slugifies to empty", "بيروت", ""},
		{"punctuation only slugifies to empty", "!!!", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	inputs := []string{"Electronics", "Home and Garden", "Mobile & Tablets", "Real_Estate-1"}
	for _, input := range inputs {
		once := Slugify(input)
		assert.Equal(t, once, Slugify(once), "slugifying %q twice changed the result", input)
	}
}
