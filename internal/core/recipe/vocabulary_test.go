package recipe

import (
	"testing"

	"recipe-parser/internal/core/lexicon"

	"github.com/stretchr/testify/assert"
)

func TestMatchVocabulary(t *testing.T) {
	lex := lexicon.Default()

	tests := []struct {
		name  string
		text  string
		vocab []string
		want  []string
	}{
		{
			name:  "multi word phrase",
			text:  "Spread on a baking sheet",
			vocab: lex.Tools(),
			want:  []string{"baking sheet"},
		},
		{
			name:  "overlapping entries both reported in vocabulary order",
			text:  "Transfer to a mixing bowl",
			vocab: lex.Tools(),
			want:  []string{"bowl", "mixing bowl"},
		},
		{
			name:  "case insensitive",
			text:  "Place in the OVEN",
			vocab: lex.Tools(),
			want:  []string{"oven"},
		},
		{
			name:  "no match inside a larger word",
			text:  "Serve the baked panini",
			vocab: []string{"bake", "pan"},
			want:  []string{},
		},
		{
			name:  "hyphen is a boundary",
			text:  "Pan-fry the fish",
			vocab: []string{"pan", "fry"},
			want:  []string{"pan", "fry"},
		},
		{
			name:  "accented entry",
			text:  "Sauté the onions",
			vocab: lex.PrimaryMethods(),
			want:  []string{"sauté"},
		},
		{
			name:  "later occurrence satisfies the boundary",
			text:  "stirring then stir",
			vocab: []string{"stir"},
			want:  []string{"stir"},
		},
		{
			name:  "empty entry ignored",
			text:  "anything",
			vocab: []string{""},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchVocabulary(tt.text, tt.vocab))
		})
	}
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, dedupe([]string{"b", "a", "b", "c", "a"}))
	assert.Equal(t, []string{}, dedupe(nil))
}
