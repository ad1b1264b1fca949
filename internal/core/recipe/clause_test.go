package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitClauses(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "periods and semicolons",
			in:   "Preheat oven. Mix flour; add eggs.",
			want: []string{"Preheat oven", "Mix flour", "add eggs"},
		},
		{
			name: "no punctuation",
			in:   "  Stir well  ",
			want: []string{"Stir well"},
		},
		{
			name: "only separators",
			in:   " . ;; . ",
			want: []string{},
		},
		{
			name: "empty",
			in:   "",
			want: []string{},
		},
		{
			name: "ellipsis",
			in:   "Wait... then serve",
			want: []string{"Wait", "then serve"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitClauses(tt.in))
		})
	}
}
