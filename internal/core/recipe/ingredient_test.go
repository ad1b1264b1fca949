package recipe

import (
	"testing"

	"recipe-parser/internal/core/lexicon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredientLine(t *testing.T) {
	lex := lexicon.Default()

	tests := []struct {
		line        string
		quantity    *float64
		unit        string
		descriptor  string
		name        string
		preparation string
	}{
		{
			line:        "2 cups flour, sifted",
			quantity:    ptr(2),
			unit:        "cups",
			name:        "flour",
			preparation: "sifted",
		},
		{
			line: "-2 cups flour",
			name: "-2 cups flour",
		},
		{
			line:       "1 large egg",
			quantity:   ptr(1),
			descriptor: "large",
			name:       "egg",
		},
		{
			line:        "3 cloves garlic, minced",
			quantity:    ptr(3),
			unit:        "cloves",
			name:        "garlic",
			preparation: "minced",
		},
		{
			line:       "1-1/2 Tablespoons Extra-Virgin olive oil",
			quantity:   ptr(1.5),
			unit:       "tablespoons",
			descriptor: "extra-virgin",
			name:       "olive oil",
		},
		{
			line:        "2 boneless skinless chicken breasts , cut into strips",
			quantity:    ptr(2),
			descriptor:  "boneless skinless",
			name:        "chicken breasts",
			preparation: "cut into strips",
		},
		{
			line: "Salt and pepper to taste",
			name: "Salt and pepper to taste",
		},
		{
			line: "pinch nutmeg",
			unit: "pinch",
			name: "nutmeg",
		},
		{
			line:     "4 ,",
			quantity: ptr(4),
		},
		{
			line: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ing := ParseIngredientLine(lex, tt.line)

			assert.Equal(t, tt.line, ing.Raw)
			if tt.quantity == nil {
				assert.Nil(t, ing.Quantity)
				assert.False(t, ing.HasQuantity())
			} else {
				require.NotNil(t, ing.Quantity)
				assert.InDelta(t, *tt.quantity, *ing.Quantity, 1e-9)
			}
			assert.Equal(t, tt.unit, ing.Unit)
			assert.Equal(t, tt.descriptor, ing.Descriptor)
			assert.Equal(t, tt.name, ing.Name)
			assert.Equal(t, tt.preparation, ing.Preparation)
		})
	}
}

func TestParseIngredientsKeepsOrder(t *testing.T) {
	got := ParseIngredients(lexicon.Default(), []string{"1 cup sugar", "2 eggs", "salt"})

	require.Len(t, got, 3)
	assert.Equal(t, "sugar", got[0].Name)
	assert.Equal(t, "eggs", got[1].Name)
	assert.Equal(t, "salt", got[2].Name)

	assert.Empty(t, ParseIngredients(lexicon.Default(), nil))
}

func ptr(v float64) *float64 {
	return &v
}
