package source

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(scripts ...string) []byte {
	html := "<html><head><title>t</title>"
	for _, s := range scripts {
		html += `<script type="application/ld+json">` + s + `</script>`
	}
	return []byte(html + "</head><body><p>hello</p></body></html>")
}

func TestExtractRecipeData(t *testing.T) {
	tests := []struct {
		name string
		page []byte
		want *RawRecipe
	}{
		{
			name: "single object",
			page: page(`{"@type":"Recipe","name":"Pancakes","recipeIngredient":["1 cup flour","2 eggs"],
				"recipeInstructions":[{"@type":"HowToStep","text":"  Whisk the eggs. "},"Cook in a pan.", "  "]}`),
			want: &RawRecipe{
				Title:        "Pancakes",
				Ingredients:  []any{"1 cup flour", "2 eggs"},
				Instructions: []any{"Whisk the eggs.", "Cook in a pan."},
			},
		},
		{
			name: "list with type list",
			page: page(`[{"@type":"WebSite","name":"site"},{"@type":["Thing","Recipe"],"name":"Soup","recipeIngredient":["water"]}]`),
			want: &RawRecipe{
				Title:        "Soup",
				Ingredients:  []any{"water"},
				Instructions: []any{},
			},
		},
		{
			name: "graph",
			page: page(`{"@context":"https://schema.org","@graph":[{"@type":"Organization"},{"@type":"Recipe","recipeInstructions":"Stir well."}]}`),
			want: &RawRecipe{
				Title:        DefaultTitle,
				Ingredients:  []any{},
				Instructions: []any{"Stir well."},
			},
		},
		{
			name: "how-to sections flattened in order",
			page: page(`{"@type":"Recipe","name":"Cake","recipeInstructions":[
				{"@type":"HowToSection","name":"Batter","itemListElement":[{"@type":"HowToStep","text":"Mix flour."},{"@type":"HowToStep","text":"Add eggs."}]},
				{"@type":"HowToSection","name":"Bake","itemListElement":[{"@type":"HowToStep","text":"Bake for 30 minutes."}]}]}`),
			want: &RawRecipe{
				Title:        "Cake",
				Ingredients:  []any{},
				Instructions: []any{"Mix flour.", "Add eggs.", "Bake for 30 minutes."},
			},
		},
		{
			name: "broken block skipped",
			page: page(`{not json`, `{"@type":"Recipe","name":"Toast"}`),
			want: &RawRecipe{
				Title:        "Toast",
				Ingredients:  []any{},
				Instructions: []any{},
			},
		},
		{
			name: "objects without text dropped",
			page: page(`{"@type":"Recipe","name":"Tea","recipeInstructions":[{"@type":"HowToStep"},{"text":""},"Steep."]}`),
			want: &RawRecipe{
				Title:        "Tea",
				Ingredients:  []any{},
				Instructions: []any{"Steep."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractRecipeData(tt.page)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractRecipeData() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractKeepsNonStringEntries(t *testing.T) {
	got, err := ExtractRecipeData(page(`{"@type":"Recipe","name":"Odd","recipeIngredient":["salt", 3],"recipeInstructions":["Mix.", 7, {"text": 5}]}`))
	require.NoError(t, err)

	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, json.Number("3"), got.Ingredients[1])
	require.Len(t, got.Instructions, 3)
	assert.Equal(t, json.Number("7"), got.Instructions[1])
	assert.Equal(t, json.Number("5"), got.Instructions[2])
}

func TestExtractNoRecipe(t *testing.T) {
	tests := []struct {
		name string
		page []byte
	}{
		{name: "no script", page: []byte("<html><body>nothing</body></html>")},
		{name: "other type", page: page(`{"@type":"Article","name":"news"}`)},
		{name: "empty script", page: page(``)},
		{name: "plain script ignored", page: []byte(`<script>{"@type":"Recipe"}</script>`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractRecipeData(tt.page)
			assert.ErrorIs(t, err, ErrNoRecipe)
		})
	}
}
