package assistant

import (
	"testing"

	"recipe-parser/internal/core/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cakeRecipe(t *testing.T) *recipe.Recipe {
	t.Helper()
	r, err := recipe.Parse("Sponge Cake", "https://example.com/cake",
		[]string{"2 cups flour", "3 large eggs, beaten", "1/2 teaspoon salt"},
		[]string{
			"Preheat the oven to 350 F.",
			"Whisk the eggs and salt in a bowl. Stir in the flour.",
			"Bake for 30 minutes.",
		},
	)
	require.NoError(t, err)
	require.Len(t, r.Steps, 4)
	return r
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "whats next", Normalize("  What's   NEXT?! "))
	assert.Equal(t, "how do i sauté onions", Normalize("How do I sauté onions?"))
	assert.Equal(t, "", Normalize(" ... "))
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 10: "10th", 11: "11th", 12: "12th",
		13: "13th", 20: "20th", 21: "21st", 22: "22nd", 101: "101st", 111: "111th", 112: "112th",
	}
	for n, want := range tests {
		assert.Equal(t, want, Ordinal(n), "Ordinal(%d)", n)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		utterance string
		want      Intent
	}{
		{"1", IntentIngredients},
		{"Show me the ingredients list", IntentIngredients},
		{"2", IntentSteps},
		{"go over steps", IntentSteps},
		{"What's next?", IntentNext},
		{"continue", IntentNext},
		{"go back one step", IntentBack},
		{"repeat that please", IntentRepeat},
		{"Go to the first step", IntentFirstStep},
		{"How long do I bake it for?", IntentTime},
		{"what is the baking time", IntentTime},
		{"What temperature should the oven be?", IntentTemperature},
		{"what do I bake at", IntentTemperature},
		{"How many eggs do I need?", IntentQuantity},
		{"What is a whisk?", IntentDefine},
		{"How do I knead the dough?", IntentHowTo},
		{"how to fold egg whites", IntentHowTo},
		{"How do I do that?", IntentVagueHowTo},
		{"banana", IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(Normalize(tt.utterance)))
		})
	}
}

func TestNavigation(t *testing.T) {
	r := cakeRecipe(t)

	tests := []struct {
		name       string
		cursor     int
		utterance  string
		wantText   string
		wantCursor int
	}{
		{"start steps resets", 3, "steps", "The 1st step is: Preheat the oven to 350 F", 0},
		{"next", 0, "next step", "The 2nd step is: Whisk the eggs and salt in a bowl", 1},
		{"next at end", 3, "next", "You are at the last step.", 3},
		{"back", 2, "previous step", "The 2nd step is: Whisk the eggs and salt in a bowl", 1},
		{"back at start", 0, "go back", "You are at the first step.", 0},
		{"repeat", 2, "say that again", "The 3rd step is: Stir in the flour", 2},
		{"first step", 3, "go to the first step", "The 1st step is: Preheat the oven to 350 F", 0},
		{"cursor clamped", 9, "repeat", "The 4th step is: Bake for 30 minutes", 3},
		{"negative cursor", -2, "repeat", "The 1st step is: Preheat the oven to 350 F", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := Answer(r, tt.cursor, tt.utterance)
			assert.Equal(t, tt.wantText, reply.Text)
			assert.Equal(t, tt.wantCursor, reply.Cursor)
			assert.Empty(t, reply.Link)
		})
	}
}

func TestShowIngredients(t *testing.T) {
	reply := Answer(cakeRecipe(t), 0, "ingredients")
	assert.Equal(t, IntentIngredients, reply.Intent)
	assert.Equal(t, "Here are the ingredients for \"Sponge Cake\":\n"+
		"- 2 cups flour\n"+
		"- 3 large eggs, beaten\n"+
		"- 0.5 teaspoon salt", reply.Text)
}

func TestParameterQuestions(t *testing.T) {
	r := cakeRecipe(t)

	tests := []struct {
		name      string
		cursor    int
		utterance string
		want      string
	}{
		{"time in step", 3, "How long do I bake it for?", "In this step, the time is 30 minutes."},
		{"time elsewhere", 0, "how long?", "Earlier, the recipe says: 30 minutes."},
		{"temperature in step", 0, "What temperature should the oven be?", "In this step, the oven should be at 350 F."},
		{"temperature from context", 3, "how hot should the oven be", "The oven should be at 350 F."},
		{"named ingredient", 0, "How many eggs do I need?", "You need 3 eggs."},
		{"several named", 0, "How much flour and salt?", "Here are the quantities:\n- 2 cups flour\n- 0.5 teaspoon salt"},
		{"step ingredients", 1, "How much of that?", "For this step, the relevant quantities are:\n- 3 eggs\n- 0.5 teaspoon salt"},
		{"single step ingredient", 2, "how much do I add", "For that, you need 2 cups flour."},
		{"no ingredient", 0, "how much?", "I'm not sure which ingredient you mean."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := Answer(r, tt.cursor, tt.utterance)
			assert.Equal(t, tt.want, reply.Text)
			assert.Equal(t, tt.cursor, reply.Cursor)
		})
	}
}

func TestTimeFromSharedMethod(t *testing.T) {
	r, err := recipe.Parse("Pasta", "", []string{"1 pound pasta"}, []string{
		"Boil the pasta for 10 minutes.",
		"Drain and boil again briefly.",
	})
	require.NoError(t, err)

	reply := Answer(r, 1, "what is the cooking time")
	assert.Equal(t, "For boil, drain earlier, the recipe says: 10 minutes.", reply.Text)
}

func TestLinks(t *testing.T) {
	r := cakeRecipe(t)

	tests := []struct {
		name      string
		cursor    int
		utterance string
		want      string
	}{
		{"define", 0, "What is a whisk?", "https://www.google.com/search?q=what+is+a+whisk"},
		{"how do i", 0, "How do I knead the dough?", "https://www.youtube.com/results?search_query=how+to+knead+the+dough"},
		{"how to", 0, "how to fold egg whites", "https://www.youtube.com/results?search_query=how+to+fold+egg+whites"},
		{"vague uses step action", 1, "How do I do that?", "https://www.youtube.com/results?search_query=how+to+whisk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := Answer(r, tt.cursor, tt.utterance)
			assert.Equal(t, tt.want, reply.Link)
			assert.Equal(t, tt.want, reply.Text)
		})
	}
}

func TestVagueHowToWithoutMethod(t *testing.T) {
	r, err := recipe.Parse("Salad", "", nil, []string{"Put everything on a plate."})
	require.NoError(t, err)

	reply := Answer(r, 0, "how do I do it")
	assert.Equal(t, "I'm not sure what 'that' refers to in this step.", reply.Text)
	assert.Empty(t, reply.Link)
}

func TestRecipeWithoutSteps(t *testing.T) {
	r, err := recipe.Parse("Empty", "", []string{"1 egg"}, nil)
	require.NoError(t, err)

	reply := Answer(r, 3, "next")
	assert.Equal(t, "This recipe has no steps.", reply.Text)
	assert.Equal(t, 0, reply.Cursor)

	reply = Answer(r, 0, "What is a whisk?")
	assert.NotEmpty(t, reply.Link)

	reply = Answer(r, 0, "banana")
	assert.Equal(t, HelpText, reply.Text)
	assert.Equal(t, IntentUnknown, reply.Intent)
}
