package assistant

import "strings"

// Intent 使用者意圖
type Intent string

const (
	IntentIngredients Intent = "ingredients"
	IntentSteps       Intent = "steps"
	IntentNext        Intent = "next"
	IntentBack        Intent = "back"
	IntentRepeat      Intent = "repeat"
	IntentFirstStep   Intent = "first_step"
	IntentTime        Intent = "time"
	IntentTemperature Intent = "temperature"
	IntentQuantity    Intent = "quantity"
	IntentDefine      Intent = "define"
	IntentHowTo       Intent = "how_to"
	IntentVagueHowTo  Intent = "vague_how_to"
	IntentUnknown     Intent = "unknown"
)

var (
	ingredientCommands = []string{
		"1", "ingredients", "ingredient list", "show me the ingredients list",
		"show ingredients", "go over ingredients",
	}
	stepCommands = []string{"2", "steps", "go over steps", "start steps", "show steps"}

	nextPatterns = []string{
		"next step", "go to the next step", "go to next step",
		"next", "continue", "what's next", "whats next", "what is next",
	}
	backPatterns = []string{
		"go back one step", "go back a step", "go back",
		"previous step", "previous", "back",
	}
	repeatPatterns   = []string{"repeat please", "repeat that", "say that again", "again", "repeat"}
	firstPatterns    = []string{"first step", "go to step one", "go to the first step"}
	vagueHowPatterns = []string{"how do i do that", "how do i do this", "how do i do it"}
)

const (
	definePrefix = "what is "
	howDoIPrefix = "how do i "
	howToPrefix  = "how to "
)

// Normalize 轉小寫、移除 ASCII 標點、合併空白
func Normalize(text string) string {
	text = strings.Map(func(r rune) rune {
		if isASCIIPunct(r) {
			return -1
		}
		return r
	}, strings.ToLower(text))
	return strings.Join(strings.Fields(text), " ")
}

func isASCIIPunct(r rune) bool {
	return (r >= '!' && r <= '/') || (r >= ':' && r <= '@') || (r >= '[' && r <= '`') || (r >= '{' && r <= '~')
}

// Classify 依序比對意圖，先符合者優先
func Classify(norm string) Intent {
	switch {
	case equalsAny(norm, ingredientCommands):
		return IntentIngredients
	case equalsAny(norm, stepCommands):
		return IntentSteps
	case containsAny(norm, nextPatterns):
		return IntentNext
	case containsAny(norm, backPatterns):
		return IntentBack
	case containsAny(norm, repeatPatterns):
		return IntentRepeat
	case containsAny(norm, firstPatterns):
		return IntentFirstStep
	case isTimeQuestion(norm):
		return IntentTime
	case isTemperatureQuestion(norm):
		return IntentTemperature
	case isQuantityQuestion(norm):
		return IntentQuantity
	case strings.HasPrefix(norm, definePrefix):
		return IntentDefine
	// 「how do i do that」要在 how do i 前綴之前判斷
	case containsAny(norm, vagueHowPatterns):
		return IntentVagueHowTo
	case strings.HasPrefix(norm, howDoIPrefix), strings.HasPrefix(norm, howToPrefix):
		return IntentHowTo
	default:
		return IntentUnknown
	}
}

func isTimeQuestion(norm string) bool {
	if strings.Contains(norm, "how long") {
		return true
	}
	if strings.Contains(norm, "cooking time") || strings.Contains(norm, "baking time") {
		return true
	}
	return strings.Contains(norm, "time") && containsAny(norm, []string{"cook", "bake", "simmer"})
}

func isTemperatureQuestion(norm string) bool {
	if strings.Contains(norm, "temp") && (strings.Contains(norm, "oven") || strings.Contains(norm, "bake")) {
		return true
	}
	if strings.Contains(norm, "how hot") && strings.Contains(norm, "oven") {
		return true
	}
	return strings.Contains(norm, "bake at") || strings.Contains(norm, "baked at")
}

func isQuantityQuestion(norm string) bool {
	return containsAny(norm, []string{"how much", "how many", "amount of", "quantity of"})
}

func equalsAny(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
