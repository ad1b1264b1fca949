package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"recipe-parser/internal/core/recipe"
	"recipe-parser/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	searchURL  = "https://www.google.com/search?q="
	youtubeURL = "https://www.youtube.com/results?search_query="
)

// HelpText 無法辨識時的提示
const HelpText = `I didn't quite catch that.
You can try commands like:
- '1' or 'show me the ingredients list'
- '2' or 'go over steps'
- 'next step', 'go to the next step', 'continue'
- 'go back one step', 'previous step'
- 'repeat that', 'say that again'
- 'How long do I bake it for?'
- 'What temperature should the oven be?'
- 'How many eggs do I need?', 'How much salt do I need?'
- 'What is a whisk?'
- 'How do I knead the dough?'`

// Reply 回覆內容與更新後的步驟位置
type Reply struct {
	Intent Intent `json:"intent"`
	Text   string `json:"text"`
	Cursor int    `json:"cursor"` // 從 0 開始的步驟索引
	Link   string `json:"link,omitempty"`
}

// Answer 根據目前步驟回答一句話，不保存任何狀態
func Answer(r *recipe.Recipe, cursor int, utterance string) Reply {
	norm := Normalize(utterance)
	intent := Classify(norm)
	cursor = clamp(cursor, len(r.Steps))

	reply := answer(r, cursor, intent, norm)
	reply.Intent = intent

	common.LogDebug("助理回覆",
		zap.String("intent", string(intent)),
		zap.Int("cursor", reply.Cursor),
	)
	return reply
}

func answer(r *recipe.Recipe, cursor int, intent Intent, norm string) Reply {
	switch intent {
	case IntentIngredients:
		return Reply{Text: ShowIngredients(r), Cursor: cursor}
	case IntentDefine:
		return link(cursor, searchURL+"what+is+"+plus(strings.TrimPrefix(norm, definePrefix)))
	case IntentHowTo:
		query := strings.TrimPrefix(strings.TrimPrefix(norm, howDoIPrefix), howToPrefix)
		return link(cursor, youtubeURL+"how+to+"+plus(query))
	case IntentUnknown:
		return Reply{Text: HelpText, Cursor: cursor}
	}

	// 以下都需要步驟
	if len(r.Steps) == 0 {
		return Reply{Text: "This recipe has no steps.", Cursor: 0}
	}

	switch intent {
	case IntentSteps, IntentFirstStep:
		return Reply{Text: describeStep(r.Steps[0]), Cursor: 0}
	case IntentNext:
		if cursor+1 >= len(r.Steps) {
			return Reply{Text: "You are at the last step.", Cursor: cursor}
		}
		return Reply{Text: describeStep(r.Steps[cursor+1]), Cursor: cursor + 1}
	case IntentBack:
		if cursor == 0 {
			return Reply{Text: "You are at the first step.", Cursor: cursor}
		}
		return Reply{Text: describeStep(r.Steps[cursor-1]), Cursor: cursor - 1}
	case IntentRepeat:
		return Reply{Text: describeStep(r.Steps[cursor]), Cursor: cursor}
	case IntentTime:
		return Reply{Text: answerTime(r, cursor), Cursor: cursor}
	case IntentTemperature:
		return Reply{Text: answerTemperature(r, cursor), Cursor: cursor}
	case IntentQuantity:
		return Reply{Text: answerQuantity(r, cursor, norm), Cursor: cursor}
	case IntentVagueHowTo:
		return answerVagueHowTo(r, cursor)
	}
	return Reply{Text: HelpText, Cursor: cursor}
}

// ShowIngredients 列出所有食材
func ShowIngredients(r *recipe.Recipe) string {
	lines := []string{fmt.Sprintf("Here are the ingredients for %q:", r.Title)}
	for _, ing := range r.Ingredients {
		line := "- " + amount(ing)
		if ing.Descriptor != "" {
			line += ing.Descriptor + " "
		}
		line += ing.Name
		if ing.Preparation != "" {
			line += ", " + ing.Preparation
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Ordinal 1 -> 1st, 12 -> 12th, 22 -> 22nd
func Ordinal(n int) string {
	suffix := "th"
	if m := n % 100; m < 10 || m > 20 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

func describeStep(step recipe.Step) string {
	return fmt.Sprintf("The %s step is: %s", Ordinal(step.StepNumber), step.Description)
}

func answerTime(r *recipe.Recipe, cursor int) string {
	step := r.Steps[cursor]
	if step.Time.Duration != "" {
		return fmt.Sprintf("In this step, the time is %s.", step.Time.Duration)
	}

	// 找共用方法的步驟
	for _, s := range r.Steps {
		if s.Time.Duration != "" && sharesAny(step.Methods, s.Methods) {
			return fmt.Sprintf("For %s earlier, the recipe says: %s.", strings.Join(step.Methods, ", "), s.Time.Duration)
		}
	}
	for _, s := range r.Steps {
		if s.Time.Duration != "" {
			return fmt.Sprintf("Earlier, the recipe says: %s.", s.Time.Duration)
		}
	}
	return "The recipe does not specify a clear time here."
}

func answerTemperature(r *recipe.Recipe, cursor int) string {
	step := r.Steps[cursor]
	if step.Temperature.Oven != "" {
		return fmt.Sprintf("In this step, the oven should be at %s.", step.Temperature.Oven)
	}
	if step.Context.OvenTemperature != "" {
		return fmt.Sprintf("The oven should be at %s.", step.Context.OvenTemperature)
	}
	for _, s := range r.Steps {
		if s.Temperature.Oven != "" {
			return fmt.Sprintf("The recipe uses an oven temperature of %s.", s.Temperature.Oven)
		}
	}
	return "I couldn't find an oven temperature in the recipe."
}

func answerQuantity(r *recipe.Recipe, cursor int, norm string) string {
	// 問題中明確提到的食材
	var lines []string
	for _, ing := range r.Ingredients {
		name := strings.ToLower(ing.Name)
		if name == "" {
			continue
		}
		if len(recipe.MatchVocabulary(norm, []string{name})) > 0 {
			lines = append(lines, amount(ing)+ing.Name)
		}
	}
	switch len(lines) {
	case 0:
	case 1:
		return fmt.Sprintf("You need %s.", lines[0])
	default:
		return "Here are the quantities:\n- " + strings.Join(lines, "\n- ")
	}

	// 沒有指名時用目前步驟的食材
	for _, name := range r.Steps[cursor].Ingredients {
		for _, ing := range r.Ingredients {
			if strings.ToLower(ing.Name) == name {
				lines = append(lines, amount(ing)+ing.Name)
			}
		}
	}
	switch len(lines) {
	case 0:
		return "I'm not sure which ingredient you mean."
	case 1:
		return fmt.Sprintf("For that, you need %s.", lines[0])
	default:
		return "For this step, the relevant quantities are:\n- " + strings.Join(lines, "\n- ")
	}
}

func answerVagueHowTo(r *recipe.Recipe, cursor int) Reply {
	step := r.Steps[cursor]
	action := step.Action
	if action == "" && len(step.Methods) > 0 {
		action = step.Methods[0]
	}
	if action == "" {
		return Reply{Text: "I'm not sure what 'that' refers to in this step.", Cursor: cursor}
	}
	return link(cursor, youtubeURL+"how+to+"+plus(action))
}

// amount 數量與單位，後面帶一個空白
func amount(ing recipe.Ingredient) string {
	var b strings.Builder
	if ing.Quantity != nil {
		b.WriteString(strconv.FormatFloat(*ing.Quantity, 'g', 6, 64))
		b.WriteByte(' ')
	}
	if ing.Unit != "" {
		b.WriteString(ing.Unit)
		b.WriteByte(' ')
	}
	return b.String()
}

func link(cursor int, url string) Reply {
	return Reply{Text: url, Cursor: cursor, Link: url}
}

func plus(query string) string {
	return strings.ReplaceAll(strings.TrimSpace(query), " ", "+")
}

func sharesAny(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func clamp(cursor, n int) int {
	if cursor < 0 || n == 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
