package recipe

import (
	"strings"

	"recipe-parser/internal/core/lexicon"
)

// stepState 跨步驟延續的狀態，只存在於單次解析中
type stepState struct {
	ovenTemperature string // 最近一次出現的溫度
	next            int    // 下一個步驟編號
}

// BuildSteps 將指示文字切成原子步驟並標註工具、方法、時間、溫度與食材
// 步驟編號跨所有指示連續遞增，烤箱溫度向後延續直到被新的溫度覆蓋
func BuildSteps(lex *lexicon.Set, instructions []string, ingredients []Ingredient) []Step {
	names := ingredientNames(ingredients)

	state := stepState{next: 1}
	steps := make([]Step, 0, len(instructions))
	for _, instruction := range instructions {
		for _, clause := range SplitClauses(instruction) {
			var step Step
			step, state = buildStep(lex, clause, names, state)
			steps = append(steps, step)
		}
	}
	return steps
}

// buildStep 處理單一子句，返回步驟與更新後的狀態
func buildStep(lex *lexicon.Set, clause string, names []string, state stepState) (Step, stepState) {
	tools := MatchVocabulary(clause, lex.Tools())
	methods := dedupe(append(
		MatchVocabulary(clause, lex.PrimaryMethods()),
		MatchVocabulary(clause, lex.OtherMethods())...,
	))

	temperature := ExtractTemperature(clause)
	if temperature.Oven != "" {
		state.ovenTemperature = temperature.Oven
	}

	used := dedupe(MatchVocabulary(clause, names))

	step := Step{
		StepNumber:  state.next,
		Description: clause,
		Ingredients: used,
		Tools:       tools,
		Methods:     methods,
		Time:        ExtractDuration(clause),
		Temperature: temperature,
		Objects:     used,
		Context:     StepContext{OvenTemperature: state.ovenTemperature},
	}
	if len(methods) > 0 {
		step.Action = methods[0]
	}
	if len(tools) > 0 {
		step.Modifiers.Tools = strings.Join(tools, ", ")
	}

	state.next++
	return step, state
}

// ingredientNames 取出非空的小寫食材名稱
func ingredientNames(ingredients []Ingredient) []string {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if name := strings.ToLower(ing.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
