package recipe

import (
	"strings"

	"recipe-parser/internal/core/lexicon"
)

// ParseIngredientLine 將一行食材文字拆成數量、單位、描述詞、名稱與處理方式
// 規則式解析，格式不符時只會得到缺少欄位的結果，不會回傳錯誤
func ParseIngredientLine(lex *lexicon.Set, line string) Ingredient {
	ing := Ingredient{Raw: line}
	tokens := strings.Fields(line)

	// 數量：第一個 token
	if len(tokens) > 0 {
		if q, ok := ParseQuantity(tokens[0]); ok {
			ing.Quantity = &q
			tokens = tokens[1:]
		}
	}

	// 單位：下一個 token
	if len(tokens) > 0 && lex.IsUnit(tokens[0]) {
		ing.Unit = strings.ToLower(tokens[0])
		tokens = tokens[1:]
	}

	// 以第一個逗號分出處理方式
	head, tail, found := strings.Cut(strings.Join(tokens, " "), ",")
	if found {
		ing.Preparation = strings.TrimSpace(tail)
	}

	var descriptors, names []string
	for _, tok := range strings.Fields(head) {
		if lex.IsDescriptor(tok) {
			descriptors = append(descriptors, strings.ToLower(tok))
			continue
		}
		names = append(names, tok)
	}

	ing.Descriptor = strings.Join(descriptors, " ")
	ing.Name = strings.TrimSpace(strings.Join(names, " "))
	return ing
}

// ParseIngredients 依序解析所有食材行
func ParseIngredients(lex *lexicon.Set, lines []string) []Ingredient {
	out := make([]Ingredient, 0, len(lines))
	for _, line := range lines {
		out = append(out, ParseIngredientLine(lex, line))
	}
	return out
}
