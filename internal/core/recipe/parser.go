package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"recipe-parser/internal/core/lexicon"
	"recipe-parser/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrInvalidInput 輸入不符合約定（非字串元素、無效 UTF-8 等）
var ErrInvalidInput = errors.New("invalid input")

// 輸入欄位名稱
const (
	FieldIngredients  = "ingredients"
	FieldInstructions = "instructions"
)

// WholeField InputError.Index 的特殊值，表示整個欄位不合法
const WholeField = -1

// InputError 指出哪個列表的第幾個元素不合法
type InputError struct {
	Field  string // ingredients 或 instructions
	Index  int    // 從 0 開始的位置，WholeField 表示欄位本身
	Reason string
}

func (e *InputError) Error() string {
	if e.Index == WholeField {
		return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s[%d]: %s", e.Field, e.Index, e.Reason)
}

// Unwrap 讓 errors.Is(err, ErrInvalidInput) 成立
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// Parser 食譜解析器，只持有唯讀詞庫，可同時被多個 goroutine 使用
type Parser struct {
	lexicon *lexicon.Set
}

// NewParser 建立解析器，lex 為 nil 時使用內建詞庫
func NewParser(lex *lexicon.Set) *Parser {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Parser{lexicon: lex}
}

var defaultParser = NewParser(nil)

// Parse 使用內建詞庫解析食譜
func Parse(title, url string, ingredients, instructions []string) (*Recipe, error) {
	return defaultParser.Parse(title, url, ingredients, instructions)
}

// ParseRaw 使用內建詞庫解析未定型的輸入
func ParseRaw(title, url string, ingredients, instructions []any) (*Recipe, error) {
	return defaultParser.ParseRaw(title, url, ingredients, instructions)
}

// Lexicon 返回解析器使用的詞庫
func (p *Parser) Lexicon() *lexicon.Set {
	return p.lexicon
}

// Parse 將食材行與指示文字解析為 Recipe
func (p *Parser) Parse(title, url string, ingredients, instructions []string) (*Recipe, error) {
	if err := validateUTF8(FieldIngredients, ingredients); err != nil {
		return nil, err
	}
	if err := validateUTF8(FieldInstructions, instructions); err != nil {
		return nil, err
	}

	parsed := ParseIngredients(p.lexicon, ingredients)
	steps := BuildSteps(p.lexicon, instructions, parsed)
	tools, methods := CollectToolsAndMethods(steps)

	common.LogDebug("食譜解析完成",
		zap.String("title", title),
		zap.Int("ingredients", len(parsed)),
		zap.Int("steps", len(steps)),
		zap.Int("tools", len(tools)),
		zap.Int("methods", len(methods)),
	)

	return &Recipe{
		Title:       title,
		URL:         url,
		Ingredients: parsed,
		Tools:       tools,
		Methods:     methods,
		Steps:       steps,
	}, nil
}

// ParseRaw 解析來自 JSON 等未定型來源的輸入
// 任何非字串元素都會立即回傳 InputError，不會略過或轉型
func (p *Parser) ParseRaw(title, url string, ingredients, instructions []any) (*Recipe, error) {
	ingLines, err := toStrings(FieldIngredients, ingredients)
	if err != nil {
		return nil, err
	}
	instLines, err := toStrings(FieldInstructions, instructions)
	if err != nil {
		return nil, err
	}
	return p.Parse(title, url, ingLines, instLines)
}

// AsList 將未定型的 JSON 欄位轉成列表，null 或缺少視為空列表
// 其他非列表的值回傳 InputError
func AsList(field string, v any) ([]any, error) {
	switch list := v.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return list, nil
	default:
		return nil, &InputError{
			Field:  field,
			Index:  WholeField,
			Reason: fmt.Sprintf("expected array, got %s", describe(v)),
		}
	}
}

func toStrings(field string, items []any) ([]string, error) {
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &InputError{
				Field:  field,
				Index:  i,
				Reason: fmt.Sprintf("expected string, got %s", describe(item)),
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func validateUTF8(field string, items []string) error {
	for i, s := range items {
		if !utf8.ValidString(s) {
			return &InputError{Field: field, Index: i, Reason: "not valid UTF-8"}
		}
	}
	return nil
}

// describe 以 JSON 的角度描述型別
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32, json.Number:
		return "number"
	case string:
		return "string"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
