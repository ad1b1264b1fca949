package source

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"recipe-parser/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// ErrNoRecipe 頁面中沒有 Recipe JSON-LD
var ErrNoRecipe = errors.New("page has no recipe JSON-LD")

// DefaultTitle 食譜沒有 name 時使用的標題
const DefaultTitle = "Unknown recipe"

// RawRecipe 從頁面取出、尚未解析的食譜資料
// Ingredients 與 Instructions 保留 JSON 原始型別，交給解析器檢查
type RawRecipe struct {
	Title        string `json:"title"`
	Ingredients  []any  `json:"ingredients"`
	Instructions []any  `json:"instructions"`
}

// ExtractRecipeData 從 HTML 的 ld+json script 中找出第一個 Recipe 物件
func ExtractRecipeData(page []byte) (*RawRecipe, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	for _, script := range findJSONLD(doc) {
		var data any
		if err := common.ParseJSONBytes([]byte(script), &data); err != nil {
			// 壞掉的區塊跳過，繼續找下一個
			common.LogDebug("略過無法解析的 JSON-LD", zap.Error(err))
			continue
		}
		if obj := findRecipe(data); obj != nil {
			return toRawRecipe(obj), nil
		}
	}

	return nil, ErrNoRecipe
}

// findJSONLD 依文件順序收集 application/ld+json script 內容
func findJSONLD(n *html.Node) []string {
	var scripts []string
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, "script") && isJSONLD(cur) {
			var b strings.Builder
			for c := cur.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
			if text := strings.TrimSpace(b.String()); text != "" {
				scripts = append(scripts, text)
			}
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(n)
	return scripts
}

func isJSONLD(n *html.Node) bool {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, "type") {
			return strings.EqualFold(strings.TrimSpace(attr.Val), "application/ld+json")
		}
	}
	return false
}

// findRecipe 在物件、列表或 @graph 中尋找 Recipe
func findRecipe(v any) map[string]any {
	switch data := v.(type) {
	case map[string]any:
		if hasType(data, "Recipe") {
			return data
		}
		if graph, ok := data["@graph"]; ok {
			return findRecipe(graph)
		}
	case []any:
		for _, item := range data {
			if obj := findRecipe(item); obj != nil {
				return obj
			}
		}
	}
	return nil
}

// hasType @type 可能是字串或字串列表
func hasType(obj map[string]any, want string) bool {
	switch t := obj["@type"].(type) {
	case string:
		return t == want
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func toRawRecipe(obj map[string]any) *RawRecipe {
	raw := &RawRecipe{
		Title:        DefaultTitle,
		Ingredients:  []any{},
		Instructions: []any{},
	}

	if name, ok := obj["name"].(string); ok && strings.TrimSpace(name) != "" {
		raw.Title = strings.TrimSpace(name)
	}

	switch ing := obj["recipeIngredient"].(type) {
	case nil:
	case []any:
		raw.Ingredients = ing
	default:
		raw.Ingredients = []any{ing}
	}

	switch inst := obj["recipeInstructions"].(type) {
	case nil:
	case []any:
		raw.Instructions = collectInstructions(raw.Instructions, inst)
	default:
		raw.Instructions = collectInstructions(raw.Instructions, []any{inst})
	}

	return raw
}

// collectInstructions 展開 HowToStep 與 HowToSection
// 不認得的型別原樣保留，由解析器回報錯誤
func collectInstructions(out []any, entries []any) []any {
	for _, entry := range entries {
		switch e := entry.(type) {
		case string:
			if s := strings.TrimSpace(e); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			if hasType(e, "HowToSection") {
				if items, ok := e["itemListElement"].([]any); ok {
					out = collectInstructions(out, items)
				}
				continue
			}
			switch text := e["text"].(type) {
			case nil:
			case string:
				if s := strings.TrimSpace(text); s != "" {
					out = append(out, s)
				}
			default:
				out = append(out, text)
			}
		default:
			out = append(out, e)
		}
	}
	return out
}
