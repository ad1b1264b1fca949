package recipe

import "strings"

// Ingredient 解析後的食材行
type Ingredient struct {
	Raw         string   `json:"raw" yaml:"raw"`                                     // 原始文字
	Name        string   `json:"name" yaml:"name"`                                   // 食材名稱，無法辨識時為空字串
	Quantity    *float64 `json:"quantity,omitempty" yaml:"quantity,omitempty"`       // 數量
	Unit        string   `json:"unit,omitempty" yaml:"unit,omitempty"`               // 單位（小寫）
	Descriptor  string   `json:"descriptor,omitempty" yaml:"descriptor,omitempty"`   // 描述詞（小寫，空白分隔）
	Preparation string   `json:"preparation,omitempty" yaml:"preparation,omitempty"` // 逗號後的處理方式
}

// HasQuantity 是否解析出數量
func (i Ingredient) HasQuantity() bool {
	return i.Quantity != nil
}

// Timing 步驟時間資訊
type Timing struct {
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Temperature 步驟溫度資訊
// 任何溫度描述都記為 oven
type Temperature struct {
	Oven string `json:"oven,omitempty" yaml:"oven,omitempty"`
}

// Modifiers 步驟修飾資訊
type Modifiers struct {
	Tools string `json:"tools,omitempty" yaml:"tools,omitempty"` // 逗號分隔的工具名稱
}

// StepContext 從前面步驟延續下來的資訊
type StepContext struct {
	OvenTemperature string `json:"oven_temperature,omitempty" yaml:"oven_temperature,omitempty"`
}

// Step 單一原子步驟
type Step struct {
	StepNumber  int         `json:"step_number" yaml:"step_number"`
	Description string      `json:"description" yaml:"description"`
	Ingredients []string    `json:"ingredients" yaml:"ingredients"`
	Tools       []string    `json:"tools" yaml:"tools"`
	Methods     []string    `json:"methods" yaml:"methods"`
	Time        Timing      `json:"time" yaml:"time"`
	Temperature Temperature `json:"temperature" yaml:"temperature"`
	Action      string      `json:"action,omitempty" yaml:"action,omitempty"` // methods 的第一個
	Objects     []string    `json:"objects" yaml:"objects"`                   // 與 ingredients 相同
	Modifiers   Modifiers   `json:"modifiers" yaml:"modifiers"`
	Context     StepContext `json:"context" yaml:"context"`
}

// Recipe 食譜解析結果
type Recipe struct {
	Title       string       `json:"title" yaml:"title"`
	URL         string       `json:"url" yaml:"url"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	Tools       []string     `json:"tools" yaml:"tools"`
	Methods     []string     `json:"methods" yaml:"methods"`
	Steps       []Step       `json:"steps" yaml:"steps"`
}

// FindIngredient 依名稱（不分大小寫）查找食材
func (r *Recipe) FindIngredient(name string) (Ingredient, bool) {
	for _, ing := range r.Ingredients {
		if strings.EqualFold(ing.Name, name) {
			return ing, true
		}
	}
	return Ingredient{}, false
}
