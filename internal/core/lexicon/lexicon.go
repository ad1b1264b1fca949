package lexicon

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set 詞庫集合，建立後只讀，可在多個 goroutine 間共享
// 零值為空詞庫，請用 Default、Extend 或 LoadFile 建立
type Set struct {
	units          []string
	descriptors    []string
	tools          []string
	primaryMethods []string
	otherMethods   []string

	unitSet       map[string]struct{}
	descriptorSet map[string]struct{}
}

// extension YAML 擴充檔格式
type extension struct {
	Units          []string `yaml:"units"`
	Descriptors    []string `yaml:"descriptors"`
	Tools          []string `yaml:"tools"`
	PrimaryMethods []string `yaml:"primary_methods"`
	OtherMethods   []string `yaml:"other_methods"`
}

// 內建詞庫
var (
	defaultUnits = []string{
		"teaspoon", "teaspoons", "tsp", "tablespoon", "tablespoons", "tbsp",
		"cup", "cups", "pint", "pints", "quart", "quarts",
		"pound", "pounds", "lb", "lbs",
		"ounce", "ounces", "oz",
		"clove", "cloves",
		"pinch", "dash",
		"slice", "slices",
		"can", "cans",
		"package", "packages",
	}

	defaultDescriptors = []string{
		"fresh", "dried", "lean", "boneless", "skinless", "extra-virgin",
		"large", "small", "medium",
		"minced", "chopped", "shredded", "grated",
	}

	defaultTools = []string{
		"oven", "pan", "skillet", "baking sheet", "baking dish", "dish",
		"pot", "saucepan", "whisk", "bowl", "knife", "spatula", "grater",
		"colander", "mixing bowl", "foil", "grill",
	}

	defaultPrimaryMethods = []string{
		"bake", "boil", "simmer", "saute", "sauté", "fry", "grill",
		"broil", "roast", "steam", "poach",
	}

	defaultOtherMethods = []string{
		"chop", "slice", "mince", "stir", "mix", "whisk", "beat",
		"grate", "sprinkle", "drain", "pour", "spread", "layer",
		"preheat", "grease", "cover", "uncover",
	}

	defaultSet = build(extension{
		Units:          defaultUnits,
		Descriptors:    defaultDescriptors,
		Tools:          defaultTools,
		PrimaryMethods: defaultPrimaryMethods,
		OtherMethods:   defaultOtherMethods,
	})
)

// Default 返回內建詞庫
func Default() *Set {
	return defaultSet
}

// LoadFile 讀取 YAML 擴充詞庫，條目附加在內建詞庫之後
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}
	return Extend(data)
}

// Extend 解析 YAML 內容並與內建詞庫合併
func Extend(data []byte) (*Set, error) {
	var extra extension
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file: %w", err)
	}

	return build(extension{
		Units:          merge(defaultUnits, extra.Units),
		Descriptors:    merge(defaultDescriptors, extra.Descriptors),
		Tools:          merge(defaultTools, extra.Tools),
		PrimaryMethods: merge(defaultPrimaryMethods, extra.PrimaryMethods),
		OtherMethods:   merge(defaultOtherMethods, extra.OtherMethods),
	}), nil
}

// IsUnit 單位判斷（不分大小寫）
func (s *Set) IsUnit(token string) bool {
	_, ok := s.unitSet[strings.ToLower(token)]
	return ok
}

// IsDescriptor 描述詞判斷（不分大小寫）
func (s *Set) IsDescriptor(token string) bool {
	_, ok := s.descriptorSet[strings.ToLower(token)]
	return ok
}

// Units 返回單位列表的副本
func (s *Set) Units() []string { return slices.Clone(s.units) }

// Descriptors 返回描述詞列表的副本
func (s *Set) Descriptors() []string { return slices.Clone(s.descriptors) }

// Tools 返回工具列表的副本
func (s *Set) Tools() []string { return slices.Clone(s.tools) }

// PrimaryMethods 返回主要烹調方法的副本
func (s *Set) PrimaryMethods() []string { return slices.Clone(s.primaryMethods) }

// OtherMethods 返回其他動作的副本
func (s *Set) OtherMethods() []string { return slices.Clone(s.otherMethods) }

func build(e extension) *Set {
	return &Set{
		units:          slices.Clone(e.Units),
		descriptors:    slices.Clone(e.Descriptors),
		tools:          slices.Clone(e.Tools),
		primaryMethods: slices.Clone(e.PrimaryMethods),
		otherMethods:   slices.Clone(e.OtherMethods),
		unitSet:        toSet(e.Units),
		descriptorSet:  toSet(e.Descriptors),
	}
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// merge 保留原順序，新條目轉小寫並去重後附加
func merge(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, w := range base {
		seen[w] = struct{}{}
		out = append(out, w)
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
