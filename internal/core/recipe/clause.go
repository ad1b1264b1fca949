package recipe

import "strings"

// SplitClauses 以 '.' 與 ';' 切分指示文字，去除空白並丟棄空片段
func SplitClauses(instruction string) []string {
	parts := strings.FieldsFunc(instruction, func(r rune) bool {
		return r == '.' || r == ';'
	})

	clauses := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			clauses = append(clauses, p)
		}
	}
	return clauses
}
