package recipe

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchVocabulary 找出 text 中以完整單字（或片語）出現的詞庫條目
// 不分大小寫，結果依詞庫順序；重疊的條目各自判斷，全部回報
func MatchVocabulary(text string, vocab []string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, word := range vocab {
		if containsWord(lower, strings.ToLower(word)) {
			found = append(found, word)
		}
	}
	return found
}

// containsWord 在 text 中尋找 word，前後都必須是單字邊界
func containsWord(text, word string) bool {
	if word == "" {
		return false
	}
	for offset := 0; offset <= len(text)-len(word); {
		idx := strings.Index(text[offset:], word)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(word)
		if isBoundary(text, start) && isBoundary(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

// isBoundary 判斷 pos 兩側的字元是否一邊是單字字元、一邊不是
func isBoundary(text string, pos int) bool {
	before, after := false, false
	if pos > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:pos])
		before = isWordRune(r)
	}
	if pos < len(text) {
		r, _ := utf8.DecodeRuneInString(text[pos:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// dedupe 保留第一次出現的順序
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
