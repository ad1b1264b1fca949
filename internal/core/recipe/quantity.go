package recipe

import (
	"math"
	"strconv"
	"strings"
)

// ParseQuantity 解析數量 token，支援 "1"、"1/2"、"1-1/2"
// 無法解析時 ok 為 false，不視為錯誤
func ParseQuantity(token string) (float64, bool) {
	token = strings.TrimSpace(token)

	// 直接解析小數
	if v, ok := parseDecimal(token); ok {
		return v, true
	}

	// 分數，例如 1/2
	if strings.Contains(token, "/") && !strings.Contains(token, "-") {
		parts := strings.Split(token, "/")
		if len(parts) != 2 {
			return 0, false
		}
		num, ok := parseDecimal(parts[0])
		if !ok {
			return 0, false
		}
		den, ok := parseDecimal(parts[1])
		if !ok || den == 0 {
			return 0, false
		}
		return num / den, true
	}

	// 帶分數，例如 1-1/2；整數部分無法解析時視為 0
	if strings.Contains(token, "-") {
		parts := strings.Split(token, "-")
		if len(parts) != 2 {
			return 0, false
		}
		// "-2"、"-0.5" 是負數，不是帶分數
		if parts[0] == "" && !strings.Contains(parts[1], "/") {
			return 0, false
		}
		base, ok := parseDecimal(parts[0])
		if !ok {
			base = 0
		}
		if frac, ok := ParseQuantity(parts[1]); ok {
			return base + frac, true
		}
	}

	return 0, false
}

// parseDecimal 只接受有限的非負數
func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	if v == 0 {
		v = 0 // -0
	}
	return v, true
}
