package recipe

import "regexp"

var (
	durationPattern    = regexp.MustCompile(`(?i)\d+\s*(?:minutes?|mins?|hours?|hrs?)`)
	temperaturePattern = regexp.MustCompile(`(?i)\d+\s*(?:degrees\s*)?[FC]`)
)

// ExtractDuration 取出第一個時間描述，例如 "30 minutes"
func ExtractDuration(text string) Timing {
	return Timing{Duration: durationPattern.FindString(text)}
}

// ExtractTemperature 取出第一個溫度描述，例如 "350 degrees F"
// 不判斷是否與烤箱相關，一律記為 oven
func ExtractTemperature(text string) Temperature {
	return Temperature{Oven: temperaturePattern.FindString(text)}
}
