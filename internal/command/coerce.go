package command

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/cases"
)

// asString renders a decoded JSON value the way loosely typed clients expect:
// numbers keep their literal text, booleans become "true"/"false", null and
// structured values become empty
func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

// SafeStrToInt parses the leading integer of s, clamped to the int32 range.
// Input is trimmed and cut to 10 characters (11 with a leading minus) before
// parsing. Text without leading digits yields 0
func SafeStrToInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	maxLen := 10
	if strings.HasPrefix(s, "-") {
		maxLen = 11
	}
	if len(s) > maxLen {
		s = s[:maxLen]
	}

	end := 0
	if s[0] == '-' || s[0] == '+' {
		end = 1
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int(n)
}

// AsBool treats "false" and "0" (trimmed, case-folded) as false and every
// other value, the empty string included, as true
func AsBool(v any) bool {
	s := strings.TrimSpace(asString(v))
	return !(cases.Fold().String(s) == "false" || s == "0")
}

func asInt(v any) int {
	return SafeStrToInt(asString(v))
}
