package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// coerceString converts a value decoded with json.Decoder.UseNumber into the string a
// browser would produce for `String(v || "")`. Falsy values yield "".
func coerceString(v any) string {
	if isFalsy(v) {
		return ""
	}
	return jsString(v)
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case float64:
		return t == 0 || math.IsNaN(t)
	}
	return false
}

func jsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return formatNumber(f)
	case float64:
		return formatNumber(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = jsString(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	}
	return ""
}

// formatNumber follows Number.prototype.toString: plain decimals in [1e-6, 1e21),
// otherwise exponent form without leading zeros in the exponent ("1e-7", "1e+21").
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// ParseLeadingInt mimics parseInt(s, 10): optional whitespace and sign, then as many
// digits as are present. ok is false when no digit was found.
func ParseLeadingInt(s string) (n int64, ok bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		if n < math.MaxInt64/10 {
			n = n*10 + int64(s[i]-'0')
		}
		i++
	}
	if i == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// ParseCount reads a stored counter value; missing or non-numeric values count as 0.
func ParseCount(s string) int64 {
	n, ok := ParseLeadingInt(s)
	if !ok {
		return 0
	}
	return n
}
