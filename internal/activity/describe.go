package activity

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultDescription renders an UPPER_SNAKE_CASE event type as Title Case
// words, e.g. PASSWORD_CHANGED becomes "Password Changed".
func DefaultDescription(eventType string) string {
	words := strings.Fields(strings.ReplaceAll(strings.ToLower(eventType), "_", " "))
	if len(words) == 0 {
		return ""
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// Text returns metadata[key] as a trimmed string, or "" when missing.
func (m Metadata) Text(key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Amount formats an integer number of cents stored at metadata[key] as a
// currency amount, e.g. 125050 with "USD" becomes "USD 1,250.50". It returns
// "" when the key is missing or not numeric.
func (m Metadata) Amount(key, currency string) string {
	if m == nil {
		return ""
	}
	var cents int64
	switch v := m[key].(type) {
	case float64:
		cents = int64(v)
	case int:
		cents = int64(v)
	case int64:
		cents = v
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return ""
		}
		cents = n
	default:
		return ""
	}

	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)
	for i := len(whole) - 3; i > 0; i -= 3 {
		whole = whole[:i] + "," + whole[i:]
	}
	out := fmt.Sprintf("%s%s.%02d", sign, whole, cents%100)
	if currency != "" {
		out = currency + " " + out
	}
	return out
}
