package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Tokens that statement tables use for "no value". Treated as absent,
// never as zero.
var emptyTokens = map[string]bool{
	"":    true,
	"-":   true,
	"–":   true,
	"—":   true,
	"na":  true,
	"n/a": true,
}

var (
	// numberRe matches numeric tokens as they appear in statement lines:
	// optional sign, thousands separators, optional decimals, optional
	// parentheses (accounting negative).
	numberRe  = regexp.MustCompile(`-?\(?\d[\d,]*(?:\.\d+)?\)?`)
	decimalRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	blankRe   = regexp.MustCompile(`^[()\-–—\s]*$`)
)

// ParseNumber converts a raw token into a numeric value. It understands
// thousands separators, parentheses-as-negative, and dash/blank/"n/a"
// as missing. The second return value is false when the token carries
// no number; malformed input is never an error.
func ParseNumber(value string) (float64, bool) {
	text := strings.TrimSpace(value)
	if text == "" {
		return 0, false
	}
	if emptyTokens[strings.ToLower(text)] {
		return 0, false
	}

	text = strings.ReplaceAll(text, ",", "")
	text = strings.ReplaceAll(text, " ", "")
	if blankRe.MatchString(text) {
		return 0, false
	}

	neg := false
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		neg = true
		text = text[1 : len(text)-1]
	}
	text = strings.ReplaceAll(text, "–", "-")
	text = strings.ReplaceAll(text, "—", "-")

	match := decimalRe.FindString(text)
	if match == "" {
		return 0, false
	}
	number, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	if neg && number > 0 {
		number = -number
	}
	return number, true
}

// findNumbers extracts every parseable numeric value from a line,
// preserving left-to-right order.
func findNumbers(line string) []float64 {
	var values []float64
	for _, raw := range numberRe.FindAllString(line, -1) {
		if v, ok := ParseNumber(raw); ok {
			values = append(values, v)
		}
	}
	return values
}

// isYearValue reports whether v looks like a 4-digit reporting year
// rather than a financial figure.
func isYearValue(v float64) bool {
	return v >= 2000 && v <= 2099
}
