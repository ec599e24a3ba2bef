package handlers

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Leading number before a "milhão/milhões" (million) token.
	// Accent-stripped forms (milhao, milhoes) share the same prefix.
	millionRe = regexp.MustCompile(`([\d.,]+)\s*milh`)
	// Leading number before a "mil" (thousand) token
	thousandRe = regexp.MustCompile(`([\d.,]+)\s*mil`)
	// First numeral run in the text
	numeralRe = regexp.MustCompile(`[\d.,]+`)
)

// currencyMarkers are stripped before numeric parsing
var currencyMarkers = []string{"r$", "$", "m²", "m2", "reais"}

// ParseNumericValue extracts a numeric value from free text the way leads
// write them: "450m²", "R$ 850.000", "850 mil", "1 milhão", "1.000.000,50".
// It is total: malformed input yields (0, false), never a panic.
//
// Locale handling: when both "." and "," appear, the separator appearing
// last is the decimal point and the other is a grouping mark; a lone ","
// is treated as the decimal point.
func ParseNumericValue(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	cleaned := strings.ToLower(strings.TrimSpace(text))
	for _, marker := range currencyMarkers {
		cleaned = strings.ReplaceAll(cleaned, marker, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	// Million before thousand: "milhão" contains "mil"
	if strings.Contains(cleaned, "milh") {
		if m := millionRe.FindStringSubmatch(cleaned); m != nil {
			if num, ok := parseNumeral(m[1]); ok {
				return num * 1_000_000, true
			}
		}
	}

	if strings.Contains(cleaned, "mil") {
		if m := thousandRe.FindStringSubmatch(cleaned); m != nil {
			if num, ok := parseNumeral(m[1]); ok {
				return num * 1_000, true
			}
		}
	}

	if m := numeralRe.FindString(cleaned); m != "" {
		return parseNumeral(m)
	}

	return 0, false
}

// parseNumeral converts a numeral run to a float, disambiguating the
// Brazilian (1.000.000,50) and US (1,000,000.50) separator conventions
func parseNumeral(numStr string) (float64, bool) {
	numStr = strings.Trim(numStr, ".,")
	if numStr == "" {
		return 0, false
	}

	hasComma := strings.Contains(numStr, ",")
	hasDot := strings.Contains(numStr, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(numStr, ",") > strings.LastIndex(numStr, ".") {
			// Brazilian format: dots group, comma is the decimal point
			numStr = strings.ReplaceAll(numStr, ".", "")
			numStr = strings.ReplaceAll(numStr, ",", ".")
		} else {
			// US format: commas group, dot is the decimal point
			numStr = strings.ReplaceAll(numStr, ",", "")
		}
	case hasComma:
		numStr = strings.ReplaceAll(numStr, ",", ".")
	case hasDot && strings.Count(numStr, ".") > 1:
		// Repeated dots can only be Brazilian grouping marks (1.000.000)
		numStr = strings.ReplaceAll(numStr, ".", "")
	}

	value, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
