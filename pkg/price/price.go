// Package price normalizes localized price strings into floats.
package price

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError is returned when a price string contains nothing parseable.
type ParseError struct {
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse price from %q", e.Text)
}

// ParsePrice parses a European-formatted price string into a float.
// "1.299,50 €" -> 1299.5: the euro sign and non-breaking spaces are
// stripped, "." is a thousands separator and "," the decimal separator.
func ParsePrice(text string) (float64, error) {
	cleaned := strings.NewReplacer(
		"€", "",
		" ", "",
		" ", "",
		".", "",
	).Replace(text)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	// keep digits and the first decimal point only
	var b strings.Builder
	seenDot := false
	for _, r := range cleaned {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if strings.Trim(digits, ".") == "" {
		return 0, &ParseError{Text: text}
	}

	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, &ParseError{Text: text}
	}
	return v, nil
}
