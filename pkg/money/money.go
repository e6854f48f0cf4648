// Package money converts between floats and the currency/percent strings
// the source site and the reports use.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Parse converts a currency string like "$1,234.50" into a float.
func Parse(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	clean = strings.TrimPrefix(clean, "$")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("parse currency %q: %w", s, err)
	}
	return v, nil
}

// Format renders a float as a currency string like "$1,234.50".
func Format(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// FormatPercent renders a ratio as a percent string like "12.5%".
func FormatPercent(v float64) string {
	return printer.Sprintf("%.1f%%", v*100)
}
