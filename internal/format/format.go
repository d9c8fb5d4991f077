// Package format renders amounts and dates for display in en-US.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout is the medium en-US date layout, e.g. "Jan 2, 2006".
const DateLayout = "Jan 2, 2006"

// InputDateLayout is the layout of date input values.
const InputDateLayout = "2006-01-02"

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats amount as US dollars with grouping, e.g. "$1,234.50".
func Currency(amount float64) string {
	scale, _ := currency.Standard.Rounding(currency.USD)

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}
	return sign + "$" + printer.Sprintf(fmt.Sprintf("%%.%df", scale), amount)
}

// Date formats t as a medium en-US date, e.g. "Mar 4, 2026".
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate accepts an RFC 3339 timestamp or a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(InputDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: expected %s or RFC 3339", s, "YYYY-MM-DD")
	}
	return t, nil
}
