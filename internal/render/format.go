package render

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency rounds amount to whole dollars and groups the digits,
// e.g. 1234567.8 becomes "$1,234,568".
func FormatCurrency(amount float64) string {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return printer.Sprintf("-$%d", -rounded)
	}
	return printer.Sprintf("$%d", rounded)
}

// FormatDate renders t as "January 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// StatusClass derives the badge class from an availability label. Only the
// first space is replaced, so "For Sale" maps to "status-for-sale" while
// longer labels keep their remaining spaces.
func StatusClass(status string) string {
	return "status-" + strings.Replace(strings.ToLower(status), " ", "-", 1)
}

// Stars renders rating filled glyphs followed by the empty remainder up to five.
// Callers pass ratings already within [0,5]; out-of-range values are pinned
// so strings.Repeat never sees a negative count.
func Stars(rating int) string {
	rating = min(max(rating, 0), 5)
	return strings.Repeat("⭐", rating) + strings.Repeat("☆", 5-rating)
}

// orNA returns s, or "N/A" when s is empty.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
