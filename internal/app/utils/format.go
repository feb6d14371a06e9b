// Package utils holds the display formatters shared by the web pages.
package utils

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var tndPrinter = message.NewPrinter(language.MustParse("fr-TN"))

// FormatCurrency renders a dinar amount in the Tunisian French locale
// with the millime precision used on receipts.
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "N/A"
	}
	return tndPrinter.Sprintf("%v", currency.Symbol(currency.MustParseISO("TND").Amount(amount)))
}

var frenchMonths = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDate renders a backend date as "12 June 2024 (12 juin 2024)",
// pairing the English month with its French name for the bilingual
// paper trail. Unparseable input comes back as "N/A".
func FormatDate(dateString string) string {
	if dateString == "" {
		return "N/A"
	}

	parsed, err := time.Parse("2006-01-02", dateString)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, dateString)
	}
	if err != nil {
		return "N/A"
	}

	return fmt.Sprintf("%d %s %d (%d %s %d)",
		parsed.Day(), parsed.Month().String(), parsed.Year(),
		parsed.Day(), frenchMonths[parsed.Month()-1], parsed.Year())
}
