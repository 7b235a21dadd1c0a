package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders an integer with thousands separators, e.g. 12,500.
func FormatAmount(n int) string {
	return amountPrinter.Sprintf("%d", n)
}
