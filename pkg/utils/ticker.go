package utils

import (
	"strings"
)

// NormalizeTicker converts user input to the canonical upper-case ticker form.
// Examples: " aapl " -> "AAPL", "$msft" -> "MSFT", "brk.b" -> "BRK.B".
func NormalizeTicker(ticker string) string {
	ticker = strings.TrimSpace(strings.ToUpper(ticker))

	// Remove $ prefix if present (common in chat)
	return strings.TrimPrefix(ticker, "$")
}

// TickersEqual reports whether two tickers match after normalization.
func TickersEqual(a, b string) bool {
	return NormalizeTicker(a) == NormalizeTicker(b)
}
