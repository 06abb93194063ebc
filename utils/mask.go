package utils

import "strings"

// MaskBidderName hides all but the first and last rune of a bidder identity
// for public bid history, e.g. "bidder42" -> "b******2".
func MaskBidderName(name string) string {
	runes := []rune(name)
	switch {
	case len(runes) == 0:
		return ""
	case len(runes) <= 2:
		return string(runes[0]) + "*"
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}
