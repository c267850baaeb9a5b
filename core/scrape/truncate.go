package scrape

import (
	"strings"
	"unicode/utf8"
)

// TruncationMarker is appended to text cut by Truncate.
const TruncationMarker = "\n...[truncated]"

const (
	DefaultPrimaryBudget  = 8000
	DefaultFallbackBudget = 6000
)

// Truncate bounds text to budget characters (runes, never bytes). Longer
// text is cut to its first budget runes and TruncationMarker is appended.
// Output that is already exactly budget runes plus the marker is returned
// unchanged, so Truncate(Truncate(x, b), b) == Truncate(x, b). A budget of
// zero or less disables truncation.
func Truncate(text string, budget int) (string, bool) {
	if budget <= 0 || utf8.RuneCountInString(text) <= budget {
		return text, false
	}

	if head, ok := strings.CutSuffix(text, TruncationMarker); ok && utf8.RuneCountInString(head) == budget {
		return text, true
	}

	cut := 0
	for i := range text {
		if cut == budget {
			return text[:i] + TruncationMarker, true
		}
		cut++
	}
	return text, false
}
