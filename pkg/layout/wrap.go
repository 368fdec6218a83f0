package layout

import (
	"strings"
)

// Wrap splits text on spaces so each piece measures at most width. A word
// wider than width on its own is split between runes. Empty text yields one
// empty piece.
func Wrap(text string, style Style, width float64, m Measurer) (pieces []string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		pieces = []string{""}
		return pieces
	}

	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}

		if m.Width(candidate, style) <= width {
			current = candidate
			continue
		}

		if current != "" {
			pieces = append(pieces, current)
			current = ""
		}

		if m.Width(word, style) <= width {
			current = word
			continue
		}

		var parts []string
		parts, current = splitWord(word, style, width, m)
		pieces = append(pieces, parts...)
	}

	if current != "" {
		pieces = append(pieces, current)
	}

	return pieces
}

// splitWord hard-splits an overlong word. The trailing remainder is returned
// separately so following words can join it.
func splitWord(word string, style Style, width float64, m Measurer) (parts []string, rest string) {
	var b strings.Builder
	for _, r := range word {
		next := b.String() + string(r)
		if b.Len() > 0 && m.Width(next, style) > width {
			parts = append(parts, b.String())
			b.Reset()
		}
		b.WriteRune(r)
	}
	rest = b.String()
	return parts, rest
}
