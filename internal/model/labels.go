package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler converts a field name into a human-friendly label, splitting
// on underscores, dashes, spaces and camelCase boundaries.
func DefaultLabeler(name string) string {
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		word := strings.ToLower(string(current))
		words = append(words, strings.ToUpper(word[:1])+word[1:])
		current = current[:0]
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
			continue
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]):
			flush()
		case i > 0 && unicode.IsDigit(r) != unicode.IsDigit(runes[i-1]):
			flush()
		}
		current = append(current, r)
	}
	flush()
	return strings.Join(words, " ")
}
