package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler converts a machine name into a human-friendly label.
// Underscores, dashes, spaces, camelCase humps and letter/digit transitions
// all start a new word: "first_name", "firstName" and "address2" become
// "First Name", "First Name" and "Address 2".
func DefaultLabeler(name string) string {
	words := nameWords(name)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func nameWords(name string) []string {
	var (
		words   []string
		current []rune
		prev    rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
			prev = 0
			continue
		case len(current) > 0 && wordBreak(prev, r):
			flush()
		}
		current = append(current, r)
		prev = r
	}
	flush()
	return words
}

func wordBreak(prev, next rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(next):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(next):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(next):
		return true
	}
	return false
}
