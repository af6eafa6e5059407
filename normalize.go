package lexipage

import (
	"strings"
	"unicode/utf8"
)

// NormalizeKey turns a phrase into its cache key: trimmed, lowercased, with
// internal whitespace collapsed to single spaces. An empty result means the
// phrase had no content.
func NormalizeKey(phrase string) string {
	return strings.ToLower(strings.Join(strings.Fields(phrase), " "))
}

// ValidateKey checks a normalized key against the given length limit.
// Returns nil for a usable key, or a *ValidationError describing the problem.
func ValidateKey(key string, maxLen int) error {
	if key == "" {
		return &ValidationError{Phrase: key, Message: "empty phrase"}
	}
	if maxLen > 0 && utf8.RuneCountInString(key) > maxLen {
		return &ValidationError{Phrase: key, Message: "phrase too long"}
	}
	return nil
}
