package utils

import "strings"

// ContainsAny checks if the text contains any of the given keywords
func ContainsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// Tokenize splits text into lowercase whitespace-delimited tokens
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// NormalizePlace canonicalizes a place name for cache keys and comparisons
func NormalizePlace(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FirstSentence returns the leading sentence of text, up to and including
// the first terminal punctuation mark. Text without one is one sentence.
func FirstSentence(text string) string {
	if idx := strings.IndexAny(text, ".!?"); idx >= 0 {
		return text[:idx+1]
	}
	return text
}
