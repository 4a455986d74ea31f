package lorebot

import "strings"

// Locale is the detected response language.
type Locale string

// Supported locales.
const (
	LocaleEN Locale = "en"
	LocaleES Locale = "es"
)

// Keyword sets for language detection: interrogatives plus a greeting word
// per language. Deliberately crude; detection must never fail.
var (
	spanishKeywords = []string{"qué", "como", "por qué", "dónde", "cuál", "cuando", "hola"}
	englishKeywords = []string{"what", "how", "why", "where", "which", "when", "hello"}
)

// greetingKeywords is the locale-independent union used for greeting
// detection.
var greetingKeywords = []string{"hola", "buenas", "hello", "hi"}

// DetectLocale classifies text as Spanish or English by keyword presence.
// The Spanish set is checked first, so text containing both sets resolves
// to Spanish. Unrecognized text defaults to English, making detection a
// total function.
func DetectLocale(text string) Locale {
	lower := strings.ToLower(text)
	for _, word := range spanishKeywords {
		if strings.Contains(lower, word) {
			return LocaleES
		}
	}
	for _, word := range englishKeywords {
		if strings.Contains(lower, word) {
			return LocaleEN
		}
	}
	return LocaleEN
}

// IsGreeting reports whether the text contains a greeting word from either
// language, case-insensitively.
func IsGreeting(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range greetingKeywords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
