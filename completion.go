package lorebot

import "context"

// Completer turns matched knowledge and a user question into a final
// natural-language answer.
type Completer interface {
	// Answer phrases an answer to question from the matched background
	// text, in the given locale. Returns EUNAVAILABLE when the completion
	// backend cannot be reached.
	Answer(ctx context.Context, question, background string, locale Locale) (string, error)
}
