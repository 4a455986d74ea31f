package lorebot

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxContextLen caps the concatenated matched text handed to the
// completion model, in bytes.
const MaxContextLen = 4000

// MatchResult is the outcome of matching a question against the knowledge
// base. Text is empty when Matched is false.
type MatchResult struct {
	Text    string
	Matched bool
}

// FindRelevant matches a question against the knowledge base. An entry
// matches when any whitespace-delimited token of the question occurs,
// case-insensitively, as a substring of the entry's text. Matched entries
// are concatenated with blank-line separators in ascending source-URL
// order and truncated to MaxContextLen.
//
// Matching on bare substrings means short common tokens over-match. That
// imprecision is the documented contract, not an accident; callers rely
// on the "any token present anywhere" semantics.
func FindRelevant(question string, knowledge Knowledge) MatchResult {
	tokens := strings.Fields(strings.ToLower(question))
	if len(tokens) == 0 || len(knowledge) == 0 {
		return MatchResult{}
	}

	// Map iteration order is randomized; fix it so results are stable
	// across calls with an unchanged store.
	ids := make([]string, 0, len(knowledge))
	for id := range knowledge {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var matches []string
	for _, id := range ids {
		text := knowledge[id]
		lower := strings.ToLower(text)
		for _, token := range tokens {
			if strings.Contains(lower, token) {
				matches = append(matches, text)
				break
			}
		}
	}
	if len(matches) == 0 {
		return MatchResult{}
	}

	return MatchResult{Text: truncate(strings.Join(matches, "\n\n"), MaxContextLen), Matched: true}
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
