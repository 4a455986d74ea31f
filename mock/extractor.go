package mock

import "github.com/lorebot/lorebot"

var _ lorebot.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of lorebot.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
