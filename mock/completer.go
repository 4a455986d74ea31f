package mock

import (
	"context"

	"github.com/lorebot/lorebot"
)

var _ lorebot.Completer = (*Completer)(nil)

// Completer is a mock implementation of lorebot.Completer.
type Completer struct {
	AnswerFn func(ctx context.Context, question, background string, locale lorebot.Locale) (string, error)
}

func (c *Completer) Answer(ctx context.Context, question, background string, locale lorebot.Locale) (string, error) {
	return c.AnswerFn(ctx, question, background, locale)
}
