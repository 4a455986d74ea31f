package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lorebot/lorebot"
)

// Ensure LoggingCompleter implements lorebot.Completer.
var _ lorebot.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with call logging.
type LoggingCompleter struct {
	next   lorebot.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next lorebot.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Answer delegates to the wrapped completer and logs the operation.
// Question and background text are not logged, only their sizes.
func (c *LoggingCompleter) Answer(ctx context.Context, question, background string, locale lorebot.Locale) (answer string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("completion",
			"locale", locale,
			"question_len", len(question),
			"background_len", len(background),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Answer(ctx, question, background, locale)
}
