// Package slog provides logging decorators for domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lorebot/lorebot"
)

// Ensure LoggingKnowledgeStore implements lorebot.KnowledgeStore.
var _ lorebot.KnowledgeStore = (*LoggingKnowledgeStore)(nil)

// LoggingKnowledgeStore wraps a KnowledgeStore with load logging.
type LoggingKnowledgeStore struct {
	next   lorebot.KnowledgeStore
	logger *slog.Logger
}

// NewLoggingKnowledgeStore creates a new LoggingKnowledgeStore.
func NewLoggingKnowledgeStore(next lorebot.KnowledgeStore, logger *slog.Logger) *LoggingKnowledgeStore {
	return &LoggingKnowledgeStore{next: next, logger: logger}
}

// Load delegates to the wrapped store and logs the operation.
func (s *LoggingKnowledgeStore) Load(ctx context.Context) (knowledge lorebot.Knowledge, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("knowledge load",
			"entries", len(knowledge),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}
