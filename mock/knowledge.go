package mock

import (
	"context"

	"github.com/lorebot/lorebot"
)

var _ lorebot.KnowledgeStore = (*KnowledgeStore)(nil)

// KnowledgeStore is a mock implementation of lorebot.KnowledgeStore.
type KnowledgeStore struct {
	LoadFn func(ctx context.Context) (lorebot.Knowledge, error)
}

func (s *KnowledgeStore) Load(ctx context.Context) (lorebot.Knowledge, error) {
	return s.LoadFn(ctx)
}

var _ lorebot.KnowledgeWriter = (*KnowledgeWriter)(nil)

// KnowledgeWriter is a mock implementation of lorebot.KnowledgeWriter.
type KnowledgeWriter struct {
	MergeFn func(ctx context.Context, entries []lorebot.Entry) error
}

func (w *KnowledgeWriter) Merge(ctx context.Context, entries []lorebot.Entry) error {
	return w.MergeFn(ctx, entries)
}
