// Package fs stores the knowledge base as a single pretty-printed JSON
// document on disk: a flat object mapping normalized source URLs to
// extracted page text. The document is human-editable and re-read on every
// load so the scraper can update it while the chat service is running.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lorebot/lorebot"
)

// Ensure KnowledgeStore implements the domain interfaces at compile time.
var (
	_ lorebot.KnowledgeStore  = (*KnowledgeStore)(nil)
	_ lorebot.KnowledgeWriter = (*KnowledgeStore)(nil)
)

// KnowledgeStore reads and writes the knowledge document.
//
// Load fails soft: a missing or unparseable document yields empty
// Knowledge and a logged warning, never an error. A corrupted document
// must not take the chat service down.
type KnowledgeStore struct {
	path   string
	logger *slog.Logger
}

// NewKnowledgeStore creates a KnowledgeStore backed by the document at path.
func NewKnowledgeStore(path string, logger *slog.Logger) *KnowledgeStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &KnowledgeStore{path: path, logger: logger}
}

// Path returns the location of the knowledge document.
func (s *KnowledgeStore) Path() string {
	return s.path
}

// Load re-reads the knowledge document. Entries whose value is not a JSON
// string are skipped individually so one bad entry does not discard the
// rest of the document.
func (s *KnowledgeStore) Load(ctx context.Context) (lorebot.Knowledge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return lorebot.Knowledge{}, nil
	}
	if err != nil {
		s.logger.Warn("knowledge document unreadable", "path", s.path, "err", err)
		return lorebot.Knowledge{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("knowledge document malformed, treating as empty", "path", s.path, "err", err)
		return lorebot.Knowledge{}, nil
	}

	knowledge := make(lorebot.Knowledge, len(raw))
	for sourceID, msg := range raw {
		var text string
		if err := json.Unmarshal(msg, &text); err != nil {
			s.logger.Warn("skipping unreadable knowledge entry", "source", sourceID, "err", err)
			continue
		}
		knowledge[sourceID] = text
	}
	return knowledge, nil
}

// Merge writes entries into the knowledge document, last-write-wins per
// source ID. The document is rewritten via a temporary file and rename so
// a crash mid-write cannot corrupt it.
func (s *KnowledgeStore) Merge(ctx context.Context, entries []lorebot.Entry) error {
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return err
		}
	}

	knowledge, err := s.Load(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		knowledge[entry.SourceID] = entry.Text
	}

	data, err := json.MarshalIndent(knowledge, "", "  ")
	if err != nil {
		return lorebot.Errorf(lorebot.EINTERNAL, "encoding knowledge document: %v", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return lorebot.Errorf(lorebot.EINTERNAL, "creating knowledge directory: %v", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return lorebot.Errorf(lorebot.EINTERNAL, "writing knowledge document: %v", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return lorebot.Errorf(lorebot.EINTERNAL, "replacing knowledge document: %v", err)
	}
	return nil
}
