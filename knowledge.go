package lorebot

import (
	"context"
	"net/url"
	"strings"
)

// Knowledge maps normalized source URLs to the text extracted from them.
type Knowledge map[string]string

// Entry is a single source page destined for the knowledge document.
type Entry struct {
	SourceID string `json:"sourceId"`
	Text     string `json:"text"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.SourceID == "" {
		return Errorf(EINVALID, "entry source ID required")
	}
	if e.Text == "" {
		return Errorf(EINVALID, "entry text required")
	}
	return nil
}

// KnowledgeStore loads the knowledge document.
//
// Implementations re-read the backing document on every call so the
// document can be replaced while the chat service is running. A missing
// or malformed document degrades to empty Knowledge rather than an error;
// callers treat empty Knowledge as "no knowledge available".
type KnowledgeStore interface {
	Load(ctx context.Context) (Knowledge, error)
}

// KnowledgeWriter merges scraped entries into the knowledge document.
// Merging is last-write-wins per normalized source URL.
type KnowledgeWriter interface {
	Merge(ctx context.Context, entries []Entry) error
}

// NormalizeSourceURL strips the query string, fragment, and trailing slash
// from a URL so that variants of the same page collapse to a single
// storage key.
func NormalizeSourceURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid source URL %q: %v", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "source URL %q missing scheme or host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}
