package scrape

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/lorebot/lorebot"
)

// Ensure FileSource implements lorebot.URLSource at compile time.
var _ lorebot.URLSource = (*FileSource)(nil)

// FileSource yields scrape URLs from a plain-text file, one URL per line.
// Blank lines and lines that do not start with "http" are skipped.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource reading from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// URLs reads the links file. A missing file is an error: a scrape run
// with no input is a misconfiguration, unlike an empty knowledge store.
func (s *FileSource) URLs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, lorebot.Errorf(lorebot.ENOTFOUND, "links file %q: %v", s.path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "http") {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, lorebot.Errorf(lorebot.EINTERNAL, "reading links file %q: %v", s.path, err)
	}
	return urls, nil
}
