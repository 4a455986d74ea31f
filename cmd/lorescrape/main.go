// Command lorescrape runs the knowledge acquisition pipeline: it reads
// page URLs from a links file or a sitemap, fetches each page, extracts
// its visible text, and merges the results into the knowledge document.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/lorebot/lorebot"
	"github.com/lorebot/lorebot/bloom"
	"github.com/lorebot/lorebot/fs"
	"github.com/lorebot/lorebot/goquery"
	lorehttp "github.com/lorebot/lorebot/http"
	"github.com/lorebot/lorebot/rod"
	"github.com/lorebot/lorebot/scrape"
	"github.com/lorebot/lorebot/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Links       string        `arg:"" optional:"" default:"links.txt" help:"File with one page URL per line"`
	Sitemap     string        `help:"Discover URLs from a sitemap instead of the links file"`
	Out         string        `short:"o" default:"data/knowledge.json" env:"LOREBOT_KNOWLEDGE" help:"Path to the knowledge document"`
	RPS         float64       `name:"rps" default:"0.5" help:"Max requests per second per domain"`
	Concurrency int           `short:"c" default:"3" help:"Number of concurrent fetch workers"`
	Timeout     time.Duration `default:"30s" help:"Fetch timeout per page"`
	NoBrowser   bool          `help:"Fetch with plain HTTP instead of a headless browser"`
	Extractor   string        `default:"elements" enum:"elements,article" help:"Text extraction strategy (elements or article)"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lorescrape"),
		kong.Description("Fetch pages into the lorebot knowledge document"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire the URL source
	var source lorebot.URLSource
	if cli.Sitemap != "" {
		source = lorehttp.NewSitemapSource(cli.Sitemap, nil)
	} else {
		source = scrape.NewFileSource(cli.Links)
	}

	// Wire the fetcher
	var fetcher lorebot.Fetcher
	if cli.NoBrowser {
		fetcher = lorehttp.NewFetcher(lorehttp.WithTimeout(cli.Timeout))
	} else {
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --no-browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	}
	defer fetcher.Close()

	// Wire the extractor
	var extractor lorebot.TextExtractor
	switch cli.Extractor {
	case "article":
		extractor = trafilatura.NewExtractor()
	default:
		extractor = goquery.NewExtractor()
	}

	store := fs.NewKnowledgeStore(cli.Out, logger)

	scraper := &scrape.Scraper{
		Source:      source,
		Fetcher:     fetcher,
		Extractor:   extractor,
		Store:       store,
		Writer:      store,
		Limiter:     scrape.NewDomainLimiter(cli.RPS),
		Seen:        bloom.NewFilter(100_000, 0.01),
		Concurrency: cli.Concurrency,
		Logger:      logger,
	}

	result, err := scraper.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Saved %d, skipped %d, failed %d page(s) to %s\n",
		result.Saved, result.Skipped, result.Failed, cli.Out)
	if result.Failed > 0 && result.Saved == 0 && result.Skipped == 0 {
		return fmt.Errorf("all pages failed")
	}
	return nil
}
