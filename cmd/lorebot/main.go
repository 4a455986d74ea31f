// Command lorebot runs the chat service: it connects to Discord, answers
// questions from the scraped knowledge document, and phrases answers
// through Gemini.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/lorebot/lorebot/chat"
	"github.com/lorebot/lorebot/discord"
	"github.com/lorebot/lorebot/fs"
	"github.com/lorebot/lorebot/gemini"
	loreslog "github.com/lorebot/lorebot/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Knowledge string `short:"k" default:"data/knowledge.json" env:"LOREBOT_KNOWLEDGE" help:"Path to the knowledge document"`
	Model     string `default:"gemini-2.5-flash" help:"Gemini completion model"`
	Guild     string `env:"DISCORD_GUILD_ID" help:"Guild to register commands in (empty for global)"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the chat service with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lorebot"),
		kong.Description("Knowledge-backed Discord answering bot"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

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

	token := os.Getenv("DISCORD_BOT_TOKEN")
	if token == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN environment variable not set")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	knowledge := loreslog.NewLoggingKnowledgeStore(
		fs.NewKnowledgeStore(cli.Knowledge, logger),
		logger,
	)
	completer := loreslog.NewLoggingCompleter(
		gemini.NewCompleter(client, cli.Model),
		logger,
	)
	policy := chat.NewPolicy(knowledge, completer, logger)

	bot, err := discord.New(discord.Config{Token: token, GuildID: cli.Guild}, policy, logger)
	if err != nil {
		return err
	}

	logger.Info("lorebot starting", "knowledge", cli.Knowledge, "model", cli.Model)
	return bot.Run(ctx)
}
