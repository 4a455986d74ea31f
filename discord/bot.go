// Package discord provides the chat transport. It owns the
// discordgo.Session lifecycle, routes ordinary text messages through the
// conversation policy, and answers the /start command with the static
// welcome.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/lorebot/lorebot"
	"github.com/lorebot/lorebot/chat"
)

// Config holds Discord bot configuration.
type Config struct {
	// Token is the Discord bot token.
	Token string

	// GuildID optionally scopes slash command registration to one guild.
	// Empty registers the commands globally.
	GuildID string
}

// Responder abstracts the discordgo.Session methods the bot calls, so
// tests can record outbound traffic without a gateway connection.
type Responder interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Bot connects the conversation policy to Discord.
type Bot struct {
	session   *discordgo.Session
	policy    *chat.Policy
	logger    *slog.Logger
	guildID   string
	commands  []*discordgo.ApplicationCommand
	closeOnce sync.Once
}

// New creates a Bot and registers its gateway handlers. The session is not
// opened until Run is called.
func New(cfg Config, policy *chat.Policy, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	if logger == nil {
		logger = slog.Default()
	}

	b := &Bot{
		session: session,
		policy:  policy,
		logger:  logger,
		guildID: cfg.GuildID,
	}

	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.HandleMessage(context.Background(), s, m)
	})
	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.HandleInteraction(s, i)
	})

	return b, nil
}

// Run opens the gateway connection, registers the /start command, and
// blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord: open session: %w", err)
	}
	defer b.Close()

	appID := b.session.State.User.ID
	registered, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, []*discordgo.ApplicationCommand{
		{Name: "start", Description: "Say hello and learn what the bot can do"},
	})
	if err != nil {
		return fmt.Errorf("discord: register commands: %w", err)
	}
	b.commands = registered
	b.logger.Info("discord commands registered", "count", len(registered))

	<-ctx.Done()
	return ctx.Err()
}

// Close unregisters commands and disconnects from Discord.
func (b *Bot) Close() error {
	var closeErr error
	b.closeOnce.Do(func() {
		if b.session.State != nil && b.session.State.User != nil {
			appID := b.session.State.User.ID
			for _, cmd := range b.commands {
				if err := b.session.ApplicationCommandDelete(appID, b.guildID, cmd.ID); err != nil {
					b.logger.Warn("discord: unregister command failed", "command", cmd.Name, "err", err)
				}
			}
		}
		closeErr = b.session.Close()
	})
	return closeErr
}

// HandleMessage routes an ordinary text message through the conversation
// policy and sends each reply in order. Messages from bots (including our
// own echoes) and empty messages are ignored. Send failures are logged
// and never propagated.
func (b *Bot) HandleMessage(ctx context.Context, s Responder, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	text := strings.TrimSpace(m.Content)
	if text == "" {
		return
	}

	for _, reply := range b.policy.Respond(ctx, m.Author.ID, text) {
		if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
			b.logger.Warn("discord: send failed", "channel", m.ChannelID, "err", err)
		}
	}
}

// HandleInteraction answers the /start command with the static welcome.
// The welcome is independent of conversation state: it neither reads nor
// marks the greeted flag.
func (b *Bot) HandleInteraction(s Responder, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name != "start" {
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: lorebot.Welcome},
	})
	if err != nil {
		b.logger.Warn("discord: welcome response failed", "err", err)
	}
}
