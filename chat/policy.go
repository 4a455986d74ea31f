// Package chat implements the conversational policy: for each incoming
// message it decides whether to greet, answer from matched knowledge via
// the completion backend, or fall back, and it tracks minimal per-user
// state across turns.
package chat

import (
	"context"
	"log/slog"

	"github.com/lorebot/lorebot"
)

// Policy turns one incoming message into zero or more outbound replies.
//
// Failures never escape Respond: an empty or unreadable knowledge store, a
// failed completion call, and every other degraded path each resolve to a
// locale-appropriate reply, leaving the per-user state consistent for the
// next turn.
type Policy struct {
	Knowledge lorebot.KnowledgeStore
	Completer lorebot.Completer
	States    *GreetedStates
	Logger    *slog.Logger
}

// NewPolicy creates a Policy with a fresh state store.
func NewPolicy(knowledge lorebot.KnowledgeStore, completer lorebot.Completer, logger *slog.Logger) *Policy {
	return &Policy{
		Knowledge: knowledge,
		Completer: completer,
		States:    NewGreetedStates(),
		Logger:    logger,
	}
}

// Respond handles one message from a user and returns the replies to send,
// in order. The replies slice has one or two elements; a new user whose
// question matched knowledge receives a lead-in greeting followed by the
// answer in the same turn.
func (p *Policy) Respond(ctx context.Context, userID, text string) []string {
	locale := lorebot.DetectLocale(text)
	r := lorebot.RepliesFor(locale)

	knowledge, err := p.Knowledge.Load(ctx)
	if err != nil {
		p.logger().Warn("knowledge load failed", "user", userID, "err", err)
		knowledge = nil
	}
	if len(knowledge) == 0 {
		return []string{r.NoKnowledge}
	}

	isGreeting := lorebot.IsGreeting(text)
	match := lorebot.FindRelevant(text, knowledge)

	// A greeting with nothing to answer gets a greeting back. The user is
	// deliberately not marked greeted here: a greeting-only message does
	// not count as first contact, so the lead-in treatment is still owed
	// when a real question arrives.
	if isGreeting && !match.Matched {
		return []string{r.GreetingOnly}
	}

	var out []string
	if p.States.MarkGreeted(userID) {
		if !match.Matched {
			return []string{r.FirstGreeting}
		}
		out = append(out, r.AnswerLeadIn)
	}

	if !match.Matched {
		return append(out, r.NoMatch)
	}

	answer, err := p.Completer.Answer(ctx, text, match.Text, locale)
	if err != nil {
		p.logger().Warn("completion failed", "user", userID, "err", err)
		return append(out, r.Apology)
	}
	return append(out, answer)
}

func (p *Policy) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
