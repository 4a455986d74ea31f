package chat_test

import (
	"context"
	"sync"
	"testing"

	"github.com/lorebot/lorebot"
	"github.com/lorebot/lorebot/chat"
	"github.com/lorebot/lorebot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedKnowledge(k lorebot.Knowledge) *mock.KnowledgeStore {
	return &mock.KnowledgeStore{
		LoadFn: func(context.Context) (lorebot.Knowledge, error) { return k, nil },
	}
}

func TestPolicy_EmptyKnowledge_WarnsWithoutCompletion(t *testing.T) {
	t.Parallel()

	completerCalled := false
	policy := chat.NewPolicy(
		fixedKnowledge(lorebot.Knowledge{}),
		&mock.Completer{AnswerFn: func(context.Context, string, string, lorebot.Locale) (string, error) {
			completerCalled = true
			return "", nil
		}},
		nil,
	)

	replies := policy.Respond(context.Background(), "u1", "what is a lens?")

	require.Len(t, replies, 1)
	assert.Equal(t, lorebot.RepliesFor(lorebot.LocaleEN).NoKnowledge, replies[0])
	assert.False(t, completerCalled)
	assert.False(t, policy.States.Greeted("u1"))
}

func TestPolicy_EmptyKnowledge_WarnsInSpanish(t *testing.T) {
	t.Parallel()

	policy := chat.NewPolicy(fixedKnowledge(nil), nil, nil)

	replies := policy.Respond(context.Background(), "u1", "¿qué es una lente?")

	require.Len(t, replies, 1)
	assert.Equal(t, lorebot.RepliesFor(lorebot.LocaleES).NoKnowledge, replies[0])
}

func TestPolicy_FirstMessageWithMatch_LeadInThenAnswer(t *testing.T) {
	t.Parallel()

	knowledge := lorebot.Knowledge{"https://example.com/docs": "lenses are made in lens studio"}
	completer := &mock.Completer{
		AnswerFn: func(_ context.Context, question, background string, locale lorebot.Locale) (string, error) {
			assert.Equal(t, "what is a lens?", question)
			assert.Equal(t, "lenses are made in lens studio", background)
			assert.Equal(t, lorebot.LocaleEN, locale)
			return "• A lens is an AR effect.", nil
		},
	}
	policy := chat.NewPolicy(fixedKnowledge(knowledge), completer, nil)

	replies := policy.Respond(context.Background(), "u1", "what is a lens?")

	require.Len(t, replies, 2)
	assert.Equal(t, lorebot.RepliesFor(lorebot.LocaleEN).AnswerLeadIn, replies[0])
	assert.Equal(t, "• A lens is an AR effect.", replies[1])
	assert.True(t, policy.States.Greeted("u1"))
}

func TestPolicy_FirstMessageNoMatch_SingleGreeting(t *testing.T) {
	t.Parallel()

	knowledge := lorebot.Knowledge{"https://example.com/docs": "lorem ipsum"}
	completerCalled := false
	policy := chat.NewPolicy(
		fixedKnowledge(knowledge),
		&mock.Completer{AnswerFn: func(context.Context, string, string, lorebot.Locale) (string, error) {
			completerCalled = true
			return "", nil
		}},
		nil,
	)

	replies := policy.Respond(context.Background(), "u1", "zzz qqq")

	require.Len(t, replies, 1)
	assert.Equal(t, lorebot.RepliesFor(lorebot.LocaleEN).FirstGreeting, replies[0])
	assert.False(t, completerCalled)
	assert.True(t, policy.States.Greeted("u1"))
}

func TestPolicy_PureGreetingNoMatch_DoesNotMarkGreeted(t *testing.T) {
	t.Parallel()

	knowledge := lorebot.Knowledge{"https://example.com/docs": "lorem ipsum"}
	completerCalled := false
	policy := chat.NewPolicy(
		fixedKnowledge(knowledge),
		&mock.Completer{AnswerFn: func(context.Context, string, string, lorebot.Locale) (string, error) {
			completerCalled = true
			return "", nil
		}},
		nil,
	)

	replies := policy.Respond(context.Background(), "u1", "hola")

	require.Len(t, replies, 1)
	assert.Equal(t, lorebot.RepliesFor(lorebot.LocaleES).GreetingOnly, replies[0])
	assert.False(t, completerCalled)

	// A user who only ever greets stays un-greeted and still gets the
	// lead-in on their first real question.
	assert.False(t, policy.States.Greeted("u1"))

	replies = policy.Respond(context.Background(), "u1", "what is lorem?")
	require.Len(t, replies, 2)
	assert.Equal(t, lorebot.RepliesFor(lorebot.LocaleEN).AnswerLeadIn, replies[0])
}

func TestPolicy_GreetingWithMatch_TreatedAsQuestion(t *testing.T) {
	t.Parallel()

	knowledge := lorebot.Knowledge{"a": "say hello to configure the lens"}
	policy := chat.NewPolicy(
		fixedKnowledge(knowledge),
		&mock.Completer{AnswerFn: func(context.Context, string, string, lorebot.Locale) (string, error) {
			return "answer", nil
		}},
		nil,
	)

	replies := policy.Respond(context.Background(), "u1", "hello lens")

	require.Len(t, replies, 2)
	assert.Equal(t, lorebot.RepliesFor(lorebot.LocaleEN).AnswerLeadIn, replies[0])
	assert.Equal(t, "answer", replies[1])
	assert.True(t, policy.States.Greeted("u1"))
}

func TestPolicy_SecondMessageWithMatch_AnswerOnly(t *testing.T) {
	t.Parallel()

	knowledge := lorebot.Knowledge{"a": "the fox documentation"}
	policy := chat.NewPolicy(
		fixedKnowledge(knowledge),
		&mock.Completer{AnswerFn: func(context.Context, string, string, lorebot.Locale) (string, error) {
			return "the answer", nil
		}},
		nil,
	)

	_ = policy.Respond(context.Background(), "u1", "fox")
	replies := policy.Respond(context.Background(), "u1", "fox again")

	require.Len(t, replies, 1)
	assert.Equal(t, "the answer", replies[0])
}

func TestPolicy_GreetedNoMatch_Fallback(t *testing.T) {
	t.Parallel()

	knowledge := lorebot.Knowledge{"a": "the fox documentation"}
	policy := chat.NewPolicy(
		fixedKnowledge(knowledge),
		&mock.Completer{AnswerFn: func(context.Context, string, string, lorebot.Locale) (string, error) {
			return "the answer", nil
		}},
		nil,
	)

	_ = policy.Respond(context.Background(), "u1", "fox")
	replies := policy.Respond(context.Background(), "u1", "zzz qqq")

	require.Len(t, replies, 1)
	assert.Equal(t, lorebot.RepliesFor(lorebot.LocaleEN).NoMatch, replies[0])
}

func TestPolicy_CompletionFailure_ApologyKeepsState(t *testing.T) {
	t.Parallel()

	knowledge := lorebot.Knowledge{"a": "the fox documentation"}
	policy := chat.NewPolicy(
		fixedKnowledge(knowledge),
		&mock.Completer{AnswerFn: func(context.Context, string, string, lorebot.Locale) (string, error) {
			return "", lorebot.Errorf(lorebot.EUNAVAILABLE, "backend down")
		}},
		nil,
	)

	replies := policy.Respond(context.Background(), "u1", "fox")

	require.Len(t, replies, 2)
	assert.Equal(t, lorebot.RepliesFor(lorebot.LocaleEN).AnswerLeadIn, replies[0])
	assert.Equal(t, lorebot.RepliesFor(lorebot.LocaleEN).Apology, replies[1])
	assert.True(t, policy.States.Greeted("u1"))
}

func TestPolicy_KnowledgeLoadError_TreatedAsEmpty(t *testing.T) {
	t.Parallel()

	store := &mock.KnowledgeStore{
		LoadFn: func(context.Context) (lorebot.Knowledge, error) {
			return nil, lorebot.Errorf(lorebot.EINTERNAL, "disk gone")
		},
	}
	policy := chat.NewPolicy(store, nil, nil)

	replies := policy.Respond(context.Background(), "u1", "what is this?")

	require.Len(t, replies, 1)
	assert.Equal(t, lorebot.RepliesFor(lorebot.LocaleEN).NoKnowledge, replies[0])
}

func TestPolicy_SpanishAnswerFlow(t *testing.T) {
	t.Parallel()

	knowledge := lorebot.Knowledge{"a": "las lentes se publican desde lens studio"}
	policy := chat.NewPolicy(
		fixedKnowledge(knowledge),
		&mock.Completer{AnswerFn: func(_ context.Context, _, _ string, locale lorebot.Locale) (string, error) {
			assert.Equal(t, lorebot.LocaleES, locale)
			return "• Las lentes se publican.", nil
		}},
		nil,
	)

	replies := policy.Respond(context.Background(), "u1", "¿qué es una lente?")

	require.Len(t, replies, 2)
	assert.Equal(t, lorebot.RepliesFor(lorebot.LocaleES).AnswerLeadIn, replies[0])
}

func TestPolicy_ConcurrentFirstMessages_SingleLeadIn(t *testing.T) {
	t.Parallel()

	knowledge := lorebot.Knowledge{"a": "the fox documentation"}
	policy := chat.NewPolicy(
		fixedKnowledge(knowledge),
		&mock.Completer{AnswerFn: func(context.Context, string, string, lorebot.Locale) (string, error) {
			return "answer", nil
		}},
		nil,
	)

	const n = 16
	results := make([][]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = policy.Respond(context.Background(), "u1", "fox")
		}()
	}
	wg.Wait()

	leadIns := 0
	for _, replies := range results {
		if len(replies) == 2 {
			leadIns++
		}
	}
	assert.Equal(t, 1, leadIns)
}
