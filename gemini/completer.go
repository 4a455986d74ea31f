// Package gemini implements lorebot.Completer using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/lorebot/lorebot"
	"google.golang.org/genai"
)

// DefaultModel is the completion model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements lorebot.Completer at compile time.
var _ lorebot.Completer = (*Completer)(nil)

// Completer phrases final answers from matched knowledge using Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Answer phrases an answer to question from the matched background text.
// API and transport failures are reported as EUNAVAILABLE so the caller
// can degrade to an apology reply.
func (c *Completer) Answer(ctx context.Context, question, background string, locale lorebot.Locale) (string, error) {
	if question == "" {
		return "", lorebot.Errorf(lorebot.EINVALID, "question required")
	}
	if background == "" {
		return "", lorebot.Errorf(lorebot.EINVALID, "background text required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(question, background, locale)}},
		}},
		BuildConfig(locale),
	)
	if err != nil {
		return "", lorebot.Errorf(lorebot.EUNAVAILABLE, "completion request failed: %v", err)
	}
	if result == nil {
		return "", lorebot.Errorf(lorebot.EUNAVAILABLE, "completion backend returned no result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for a locale. The system
// instruction forbids greetings and demands structured, bullet-point
// answers; randomness is pinned low so phrasing stays consistent.
func BuildConfig(locale lorebot.Locale) *genai.GenerateContentConfig {
	temp := float32(0.5)

	instruction := "You are a robotic assistant. Respond clearly, professionally, and in bullet-point format. Do not greet the user."
	if locale == lorebot.LocaleES {
		instruction = "Sos un asistente robótico. Respondé sin saludo, en viñetas, claro y profesionalmente."
	}

	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt embedding the matched background
// text and the question, in the locale's language.
func BuildUserPrompt(question, background string, locale lorebot.Locale) string {
	var sb strings.Builder
	if locale == lorebot.LocaleES {
		sb.WriteString("Recibirás información y una pregunta del usuario.\n\n")
		sb.WriteString("- NO saludes.\n")
		sb.WriteString("- Respondé como un asistente robótico, profesional y estructurado.\n")
		sb.WriteString("- Usá viñetas o pasos (nada de párrafos largos).\n")
		sb.WriteString("- Sé claro y directo.\n\n")
		fmt.Fprintf(&sb, "Información:\n%s\n\n", background)
		fmt.Fprintf(&sb, "Pregunta del usuario:\n%s\n", question)
		return sb.String()
	}

	sb.WriteString("You will receive background info and a user question.\n\n")
	sb.WriteString("- DO NOT greet.\n")
	sb.WriteString("- Respond as a robotic, helpful assistant.\n")
	sb.WriteString("- Use bullet points or numbered steps (no long paragraphs).\n")
	sb.WriteString("- Be clear, structured, and professional.\n\n")
	fmt.Fprintf(&sb, "Background:\n%s\n\n", background)
	fmt.Fprintf(&sb, "User question:\n%s\n", question)
	return sb.String()
}
