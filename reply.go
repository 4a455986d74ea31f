package lorebot

// Welcome is the static reply to the transport's greeting command. It is
// independent of conversation state and locale.
const Welcome = "👋 Hi! I'm your docs bot. Ask me anything!"

// Replies holds the fixed user-facing texts for one locale. The wording is
// part of the conversational contract and is asserted in tests.
type Replies struct {
	// NoKnowledge warns that the knowledge document is empty or unreadable.
	NoKnowledge string

	// GreetingOnly answers a greeting that matched no knowledge.
	GreetingOnly string

	// AnswerLeadIn precedes the first answer sent to a new user.
	AnswerLeadIn string

	// FirstGreeting answers a new user whose message matched no knowledge.
	FirstGreeting string

	// NoMatch asks the user to rephrase when nothing matched.
	NoMatch string

	// Apology replaces the answer when the completion backend failed.
	Apology string
}

var replies = map[Locale]Replies{
	LocaleEN: {
		NoKnowledge:   "⚠️ No knowledge found. Please run the scraper first.",
		GreetingOnly:  "👋 Hello! How can I help you?",
		AnswerLeadIn:  "👋 Hello! Here's your answer:",
		FirstGreeting: "👋 Hello! What can I help you with?",
		NoMatch:       "🤖 I couldn't find relevant information. Could you rephrase your question?",
		Apology:       "⚠️ Sorry, I couldn't generate an answer. Please try again later.",
	},
	LocaleES: {
		NoKnowledge:   "⚠️ No hay conocimiento cargado. Ejecutá el scraper primero.",
		GreetingOnly:  "👋 ¡Hola! ¿En qué puedo ayudarte?",
		AnswerLeadIn:  "👋 ¡Hola! Te respondo a continuación:",
		FirstGreeting: "👋 ¡Hola! ¿En qué puedo ayudarte?",
		NoMatch:       "🤖 No encontré información para eso. ¿Podés reformular tu consulta?",
		Apology:       "⚠️ Perdón, no pude generar una respuesta. Probá de nuevo más tarde.",
	},
}

// RepliesFor returns the reply catalog for a locale, falling back to
// English for unknown locales.
func RepliesFor(locale Locale) Replies {
	if r, ok := replies[locale]; ok {
		return r
	}
	return replies[LocaleEN]
}
