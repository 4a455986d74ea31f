// Package lorebot provides a chat bot that answers questions from a small
// locally-stored knowledge base scraped from web pages. Incoming messages
// are matched against the knowledge document and forwarded, together with
// the matched content, to a language model for final phrasing.
//
// This package contains domain types, pure policy functions, and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., fs/, gemini/,
// discord/).
package lorebot
