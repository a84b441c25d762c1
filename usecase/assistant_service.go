package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"apyx-assistant/domain"
	"apyx-assistant/langpack"
	"apyx-assistant/utils/log"
)

// AssistantService covers the side features that talk to a single
// provider without the fallback chain: translation and structured
// reminder/note extraction.
type AssistantService struct {
	provider  domain.CompletionProvider
	extractor domain.StructuredCompleter
}

func NewAssistantService(provider domain.CompletionProvider, extractor domain.StructuredCompleter) *AssistantService {
	return &AssistantService{provider: provider, extractor: extractor}
}

// Translate is a single-shot provider call; unlike chat there is no
// fallback tier, the error surfaces to the handler.
func (s *AssistantService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("no completion provider configured")
	}
	prompt := fmt.Sprintf("Translate the following text to %s. Only return the translation, no explanations:\n\n%s",
		langpack.Name(langpack.Normalize(targetLanguage)), text)
	translation, err := s.provider.Complete(ctx, "", prompt)
	if err != nil {
		return "", fmt.Errorf("translating text: %w", err)
	}
	return translation, nil
}

var reminderSchema = domain.JSONSchema{
	Properties: map[string]string{
		"title":        "string",
		"description":  "string",
		"scheduledFor": "string",
	},
	Required: []string{"title", "description", "scheduledFor"},
}

var noteSchema = domain.JSONSchema{
	Properties: map[string]string{
		"title":   "string",
		"content": "string",
	},
	Required: []string{"title", "content"},
}

// ExtractReminder turns a natural-language message into a reminder
// draft. On any call or parse failure it returns a deterministic
// default derived from the message rather than an error.
func (s *AssistantService) ExtractReminder(ctx context.Context, message string) domain.ReminderDraft {
	fallback := domain.ReminderDraft{
		Title:        "Reminder",
		Description:  message,
		ScheduledFor: time.Now().Add(time.Hour),
	}
	if s.extractor == nil {
		return fallback
	}

	prompt := fmt.Sprintf(`Extract reminder information from this message and respond with JSON in this exact format:
{
  "title": "Brief title for the reminder",
  "description": "Detailed description",
  "scheduledFor": "ISO date string for when to remind"
}

Message: %q`, message)

	var raw struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ScheduledFor string `json:"scheduledFor"`
	}
	if err := s.extractor.CompleteJSON(ctx, prompt, reminderSchema, &raw); err != nil {
		log.WithCtx(ctx).Warn("reminder extraction failed, using defaults", zap.Error(err))
		return fallback
	}

	draft := fallback
	if raw.Title != "" {
		draft.Title = raw.Title
	}
	if raw.Description != "" {
		draft.Description = raw.Description
	}
	if when, err := time.Parse(time.RFC3339, raw.ScheduledFor); err == nil {
		draft.ScheduledFor = when
	}
	return draft
}

// ExtractNote turns a natural-language message into a note draft, with
// the same never-fail policy as ExtractReminder.
func (s *AssistantService) ExtractNote(ctx context.Context, message string) domain.NoteDraft {
	fallback := domain.NoteDraft{Title: "Note", Content: message}
	if s.extractor == nil {
		return fallback
	}

	prompt := fmt.Sprintf(`Extract note information from this message and respond with JSON in this exact format:
{
  "title": "Brief title for the note",
  "content": "Full content of the note"
}

Message: %q`, message)

	var raw struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := s.extractor.CompleteJSON(ctx, prompt, noteSchema, &raw); err != nil {
		log.WithCtx(ctx).Warn("note extraction failed, using defaults", zap.Error(err))
		return fallback
	}

	draft := fallback
	if raw.Title != "" {
		draft.Title = raw.Title
	}
	if raw.Content != "" {
		draft.Content = raw.Content
	}
	return draft
}
