package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apyx-assistant/domain"
)

type stubExtractor struct {
	payload string
	err     error
	prompts []string
}

func (e *stubExtractor) CompleteJSON(_ context.Context, prompt string, _ domain.JSONSchema, out any) error {
	e.prompts = append(e.prompts, prompt)
	if e.err != nil {
		return e.err
	}
	return json.Unmarshal([]byte(e.payload), out)
}

func TestTranslate(t *testing.T) {
	provider := &stubProvider{name: "primary", text: "नमस्ते"}
	svc := NewAssistantService(provider, nil)

	translation, err := svc.Translate(context.Background(), "Hello", "hi")
	require.NoError(t, err)
	assert.Equal(t, "नमस्ते", translation)
}

func TestTranslateProviderFailure(t *testing.T) {
	provider := &stubProvider{name: "primary", err: providerErr("primary", domain.ClassificationQuotaExceeded)}
	svc := NewAssistantService(provider, nil)

	_, err := svc.Translate(context.Background(), "Hello", "hi")
	assert.Error(t, err)
}

func TestTranslateNoProvider(t *testing.T) {
	svc := NewAssistantService(nil, nil)
	_, err := svc.Translate(context.Background(), "Hello", "hi")
	assert.Error(t, err)
}

func TestExtractReminder(t *testing.T) {
	extractor := &stubExtractor{
		payload: `{"title":"Drink water","description":"Stay hydrated","scheduledFor":"2026-09-01T10:00:00Z"}`,
	}
	svc := NewAssistantService(nil, extractor)

	draft := svc.ExtractReminder(context.Background(), "Remind me to drink water tomorrow at 10")

	assert.Equal(t, "Drink water", draft.Title)
	assert.Equal(t, "Stay hydrated", draft.Description)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), draft.ScheduledFor)
}

func TestExtractReminderFailureUsesDefaults(t *testing.T) {
	extractor := &stubExtractor{err: errors.New("model unavailable")}
	svc := NewAssistantService(nil, extractor)

	before := time.Now()
	draft := svc.ExtractReminder(context.Background(), "Remind me to drink water")

	assert.Equal(t, "Reminder", draft.Title)
	assert.Equal(t, "Remind me to drink water", draft.Description)
	// Default schedule is roughly one hour out.
	assert.WithinDuration(t, before.Add(time.Hour), draft.ScheduledFor, time.Minute)
}

func TestExtractReminderBadDateKeepsDefaultSchedule(t *testing.T) {
	extractor := &stubExtractor{
		payload: `{"title":"Drink water","description":"Stay hydrated","scheduledFor":"whenever"}`,
	}
	svc := NewAssistantService(nil, extractor)

	before := time.Now()
	draft := svc.ExtractReminder(context.Background(), "Remind me to drink water")

	assert.Equal(t, "Drink water", draft.Title)
	assert.WithinDuration(t, before.Add(time.Hour), draft.ScheduledFor, time.Minute)
}

func TestExtractNote(t *testing.T) {
	extractor := &stubExtractor{payload: `{"title":"Groceries","content":"Milk, eggs, bread"}`}
	svc := NewAssistantService(nil, extractor)

	draft := svc.ExtractNote(context.Background(), "Note down milk eggs bread")

	assert.Equal(t, "Groceries", draft.Title)
	assert.Equal(t, "Milk, eggs, bread", draft.Content)
}

func TestExtractNoteFailureUsesDefaults(t *testing.T) {
	extractor := &stubExtractor{err: errors.New("model unavailable")}
	svc := NewAssistantService(nil, extractor)

	draft := svc.ExtractNote(context.Background(), "Note down milk eggs bread")

	assert.Equal(t, "Note", draft.Title)
	assert.Equal(t, "Note down milk eggs bread", draft.Content)
}

func TestExtractWithoutExtractorUsesDefaults(t *testing.T) {
	svc := NewAssistantService(nil, nil)

	reminder := svc.ExtractReminder(context.Background(), "call mom")
	note := svc.ExtractNote(context.Background(), "call mom")

	assert.Equal(t, "Reminder", reminder.Title)
	assert.Equal(t, "call mom", reminder.Description)
	assert.Equal(t, "Note", note.Title)
	assert.Equal(t, "call mom", note.Content)
}
