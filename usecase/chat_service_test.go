package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apyx-assistant/domain"
	"apyx-assistant/langpack"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Complete(_ context.Context, _, _ string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func providerErr(name string, classification domain.Classification) error {
	return &domain.ProviderError{
		Provider:       name,
		Classification: classification,
		Err:            errors.New("upstream failure"),
	}
}

type stubStore struct {
	appendErr error
	appended  []domain.NewExchange
	nextID    int
}

func (s *stubStore) AppendExchange(_ context.Context, ex domain.NewExchange) (domain.Exchange, error) {
	if s.appendErr != nil {
		return domain.Exchange{}, s.appendErr
	}
	s.nextID++
	s.appended = append(s.appended, ex)
	return domain.Exchange{
		ID:       s.nextID,
		Message:  ex.Message,
		Response: ex.Response,
		Language: ex.Language,
	}, nil
}

func (s *stubStore) Exchanges(context.Context, int) ([]domain.Exchange, error) { return nil, nil }
func (s *stubStore) CreateReminder(context.Context, domain.NewReminder) (domain.Reminder, error) {
	return domain.Reminder{}, nil
}
func (s *stubStore) Reminders(context.Context) ([]domain.Reminder, error) { return nil, nil }
func (s *stubStore) SetReminderCompleted(context.Context, int, bool) (domain.Reminder, error) {
	return domain.Reminder{}, nil
}
func (s *stubStore) CreateNote(context.Context, domain.NewNote) (domain.Note, error) {
	return domain.Note{}, nil
}
func (s *stubStore) Notes(context.Context) ([]domain.Note, error) { return nil, nil }
func (s *stubStore) DeleteNote(context.Context, int) (bool, error) { return false, nil }

type stubBroker struct {
	published [][]byte
	topics    []string
}

func (b *stubBroker) Publish(_ context.Context, topic, _ string, message []byte) error {
	b.topics = append(b.topics, topic)
	b.published = append(b.published, message)
	return nil
}

func (b *stubBroker) Subscribe(context.Context, string, string) (<-chan domain.Message, error) {
	return nil, nil
}

func (b *stubBroker) Close() error { return nil }

func TestHandleChatPrimarySuccess(t *testing.T) {
	primary := &stubProvider{name: "primary", text: "Certainly, Aryan."}
	secondary := &stubProvider{name: "secondary", text: "secondary reply"}
	store := &stubStore{}

	svc := NewChatService([]domain.CompletionProvider{primary, secondary}, store, nil)
	reply := svc.HandleChat(context.Background(), domain.ChatRequest{Message: "Hello", Language: "en"})

	assert.Equal(t, "Certainly, Aryan.", reply.Response)
	assert.Equal(t, "en", reply.Language)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls, "secondary must not be consulted when primary succeeds")

	require.Len(t, store.appended, 1)
	assert.Equal(t, "Hello", store.appended[0].Message)
	assert.Equal(t, "Certainly, Aryan.", store.appended[0].Response)
	assert.Nil(t, store.appended[0].UserID)
}

func TestHandleChatSecondarySuccess(t *testing.T) {
	primary := &stubProvider{name: "primary", err: providerErr("primary", domain.ClassificationQuotaExceeded)}
	secondary := &stubProvider{name: "secondary", text: "secondary reply"}

	svc := NewChatService([]domain.CompletionProvider{primary, secondary}, &stubStore{}, nil)
	reply := svc.HandleChat(context.Background(), domain.ChatRequest{Message: "Hello", Language: "en"})

	assert.Equal(t, "secondary reply", reply.Response)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestHandleChatNoSecondaryUsesFallback(t *testing.T) {
	primary := &stubProvider{name: "primary", err: providerErr("primary", domain.ClassificationQuotaExceeded)}

	svc := NewChatService([]domain.CompletionProvider{primary}, &stubStore{}, nil)
	reply := svc.HandleChat(context.Background(), domain.ChatRequest{Message: "Hello", Language: "en"})

	assert.Equal(t, langpack.Fallback("en", domain.ClassificationQuotaExceeded), reply.Response)
}

func TestHandleChatBothFailUsesPrimaryClassification(t *testing.T) {
	// The secondary fails with a different classification; the canned
	// reply must still be keyed by the primary's.
	primary := &stubProvider{name: "primary", err: providerErr("primary", domain.ClassificationUnauthorized)}
	secondary := &stubProvider{name: "secondary", err: providerErr("secondary", domain.ClassificationQuotaExceeded)}

	svc := NewChatService([]domain.CompletionProvider{primary, secondary}, &stubStore{}, nil)
	reply := svc.HandleChat(context.Background(), domain.ChatRequest{Message: "Hello", Language: "en"})

	assert.Equal(t, langpack.Fallback("en", domain.ClassificationUnauthorized), reply.Response)
	assert.Equal(t, 1, secondary.calls)
}

func TestHandleChatStoreFailureKeepsReply(t *testing.T) {
	primary := &stubProvider{name: "primary", text: "provider text"}
	store := &stubStore{appendErr: fmt.Errorf("store is down")}

	svc := NewChatService([]domain.CompletionProvider{primary}, store, nil)
	reply := svc.HandleChat(context.Background(), domain.ChatRequest{Message: "Hello", Language: "en"})

	assert.Equal(t, "provider text", reply.Response)
}

func TestHandleChatEmptyMessageShortCircuits(t *testing.T) {
	primary := &stubProvider{name: "primary", text: "never used"}
	secondary := &stubProvider{name: "secondary", text: "never used"}
	store := &stubStore{}

	svc := NewChatService([]domain.CompletionProvider{primary, secondary}, store, nil)
	reply := svc.HandleChat(context.Background(), domain.ChatRequest{Message: "   ", Language: "hi"})

	assert.Equal(t, langpack.Fallback("hi", domain.ClassificationGeneralError), reply.Response)
	assert.Equal(t, "hi", reply.Language)
	assert.Equal(t, 0, primary.calls)
	assert.Equal(t, 0, secondary.calls)
	assert.Empty(t, store.appended, "empty turns are not persisted")
}

func TestHandleChatDefaultsLanguage(t *testing.T) {
	primary := &stubProvider{name: "primary", text: "reply"}

	svc := NewChatService([]domain.CompletionProvider{primary}, &stubStore{}, nil)
	reply := svc.HandleChat(context.Background(), domain.ChatRequest{Message: "Hello"})

	assert.Equal(t, "en", reply.Language)
}

func TestHandleChatUnknownLanguageFallsBackToEnglish(t *testing.T) {
	svc := NewChatService(nil, &stubStore{}, nil)
	reply := svc.HandleChat(context.Background(), domain.ChatRequest{Message: "Hello", Language: "xx"})

	assert.Equal(t, "en", reply.Language)
	assert.Equal(t, langpack.Fallback("en", domain.ClassificationGeneralError), reply.Response)
}

func TestHandleChatHindiQuotaScenario(t *testing.T) {
	// "Remind me to drink water" in Hindi with the primary out of quota
	// and no secondary configured.
	primary := &stubProvider{name: "primary", err: providerErr("primary", domain.ClassificationQuotaExceeded)}

	svc := NewChatService([]domain.CompletionProvider{primary}, &stubStore{}, nil)
	reply := svc.HandleChat(context.Background(), domain.ChatRequest{Message: "Remind me to drink water", Language: "hi"})

	assert.Equal(t, langpack.Fallback("hi", domain.ClassificationQuotaExceeded), reply.Response)
	assert.Equal(t, "hi", reply.Language)
}

func TestHandleChatNoProvidersConfigured(t *testing.T) {
	svc := NewChatService(nil, &stubStore{}, nil)
	reply := svc.HandleChat(context.Background(), domain.ChatRequest{Message: "Hello", Language: "bho"})

	assert.Equal(t, langpack.Fallback("bho", domain.ClassificationGeneralError), reply.Response)
	assert.NotEmpty(t, reply.Response)
}

func TestHandleChatPublishesExchangeEvent(t *testing.T) {
	primary := &stubProvider{name: "primary", text: "reply"}
	broker := &stubBroker{}

	svc := NewChatService([]domain.CompletionProvider{primary}, &stubStore{}, broker)
	svc.HandleChat(context.Background(), domain.ChatRequest{Message: "Hello", Language: "en"})

	require.Len(t, broker.published, 1)
	assert.Equal(t, ExchangeTopic, broker.topics[0])

	var event domain.ExchangeEvent
	require.NoError(t, json.Unmarshal(broker.published[0], &event))
	assert.Equal(t, "Hello", event.Message)
	assert.Equal(t, "reply", event.Response)
	assert.Equal(t, "en", event.Language)
}

func TestHandleChatNonProviderErrorClassifiesAsGeneral(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("unclassified failure")}

	svc := NewChatService([]domain.CompletionProvider{primary}, &stubStore{}, nil)
	reply := svc.HandleChat(context.Background(), domain.ChatRequest{Message: "Hello", Language: "en"})

	assert.Equal(t, langpack.Fallback("en", domain.ClassificationGeneralError), reply.Response)
}
