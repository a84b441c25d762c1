package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"apyx-assistant/domain"
	"apyx-assistant/langpack"
	"apyx-assistant/utils/log"
)

// ExchangeTopic is where completed chat turns are published for the
// websocket layer to pick up.
const ExchangeTopic = "chat.exchanges"

// ChatService runs one chat turn end to end: ordered provider attempts,
// canned fallback when everything fails, then best-effort persistence.
// It is safe for concurrent use; all state is injected and read-only.
type ChatService struct {
	providers []domain.CompletionProvider
	store     domain.Store
	broker    domain.MessageBroker
}

// NewChatService builds the orchestrator. Providers are tried strictly
// in the given order; callers include only configured providers, so an
// absent secondary and a failed secondary take the same path. Both
// store and broker may be nil in tests.
func NewChatService(providers []domain.CompletionProvider, store domain.Store, broker domain.MessageBroker) *ChatService {
	return &ChatService{
		providers: providers,
		store:     store,
		broker:    broker,
	}
}

// HandleChat always produces a reply; no provider or storage failure
// ever propagates to the caller.
func (s *ChatService) HandleChat(ctx context.Context, req domain.ChatRequest) domain.ChatReply {
	language := langpack.Normalize(req.Language)
	message := strings.TrimSpace(req.Message)

	// Empty messages are rejected upstream, but tolerate them here:
	// skip the providers entirely and answer with the canned reply.
	if message == "" {
		return domain.ChatReply{
			Response: langpack.Fallback(language, domain.ClassificationGeneralError),
			Language: language,
		}
	}

	response := s.generate(ctx, language, message)
	s.persist(ctx, message, response, language)

	return domain.ChatReply{Response: response, Language: language}
}

// generate walks the provider chain and falls back to the canned table.
// When several providers fail, the canned reply is keyed by the FIRST
// failure's classification; later failures only get logged.
func (s *ChatService) generate(ctx context.Context, language, message string) string {
	systemPrompt := langpack.SystemPrompt(language)

	var firstErr error
	for _, provider := range s.providers {
		text, err := provider.Complete(ctx, systemPrompt, message)
		if err == nil {
			return text
		}
		log.WithCtx(ctx).Warn("completion provider failed",
			zap.String("provider", provider.Name()),
			zap.String("classification", string(domain.Classify(err))),
			zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}

	classification := domain.ClassificationGeneralError
	if firstErr != nil {
		classification = domain.Classify(firstErr)
	}
	return langpack.Fallback(language, classification)
}

// persist appends the exchange and announces it. Single attempt each;
// failures must never alter or delay the reply already determined.
func (s *ChatService) persist(ctx context.Context, message, response, language string) {
	if s.store == nil {
		return
	}

	exchange, err := s.store.AppendExchange(ctx, domain.NewExchange{
		UserID:   nil, // no authentication
		Message:  message,
		Response: response,
		Language: language,
	})
	if err != nil {
		log.WithCtx(ctx).Error("failed to store exchange", zap.Error(err))
		return
	}

	if s.broker == nil {
		return
	}
	event := domain.ExchangeEvent{
		ExchangeID: exchange.ID,
		Message:    exchange.Message,
		Response:   exchange.Response,
		Language:   exchange.Language,
		Timestamp:  exchange.Timestamp,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithCtx(ctx).Error("failed to marshal exchange event", zap.Error(err))
		return
	}
	if err := s.broker.Publish(ctx, ExchangeTopic, "", payload); err != nil {
		log.WithCtx(ctx).Warn("failed to publish exchange event", zap.Error(err))
	}
}
