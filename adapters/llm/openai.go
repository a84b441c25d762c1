package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"apyx-assistant/domain"
)

const (
	openaiDefaultBaseURL = "https://api.openai.com/v1"
	openaiDefaultModel   = "gpt-4o"
	openaiMaxTokens      = 1000
)

// OpenAIProvider is the secondary completion provider. It speaks the
// OpenAI-compatible chat-completions format, so any compatible endpoint
// works via OPENAI_BASE_URL.
type OpenAIProvider struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = openaiDefaultBaseURL
	}
	if model == "" {
		model = openaiDefaultModel
	}
	return &OpenAIProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: callTimeout},
	}
}

func (o *OpenAIProvider) Name() string { return "openai" }

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

func (o *OpenAIProvider) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	messages := []chatMessage{}
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userMessage})

	body, err := json.Marshal(chatCompletionRequest{
		Model:     o.model,
		Messages:  messages,
		MaxTokens: openaiMaxTokens,
	})
	if err != nil {
		return "", o.wrap(domain.ClassificationGeneralError, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", o.wrap(domain.ClassificationGeneralError, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", o.wrap(domain.ClassificationGeneralError, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", o.wrap(domain.ClassificationGeneralError, err)
	}

	var parsed chatCompletionResponse
	// Error bodies are JSON too; a decode failure still classifies by status.
	_ = json.Unmarshal(payload, &parsed)

	if resp.StatusCode != http.StatusOK {
		return "", o.wrap(classifyStatus(resp.StatusCode, parsed), fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload))))
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", o.wrap(domain.ClassificationGeneralError, fmt.Errorf("empty completion"))
	}
	return parsed.Choices[0].Message.Content, nil
}

func classifyStatus(status int, parsed chatCompletionResponse) domain.Classification {
	if parsed.Error != nil && parsed.Error.Code == "insufficient_quota" {
		return domain.ClassificationQuotaExceeded
	}
	switch status {
	case http.StatusTooManyRequests:
		return domain.ClassificationQuotaExceeded
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ClassificationUnauthorized
	default:
		return domain.ClassificationGeneralError
	}
}

func (o *OpenAIProvider) wrap(classification domain.Classification, err error) error {
	return &domain.ProviderError{
		Provider:       o.Name(),
		Classification: classification,
		Err:            err,
	}
}
