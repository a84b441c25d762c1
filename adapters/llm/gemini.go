package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"apyx-assistant/domain"
)

const (
	geminiDefaultModel = "gemini-2.5-flash"

	// Neither remote call is otherwise time-bounded; cap each attempt
	// so a hung provider cannot stall the chat turn indefinitely.
	callTimeout = 30 * time.Second
)

// GeminiProvider is the primary completion provider, backed by the
// Gemini Developer API. It also implements domain.StructuredCompleter
// for reminder/note extraction.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if model == "" {
		model = geminiDefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (g *GeminiProvider) Name() string { return "gemini" }

func (g *GeminiProvider) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	var config *genai.GenerateContentConfig
	if systemPrompt != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt}},
			},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(userMessage), config)
	if err != nil {
		return "", g.wrap(err)
	}

	text := resp.Text()
	if text == "" {
		return "", &domain.ProviderError{
			Provider:       g.Name(),
			Classification: domain.ClassificationGeneralError,
			Err:            fmt.Errorf("empty completion"),
		}
	}
	return text, nil
}

// CompleteJSON constrains the model to a JSON object matching schema
// and unmarshals the result into out.
func (g *GeminiProvider) CompleteJSON(ctx context.Context, prompt string, schema domain.JSONSchema, out any) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	properties := make(map[string]*genai.Schema, len(schema.Properties))
	for name := range schema.Properties {
		properties[name] = &genai.Schema{Type: genai.TypeString}
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: properties,
			Required:   schema.Required,
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return g.wrap(err)
	}
	if err := json.Unmarshal([]byte(resp.Text()), out); err != nil {
		return fmt.Errorf("decoding structured completion: %w", err)
	}
	return nil
}

// wrap maps genai error codes onto the three-way classification.
// Anything undocumented stays a general error.
func (g *GeminiProvider) wrap(err error) error {
	classification := domain.ClassificationGeneralError
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			classification = domain.ClassificationQuotaExceeded
		case http.StatusUnauthorized, http.StatusForbidden:
			classification = domain.ClassificationUnauthorized
		}
	}
	return &domain.ProviderError{
		Provider:       g.Name(),
		Classification: classification,
		Err:            err,
	}
}
