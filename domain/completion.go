package domain

import (
	"context"
	"errors"
	"fmt"
)

// Classification buckets every provider failure into one of three kinds.
// Adapters translate their native status codes into a Classification at
// their own boundary; nothing above the adapter ever inspects raw codes.
type Classification string

const (
	ClassificationQuotaExceeded Classification = "quota_exceeded"
	ClassificationUnauthorized  Classification = "invalid_key"
	ClassificationGeneralError  Classification = "general_error"
)

// ProviderError is the only error type completion providers return.
type ProviderError struct {
	Provider       string
	Classification Classification
	Err            error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %s: %v", e.Provider, e.Classification, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Classify extracts the classification from a provider error. Anything
// that is not a ProviderError counts as a general error.
func Classify(err error) Classification {
	var pe *ProviderError
	if errors.As(err, &pe) {
		switch pe.Classification {
		case ClassificationQuotaExceeded, ClassificationUnauthorized:
			return pe.Classification
		}
	}
	return ClassificationGeneralError
}

// CompletionProvider abstracts a remote text-generation service.
type CompletionProvider interface {
	// Name identifies the provider in logs.
	Name() string

	// Complete generates a reply for userMessage under systemPrompt.
	// Failures are always a *ProviderError.
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// JSONSchema describes the flat object shape a structured completion
// must return. Values are JSON type names, currently always "string".
type JSONSchema struct {
	Properties map[string]string
	Required   []string
}

// StructuredCompleter is implemented by providers that can constrain
// their output to a JSON schema. Used for reminder and note extraction,
// outside the chat flow.
type StructuredCompleter interface {
	CompleteJSON(ctx context.Context, prompt string, schema JSONSchema, out any) error
}
