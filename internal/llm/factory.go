package llm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/pantrychef/internal/model"
)

// Clients bundles the provider adapters used by the kitchen.
type Clients struct {
	Text   TextGenerator
	Images ImageGenerator
	Vision Detector
}

// NewClients builds every adapter the configuration has keys for. Missing keys
// yield adapters that fail with ErrMissingKey when used, so commands that do
// not touch a provider keep working without it.
func NewClients(cfg Config, logger *slog.Logger) (Clients, error) {
	var clients Clients

	openAI, err := NewOpenAI(cfg, logger)
	switch {
	case err == nil:
		clients.Text = openAI
		clients.Images = openAI
	case errors.Is(err, ErrMissingKey):
		clients.Text = unconfigured{provider: providerOpenAI}
		clients.Images = unconfigured{provider: providerOpenAI}
	default:
		return Clients{}, err
	}

	gemini, err := NewGemini(cfg, logger)
	switch {
	case err == nil:
		clients.Vision = gemini
	case errors.Is(err, ErrMissingKey):
		clients.Vision = unconfigured{provider: providerGemini}
	default:
		return Clients{}, err
	}

	return clients, nil
}

// unconfigured stands in for a provider whose API key is absent.
type unconfigured struct {
	provider string
}

func (u unconfigured) err() error {
	return &APIError{Provider: u.provider, Kind: KindInvalidKey, Err: ErrMissingKey, Message: ErrMissingKey.Error()}
}

func (u unconfigured) GenerateJSON(context.Context, string, string) (string, error) {
	return "", u.err()
}

func (u unconfigured) GenerateImage(context.Context, string) (string, error) {
	return "", u.err()
}

func (u unconfigured) DetectItems(context.Context, string) ([]model.DetectedItem, error) {
	return nil, u.err()
}
