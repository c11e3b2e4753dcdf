package llm

import (
	"context"
	"time"

	"github.com/Veraticus/pantrychef/internal/model"
)

// TextGenerator produces a JSON document from a system and a user prompt.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

// ImageGenerator produces an image for a prompt and returns its URL.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Detector finds grocery items in a base64 encoded JPEG.
type Detector interface {
	DetectItems(ctx context.Context, imageBase64 string) ([]model.DetectedItem, error)
}

// Config holds the provider settings.
type Config struct {
	OpenAIKey     string
	GeminiKey     string
	Model         string
	ImageModel    string
	VisionModel   string
	BaseURL       string
	VisionBaseURL string
	Timeout       time.Duration
	ImageTimeout  time.Duration
	RateLimit     int
	Temperature   float64
	MaxTokens     int
}

// Defaults applied when a Config field is left zero.
const (
	DefaultModel         = "gpt-4o-mini"
	DefaultImageModel    = "dall-e-3"
	DefaultVisionModel   = "gemini-1.5-flash"
	DefaultBaseURL       = "https://api.openai.com/v1"
	DefaultVisionBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTemperature   = 0.8
	DefaultMaxTokens     = 2000
	DefaultRateLimit     = 60
)

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.ImageModel == "" {
		c.ImageModel = DefaultImageModel
	}
	if c.VisionModel == "" {
		c.VisionModel = DefaultVisionModel
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.VisionBaseURL == "" {
		c.VisionBaseURL = DefaultVisionBaseURL
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.ImageTimeout == 0 {
		c.ImageTimeout = 60 * time.Second
	}
	return c
}
