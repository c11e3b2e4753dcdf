package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Veraticus/pantrychef/internal/common"
	"github.com/Veraticus/pantrychef/internal/llm"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultDatabasePath is used when database.path is unset.
const DefaultDatabasePath = "$HOME/.local/share/pantry/pantry.db"

// Config is the resolved application configuration.
type Config struct {
	DatabasePath string `validate:"required"`
	LLM          LLMConfig
	Credits      CreditsConfig
	Costs        CostsConfig
	Generation   GenerationConfig
}

// LLMConfig configures the model providers.
type LLMConfig struct {
	OpenAIKey   string
	GeminiKey   string
	Model       string `validate:"required"`
	ImageModel  string `validate:"required"`
	VisionModel string `validate:"required"`
	BaseURL     string `validate:"omitempty,url"`
	Timeout     time.Duration
	RateLimit   int     `validate:"gte=-1"`
	Temperature float64 `validate:"gte=0,lte=2"`
	MaxTokens   int     `validate:"gt=0"`
}

// CreditsConfig sets the account allowances.
type CreditsConfig struct {
	Initial int `validate:"gte=0"`
	Monthly int `validate:"gte=0"`
}

// CostsConfig prices the paid operations.
type CostsConfig struct {
	Scan     int `validate:"gt=0"`
	Generate int `validate:"gt=0"`
}

// GenerationConfig tunes the recipe generator.
type GenerationConfig struct {
	MaxAttempts int `validate:"gte=1,lte=10"`
	Images      bool
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("llm.model", llm.DefaultModel)
	v.SetDefault("llm.image_model", llm.DefaultImageModel)
	v.SetDefault("llm.temperature", llm.DefaultTemperature)
	v.SetDefault("llm.max_tokens", llm.DefaultMaxTokens)
	v.SetDefault("llm.rate_limit", llm.DefaultRateLimit)
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("vision.model", llm.DefaultVisionModel)
	v.SetDefault("credits.initial", 25)
	v.SetDefault("credits.monthly", 10)
	v.SetDefault("costs.scan", 5)
	v.SetDefault("costs.generate", 1)
	v.SetDefault("generation.max_attempts", 3)
	v.SetDefault("generation.images", true)
}

// Load resolves the configuration. Precedence:
// 1. Viper (config file or PANTRY_ env vars)
// 2. Provider environment variables (OPENAI_API_KEY, GEMINI_API_KEY)
// 3. Defaults
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		DatabasePath: ExpandPath(v.GetString("database.path")),
		LLM: LLMConfig{
			OpenAIKey:   v.GetString("llm.openai_api_key"),
			GeminiKey:   v.GetString("vision.gemini_api_key"),
			Model:       v.GetString("llm.model"),
			ImageModel:  v.GetString("llm.image_model"),
			VisionModel: v.GetString("vision.model"),
			BaseURL:     v.GetString("llm.base_url"),
			Timeout:     v.GetDuration("llm.timeout"),
			RateLimit:   v.GetInt("llm.rate_limit"),
			Temperature: v.GetFloat64("llm.temperature"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
		},
		Credits: CreditsConfig{
			Initial: v.GetInt("credits.initial"),
			Monthly: v.GetInt("credits.monthly"),
		},
		Costs: CostsConfig{
			Scan:     v.GetInt("costs.scan"),
			Generate: v.GetInt("costs.generate"),
		},
		Generation: GenerationConfig{
			MaxAttempts: v.GetInt("generation.max_attempts"),
			Images:      v.GetBool("generation.images"),
		},
	}

	if cfg.LLM.OpenAIKey == "" {
		cfg.LLM.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLM.GeminiKey == "" {
		cfg.LLM.GeminiKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// LLMClientConfig converts the provider settings for llm.NewClients.
func (c *Config) LLMClientConfig() llm.Config {
	return llm.Config{
		OpenAIKey:   c.LLM.OpenAIKey,
		GeminiKey:   c.LLM.GeminiKey,
		Model:       c.LLM.Model,
		ImageModel:  c.LLM.ImageModel,
		VisionModel: c.LLM.VisionModel,
		BaseURL:     c.LLM.BaseURL,
		Timeout:     c.LLM.Timeout,
		RateLimit:   c.LLM.RateLimit,
		Temperature: c.LLM.Temperature,
		MaxTokens:   c.LLM.MaxTokens,
	}
}
