package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/pantrychef/internal/common"
	"golang.org/x/time/rate"
)

const providerOpenAI = "OpenAI"

// OpenAI generates recipe text and recipe images.
type OpenAI struct {
	httpClient  *http.Client
	imageClient *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
	apiKey      string
	baseURL     string
	model       string
	imageModel  string
	temperature float64
	maxTokens   int
}

// NewOpenAI creates an OpenAI client.
func NewOpenAI(cfg Config, logger *slog.Logger) (*OpenAI, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI: %w", ErrMissingKey)
	}
	cfg = cfg.withDefaults()

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &OpenAI{
		apiKey:      cfg.OpenAIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		imageModel:  cfg.ImageModel,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		limiter:     newRateLimiter(cfg.RateLimit),
		logger:      common.LoggerOrDefault(logger),
		httpClient:  &http.Client{Timeout: cfg.Timeout, Transport: transport},
		imageClient: &http.Client{Timeout: cfg.ImageTimeout, Transport: transport},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
		Index        int         `json:"index"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	N       int    `json:"n"`
}

type imageResponse struct {
	Data []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
	Created int64 `json:"created"`
}

type openAIErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// GenerateJSON runs a chat completion constrained to a JSON object and returns
// the message content. An empty completion is returned as "{}".
func (c *OpenAI) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature:    c.temperature,
		MaxTokens:      c.maxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	var resp chatResponse
	if err := c.post(ctx, c.httpClient, "/chat/completions", req, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", &APIError{Provider: providerOpenAI, Kind: KindUnknown, Message: "no completion choices returned"}
	}

	c.logger.Debug("chat completion finished",
		"model", resp.Model,
		"finish_reason", resp.Choices[0].FinishReason,
		"total_tokens", resp.Usage.TotalTokens)

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "{}", nil
	}
	return content, nil
}

// GenerateImage renders one 1024x1024 image and returns its URL.
func (c *OpenAI) GenerateImage(ctx context.Context, prompt string) (string, error) {
	req := imageRequest{
		Model:   c.imageModel,
		Prompt:  prompt,
		Size:    "1024x1024",
		Quality: "standard",
		N:       1,
	}

	var resp imageResponse
	if err := c.post(ctx, c.imageClient, "/images/generations", req, &resp); err != nil {
		return "", err
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", &APIError{Provider: providerOpenAI, Kind: KindUnknown, Message: "no image returned"}
	}
	return resp.Data[0].URL, nil
}

func (c *OpenAI) post(ctx context.Context, client *http.Client, path string, body, out any) error {
	if err := wait(ctx, c.limiter); err != nil {
		return err
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return transportError(ctx, providerOpenAI, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(ctx, providerOpenAI, err)
	}

	if resp.StatusCode != http.StatusOK {
		return openAIError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func openAIError(status int, body []byte) *APIError {
	apiErr := &APIError{Provider: providerOpenAI, StatusCode: status}

	var parsed openAIErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Message = parsed.Error.Message
		if code, ok := parsed.Error.Code.(string); ok {
			apiErr.Code = code
		}
		// Quota failures sometimes only carry the type.
		if apiErr.Code == "" && parsed.Error.Type == "insufficient_quota" {
			apiErr.Code = parsed.Error.Type
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}

	apiErr.Kind = classifyStatus(status, apiErr.Code, apiErr.Message)
	apiErr.Err = errors.New(http.StatusText(status))
	return apiErr
}
