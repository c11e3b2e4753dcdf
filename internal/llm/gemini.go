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
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/pantrychef/internal/common"
	"github.com/Veraticus/pantrychef/internal/model"
	"golang.org/x/time/rate"
)

const providerGemini = "Gemini"

const detectPrompt = "Identify grocery items in the image. Return ONLY valid JSON: " +
	`[{"name":"Item Name","category":"Category"}]`

// ErrNoImage is returned when DetectItems is called without image data.
var ErrNoImage = errors.New("no image data provided")

// Gemini detects groceries in photos.
type Gemini struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	apiKey     string
	baseURL    string
	model      string
}

// NewGemini creates a Gemini vision client.
func NewGemini(cfg Config, logger *slog.Logger) (*Gemini, error) {
	if cfg.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini: %w", ErrMissingKey)
	}
	cfg = cfg.withDefaults()

	return &Gemini{
		apiKey:     cfg.GeminiKey,
		baseURL:    strings.TrimRight(cfg.VisionBaseURL, "/"),
		model:      cfg.VisionModel,
		limiter:    newRateLimiter(cfg.RateLimit),
		logger:     common.LoggerOrDefault(logger),
		httpClient: &http.Client{Timeout: cfg.ImageTimeout, Transport: &http.Transport{IdleConnTimeout: 90 * time.Second}},
	}, nil
}

type geminiPart struct {
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
	Text       string            `json:"text,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Status  string `json:"status"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// DetectItems asks the model which groceries appear in the JPEG.
func (g *Gemini) DetectItems(ctx context.Context, imageBase64 string) ([]model.DetectedItem, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return nil, ErrNoImage
	}
	if err := wait(ctx, g.limiter); err != nil {
		return nil, err
	}

	var payload geminiRequest
	payload.Contents = make([]struct {
		Parts []geminiPart `json:"parts"`
	}, 1)
	payload.Contents[0].Parts = []geminiPart{
		{Text: detectPrompt},
		{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: imageBase64}},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, providerGemini, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(ctx, providerGemini, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, geminiError(resp.StatusCode, body)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var text strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, part := range parsed.Candidates[0].Content.Parts {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return nil, &APIError{Provider: providerGemini, Kind: KindUnknown, Message: "no response content from AI"}
	}

	items, err := ParseDetectedItems(text.String())
	if err != nil {
		return nil, &APIError{Provider: providerGemini, Kind: KindUnknown, Message: "AI response was not valid JSON", Err: err}
	}

	g.logger.Debug("detected grocery items", "count", len(items))
	return items, nil
}

// ParseDetectedItems reads a detection reply: either a JSON array or an object
// with an "items" array, whose entries are names or {name, category} objects.
// Entries without a name are skipped and a missing category becomes "Other".
func ParseDetectedItems(text string) ([]model.DetectedItem, error) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(CleanMarkdownWrapper(text)), &raw); err != nil {
		return nil, err
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		var wrapped struct {
			Items []json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("unexpected response format: %w", err)
		}
		entries = wrapped.Items
	}

	items := make([]model.DetectedItem, 0, len(entries))
	for _, entry := range entries {
		var name string
		if err := json.Unmarshal(entry, &name); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				items = append(items, model.DetectedItem{Name: name, Category: "Other"})
			}
			continue
		}

		var obj struct {
			Name     any `json:"name"`
			Category any `json:"category"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil {
			continue
		}
		name, _ = obj.Name.(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		category := "Other"
		if c, ok := obj.Category.(string); ok {
			category = strings.TrimSpace(c)
		}
		items = append(items, model.DetectedItem{Name: name, Category: category})
	}

	return items, nil
}

func geminiError(status int, body []byte) *APIError {
	apiErr := &APIError{Provider: providerGemini, StatusCode: status}

	var parsed geminiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Message = parsed.Error.Message
		apiErr.Code = parsed.Error.Status
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}

	switch {
	case apiErr.Code == "RESOURCE_EXHAUSTED" || status == http.StatusTooManyRequests:
		apiErr.Kind = KindRateLimited
	case status == http.StatusForbidden || status == http.StatusUnauthorized ||
		strings.Contains(apiErr.Message, "API key not valid"):
		apiErr.Kind = KindInvalidKey
	case status == http.StatusNotFound:
		apiErr.Kind = KindModelUnavailable
	default:
		apiErr.Kind = KindUnknown
	}
	apiErr.Err = errors.New(http.StatusText(status))
	return apiErr
}
