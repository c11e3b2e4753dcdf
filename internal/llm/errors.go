package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a provider failure.
type Kind string

// Failure kinds.
const (
	KindQuotaExceeded    Kind = "quota-exceeded"
	KindInvalidKey       Kind = "invalid-credential"
	KindRateLimited      Kind = "rate-limited"
	KindNetwork          Kind = "network"
	KindModelUnavailable Kind = "model-unavailable"
	KindUnknown          Kind = "unknown"
)

// Sentinels matched by errors.Is against an *APIError of the same kind.
var (
	ErrQuotaExceeded    = errors.New("provider quota exceeded")
	ErrInvalidKey       = errors.New("invalid provider credential")
	ErrRateLimited      = errors.New("provider rate limit hit")
	ErrNetwork          = errors.New("provider unreachable")
	ErrModelUnavailable = errors.New("model unavailable")
	ErrMissingKey       = errors.New("provider API key is not configured")
)

var kindSentinels = map[Kind]error{
	KindQuotaExceeded:    ErrQuotaExceeded,
	KindInvalidKey:       ErrInvalidKey,
	KindRateLimited:      ErrRateLimited,
	KindNetwork:          ErrNetwork,
	KindModelUnavailable: ErrModelUnavailable,
}

var kindMessages = map[Kind]string{
	KindQuotaExceeded:    "OpenAI API quota exceeded. Please add credits to your OpenAI account.",
	KindInvalidKey:       "Invalid OpenAI API key. Please check your configuration.",
	KindRateLimited:      "Too many requests. Please try again in a moment.",
	KindModelUnavailable: "AI model not available. Please contact support.",
	KindNetwork:          "Network error. Please check your internet connection.",
}

// Fallback user messages.
const (
	GenericMessage    = "Failed to generate recipes. Please try again."
	ScanFailedMessage = "Failed to analyze image. Please try again."
	visionKeyMessage  = "Invalid Gemini API key. Please check your configuration."
)

// APIError is a failed call to a model provider.
type APIError struct {
	Err        error
	Provider   string
	Kind       Kind
	Code       string
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s API error", e.Provider)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *APIError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// UserMessage returns the text to show a user for e.
func (e *APIError) UserMessage() string {
	if e.Provider == providerGemini {
		switch e.Kind {
		case KindInvalidKey:
			return visionKeyMessage
		case KindRateLimited, KindNetwork:
			return kindMessages[e.Kind]
		default:
			return ScanFailedMessage
		}
	}
	if msg, ok := kindMessages[e.Kind]; ok {
		return msg
	}
	return GenericMessage
}

// UserMessage returns the user-facing text for any provider error.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if errors.Is(err, ErrMissingKey) {
		return kindMessages[KindInvalidKey]
	}
	return GenericMessage
}

// classifyStatus maps a provider error response to a Kind.
func classifyStatus(status int, code, message string) Kind {
	switch code {
	case "insufficient_quota":
		return KindQuotaExceeded
	case "invalid_api_key":
		return KindInvalidKey
	case "rate_limit_exceeded":
		return KindRateLimited
	case "model_not_found":
		return KindModelUnavailable
	}

	switch status {
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusUnauthorized:
		return KindInvalidKey
	}

	if strings.Contains(strings.ToLower(message), "network") {
		return KindNetwork
	}
	return KindUnknown
}

// transportError wraps a failure to reach the provider. When the caller's
// context ended the context error is returned unchanged.
func transportError(ctx context.Context, provider string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s request: %w", provider, ctxErr)
	}
	return &APIError{
		Provider: provider,
		Kind:     KindNetwork,
		Err:      err,
	}
}
