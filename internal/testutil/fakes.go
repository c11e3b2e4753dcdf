package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/Veraticus/pantrychef/internal/model"
)

// ErrScriptExhausted is returned by ScriptedText once every reply was used.
var ErrScriptExhausted = errors.New("scripted text generator has no replies left")

// Reply is one scripted model answer: Content, or Err when set.
type Reply struct {
	Err     error
	Content string
}

// ScriptedText is a text generator that plays back replies in order. When
// Repeat is set the last reply is returned forever.
type ScriptedText struct {
	Prompts []string
	Replies []Reply
	Repeat  bool
	calls   int
	mu      sync.Mutex
}

// NewScriptedText plays back contents as successful replies.
func NewScriptedText(contents ...string) *ScriptedText {
	s := &ScriptedText{}
	for _, c := range contents {
		s.Replies = append(s.Replies, Reply{Content: c})
	}
	return s
}

// GenerateJSON returns the next scripted reply.
func (s *ScriptedText) GenerateJSON(ctx context.Context, _, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.Prompts = append(s.Prompts, prompt)
	idx := s.calls
	s.calls++

	if idx >= len(s.Replies) {
		if !s.Repeat || len(s.Replies) == 0 {
			return "", ErrScriptExhausted
		}
		idx = len(s.Replies) - 1
	}

	reply := s.Replies[idx]
	return reply.Content, reply.Err
}

// Calls returns how many replies were requested.
func (s *ScriptedText) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// StubImages is an image generator returning a fixed URL or error.
type StubImages struct {
	Err     error
	URL     string
	Prompts []string
	mu      sync.Mutex
}

// GenerateImage records the prompt and returns the stubbed result.
func (s *StubImages) GenerateImage(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	return s.URL, s.Err
}

// Calls returns how many images were requested.
func (s *StubImages) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prompts)
}

// StubDetector is a vision detector returning fixed items or an error.
type StubDetector struct {
	Err   error
	Items []model.DetectedItem
	calls int
	mu    sync.Mutex
}

// DetectItems returns the stubbed result.
func (s *StubDetector) DetectItems(context.Context, string) ([]model.DetectedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.DetectedItem(nil), s.Items...), nil
}

// Calls returns how many detections were requested.
func (s *StubDetector) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
