package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClients(t *testing.T) {
	clients, err := NewClients(Config{OpenAIKey: "o", GeminiKey: "g"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, clients.Text)
	assert.IsType(t, &OpenAI{}, clients.Images)
	assert.IsType(t, &Gemini{}, clients.Vision)
}

func TestNewClients_MissingKeysFailOnUse(t *testing.T) {
	clients, err := NewClients(Config{}, nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = clients.Text.GenerateJSON(ctx, "s", "p")
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = clients.Images.GenerateImage(ctx, "p")
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = clients.Vision.DetectItems(ctx, "aGk=")
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Equal(t, visionKeyMessage, UserMessage(err))
}
