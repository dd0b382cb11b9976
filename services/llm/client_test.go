package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientUnknownBackend(t *testing.T) {
	_, err := NewClient("carrier-pigeon")
	assert.Error(t, err)
}

func TestMockClientQueuedResponses(t *testing.T) {
	m := NewMockClient("first", "second")

	got, err := m.Generate(context.Background(), "p1", GenerationParams{})
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = m.Generate(context.Background(), "p2", GenerationParams{})
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	_, err = m.Generate(context.Background(), "p3", GenerationParams{})
	assert.Error(t, err, "exhausted queue must error")

	assert.Equal(t, 3, m.CallCount())
	assert.Equal(t, "p3", m.LastPrompt())
	assert.Equal(t, []string{"p1", "p2", "p3"}, m.Prompts())
}

func TestMockClientErrorInjection(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockClient("unused").WithError(boom)
	_, err := m.Generate(context.Background(), "p", GenerationParams{})
	assert.ErrorIs(t, err, boom)
}

func TestMockClientResponseFunc(t *testing.T) {
	m := NewMockClient().WithResponseFunc(
		func(_ context.Context, prompt string) (string, error) {
			return "echo: " + prompt, nil
		})
	got, err := m.Generate(context.Background(), "hi", GenerationParams{})
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", got)
}

func TestMockClientRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMockClient("unused")
	_, err := m.Generate(ctx, "p", GenerationParams{})
	assert.ErrorIs(t, err, context.Canceled)
}
