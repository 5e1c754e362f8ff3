package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, backend Backend, opts ...ClientOption) *Client {
	t.Helper()
	opts = append([]ClientOption{WithLogger(zerolog.Nop())}, opts...)
	c, err := NewClient(backend, LLMSettings{Provider: "mock", Model: "test-model"}, opts...)
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresBackend(t *testing.T) {
	_, err := NewClient(nil, LLMSettings{})
	require.Error(t, err)
}

func TestGenerateReturnsTrimmedCompletion(t *testing.T) {
	llm := NewScriptedLLM(Reply{Text: "  What is your favorite memory?\n"})
	c := newTestClient(t, llm)

	out, err := c.Generate(context.Background(), "ask something")
	require.NoError(t, err)
	require.Equal(t, "What is your favorite memory?", out)
	require.Equal(t, 1, llm.Calls())
	require.Equal(t, "ask something", llm.Prompts()[0].User)
}

func TestGenerateRejectsBlankCompletion(t *testing.T) {
	for _, blank := range []string{"", " ", "\n\t  \n"} {
		llm := NewScriptedLLM(Reply{Text: blank})
		c := newTestClient(t, llm)

		out, err := c.Generate(context.Background(), "ask something")
		require.ErrorIs(t, err, ErrEmptyCompletion)
		require.Empty(t, out)
		require.False(t, IsServiceError(err))
	}
}

func TestGenerateWrapsBackendFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	llm := NewScriptedLLM(Reply{Err: cause})
	c := newTestClient(t, llm)

	_, err := c.Generate(context.Background(), "ask something")
	require.Error(t, err)
	require.True(t, IsServiceError(err))
	require.ErrorIs(t, err, cause)

	var se *ServiceError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "mock", se.Provider)
	require.Equal(t, "test-model", se.Model)
}

func TestGenerateRejectsEmptyPromptWithoutCalling(t *testing.T) {
	llm := NewScriptedLLM(Reply{Text: "unused"})
	c := newTestClient(t, llm)

	_, err := c.Generate(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyPrompt)
	require.Zero(t, llm.Calls())
}

func TestGenerateMakesSingleAttempt(t *testing.T) {
	llm := NewScriptedLLM(Reply{Err: errors.New("boom")}, Reply{Text: "second"})
	c := newTestClient(t, llm)

	_, err := c.Generate(context.Background(), "ask something")
	require.Error(t, err)
	require.Equal(t, 1, llm.Calls())
}

func TestGenerateAttachesSystemInstruction(t *testing.T) {
	llm := NewScriptedLLM(Reply{Text: "ok"})
	c := newTestClient(t, llm, WithSystemInstruction("be brief"))

	_, err := c.Generate(context.Background(), "ask something")
	require.NoError(t, err)
	require.Equal(t, "be brief", llm.Prompts()[0].System)
}
