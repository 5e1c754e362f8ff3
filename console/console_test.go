package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"turing_judge/generator"
	"turing_judge/session"
)

func newController(t *testing.T, replies ...generator.Reply) (*session.Controller, *generator.ScriptedLLM) {
	t.Helper()
	llm := generator.NewScriptedLLM(replies...)
	client, err := generator.NewClient(llm, generator.LLMSettings{Provider: "mock", Model: "test"})
	require.NoError(t, err)
	agent, err := generator.NewAgent(client)
	require.NoError(t, err)
	ctrl, err := session.NewController(agent, nil, zerolog.Nop())
	require.NoError(t, err)
	return ctrl, llm
}

func TestRunCompletesOneTest(t *testing.T) {
	ctrl, llm := newController(t,
		generator.Reply{Text: "What is your favorite memory?"},
		generator.Reply{Text: "A summer afternoon by the lake."},
		generator.Reply{Text: "# AI Judge's Analysis\nVerdict: Response 1 is human."},
	)
	var out bytes.Buffer

	err := New(ctrl, strings.NewReader("\nMy first bike ride.\nquit\n"), &out).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, llm.Calls())

	text := out.String()
	require.Contains(t, text, "Question: What is your favorite memory?")
	require.Contains(t, text, session.MsgAnswerRequired)
	require.Contains(t, text, "# "+session.DocumentTitle)
	require.Contains(t, text, "Verdict: Response 1 is human.")
	require.Equal(t, session.StateComplete, ctrl.Snapshot().State)
}

func TestRunStartsNewTest(t *testing.T) {
	ctrl, llm := newController(t,
		generator.Reply{Text: "Q1"},
		generator.Reply{Text: "A1"},
		generator.Reply{Text: "V1"},
		generator.Reply{Text: "Q2"},
	)
	var out bytes.Buffer

	err := New(ctrl, strings.NewReader("mine\nnew\n"), &out).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, llm.Calls())
	require.Contains(t, out.String(), "Question: Q2")
	require.Equal(t, "Q2", ctrl.Snapshot().Question)
}

func TestRunReportsQuestionFailure(t *testing.T) {
	ctrl, _ := newController(t, generator.Reply{Err: errors.New("offline")})
	var out bytes.Buffer

	err := New(ctrl, strings.NewReader("quit\n"), &out).Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, out.String(), session.MsgQuestionFailed)
	require.Equal(t, session.StateInitial, ctrl.Snapshot().State)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctrl, llm := newController(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(ctrl, strings.NewReader(""), &bytes.Buffer{}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, llm.Calls())
}
