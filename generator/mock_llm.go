package generator

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	switch {
	case strings.Contains(prompt.User, "Response 1:"):
		var sb strings.Builder
		sb.WriteString("# AI Judge's Analysis\n\n")
		sb.WriteString("## Response 1\n\nSpecific, a little uneven, reads like a memory.\n\n")
		sb.WriteString("## Response 2\n\nPolished and generic, typical of a language model.\n\n")
		sb.WriteString("## Verdict\n\nVerdict: Response 1 is human.\n")
		return sb.String(), nil
	case strings.HasPrefix(prompt.User, "Answer the following question"):
		return "A quiet summer afternoon by the lake, reading until the light faded.", nil
	default:
		return "What is a small moment from your childhood that you still think about?", nil
	}
}

// Reply is one scripted backend response.
type Reply struct {
	Text string
	Err  error
}

// ScriptedLLM replays queued replies in order and records every prompt.
// If Gate is set, each call waits for a value on it before answering.
type ScriptedLLM struct {
	Gate chan struct{}

	mu      sync.Mutex
	replies []Reply
	prompts []Prompt
}

func NewScriptedLLM(replies ...Reply) *ScriptedLLM {
	return &ScriptedLLM{replies: replies}
}

func (s *ScriptedLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.replies) == 0 {
		return "", errors.New("scripted llm: no reply queued")
	}
	next := s.replies[0]
	s.replies = s.replies[1:]
	return next.Text, next.Err
}

// Prompts returns the prompts received so far.
func (s *ScriptedLLM) Prompts() []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Prompt, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// Calls returns how many times Complete was invoked.
func (s *ScriptedLLM) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}
