package generator

import (
	"context"
	"errors"
	"fmt"
)

// Agent 负责三次调用：出题、AI 作答、裁判评判。
type Agent struct {
	llm TextGenerator
}

func NewAgent(llm TextGenerator) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("text generator is required")
	}
	return &Agent{llm: llm}, nil
}

// Question asks for a fresh open-ended question.
func (a *Agent) Question(ctx context.Context) (string, error) {
	question, err := a.llm.Generate(ctx, QuestionPrompt())
	if err != nil {
		return "", fmt.Errorf("generate question: %w", err)
	}
	return question, nil
}

// Answer produces the AI participant's answer to question.
func (a *Agent) Answer(ctx context.Context, question string) (string, error) {
	answer, err := a.llm.Generate(ctx, AnswerPrompt(question))
	if err != nil {
		return "", fmt.Errorf("generate ai answer: %w", err)
	}
	return answer, nil
}

// Judge 对比两份回答并给出结论（人类回答固定为 Response 1）。
func (a *Agent) Judge(ctx context.Context, question, humanAnswer, aiAnswer string) (string, error) {
	prompt, err := JudgePrompt(question, humanAnswer, aiAnswer)
	if err != nil {
		return "", err
	}
	verdict, err := a.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate verdict: %w", err)
	}
	return verdict, nil
}
