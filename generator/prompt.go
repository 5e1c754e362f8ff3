package generator

import (
	"fmt"
	"strings"
	"text/template"
)

// Prompt 表示发送给 LLM 的消息。
type Prompt struct {
	System string
	User   string
}

const questionPrompt = "Generate a single, thought-provoking, open-ended question that could be used in a Turing test. " +
	"The question should invite a personal, reflective answer that reveals personality or lived experience. " +
	"Respond with the question only, without any preamble, numbering or quotes."

// QuestionPrompt 生成开放式问题的固定提示词。
func QuestionPrompt() string {
	return questionPrompt
}

// AnswerPrompt asks the model to answer question the way a person would.
func AnswerPrompt(question string) string {
	var sb strings.Builder
	sb.WriteString("Answer the following question as if you were a human taking part in a Turing test. ")
	sb.WriteString("Keep it natural and concise (two to four sentences) and do not mention that you are an AI.\n\n")
	sb.WriteString(fmt.Sprintf("Question: %s", question))
	return sb.String()
}

// judgeTemplate presents the human answer as Response 1 and the AI answer as
// Response 2. Changing that order changes what the judge sees.
var judgeTemplate = template.Must(template.New("judge").Parse(`You are an expert judge in a Turing test. Two anonymous participants answered the same question. One of them is a human and the other is an AI.

Question: {{.Question}}

Response 1:
"""
{{.First}}
"""

Response 2:
"""
{{.Second}}
"""

Write your answer in Markdown, starting with the heading "# AI Judge's Analysis".
1. Under "## Response 1" and "## Response 2", analyze each response for markers of human or AI authorship (tone, specificity, imperfections, structure, hedging).
2. Under "## Verdict", state which response you believe is human and which is AI, with a short justification. End with a single line of the form "Verdict: Response N is human."
`))

type judgeData struct {
	Question string
	First    string
	Second   string
}

// JudgePrompt fills the judge template in a single pass, so text inside the
// answers that looks like a placeholder is treated as data.
func JudgePrompt(question, humanAnswer, aiAnswer string) (string, error) {
	var sb strings.Builder
	err := judgeTemplate.Execute(&sb, judgeData{
		Question: question,
		First:    humanAnswer,
		Second:   aiAnswer,
	})
	if err != nil {
		return "", fmt.Errorf("render judge prompt: %w", err)
	}
	return sb.String(), nil
}
