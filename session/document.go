package session

import "strings"

const DocumentTitle = "Turing Test Results"

// FormatDocument renders a completed session as one markdown document:
// title, question, human response, AI response, a rule, then the verdict.
func FormatDocument(s Session) string {
	var sb strings.Builder
	sb.WriteString("# " + DocumentTitle + "\n\n")
	section(&sb, "The Question", s.Question)
	section(&sb, "Human Response", s.HumanAnswer)
	section(&sb, "AI Response", s.AIAnswer)
	sb.WriteString("---\n\n")
	section(&sb, "The Verdict", s.Verdict)
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func section(sb *strings.Builder, heading, body string) {
	sb.WriteString("## " + heading + "\n\n")
	sb.WriteString(strings.TrimSpace(body))
	sb.WriteString("\n\n")
}
