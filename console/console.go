// Package console drives a test session from a terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"turing_judge/session"
)

// Console reads user input line by line and prints the session as text.
type Console struct {
	actions session.Actions
	in      *bufio.Scanner
	out     io.Writer
}

func New(actions session.Actions, in io.Reader, out io.Writer) *Console {
	return &Console{actions: actions, in: bufio.NewScanner(in), out: out}
}

// Run loops until the user quits, input ends, or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		snap := c.actions.Snapshot()
		var err error
		switch snap.State {
		case session.StateInitial:
			c.printf("Generating a question...\n")
			snap, err = c.actions.GenerateQuestion(ctx)
			if err == nil && snap.Error != "" {
				c.printf("%s\n", snap.Error)
				line, ok := c.ask("Press Enter to retry or type 'quit' to exit: ")
				if !ok || isQuit(line) {
					return nil
				}
			}
		case session.StateAnswering:
			c.printf("\nQuestion: %s\n", snap.Question)
			line, ok := c.ask("Your answer: ")
			if !ok {
				return nil
			}
			c.printf("Asking the AI and the judge...\n")
			snap, err = c.actions.SubmitAnswer(ctx, line)
			if err == nil && snap.Error != "" {
				c.printf("%s\n", snap.Error)
			}
		case session.StateComplete:
			c.printf("\n%s\n", session.FormatDocument(snap))
			line, ok := c.ask("Type 'new' for another test or 'quit' to exit: ")
			if !ok || isQuit(line) {
				return nil
			}
			if strings.EqualFold(strings.TrimSpace(line), "new") {
				_, err = c.actions.StartNewTest()
			}
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) ask(prompt string) (string, bool) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}
